package payments

import "time"

// Payment records one confirmed charge against a document. Several payments
// may reference the same document (re-runs with different analysis options).
type Payment struct {
	ID              string
	StripePaymentID string
	Amount          int64
	Currency        string
	Status          string
	DocumentID      string
	CreatedAt       time.Time
}
