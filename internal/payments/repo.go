package payments

import "context"

// PaymentsRepo defines persistence operations for payments.
type PaymentsRepo interface {
	Create(ctx context.Context, payment Payment) error
	ListByDocument(ctx context.Context, documentID string) ([]Payment, error)
}
