package payments

import "context"

// Intent is the processor-side representation of an in-progress charge.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// IntentClient abstracts the payment processor's intent API.
type IntentClient interface {
	Create(ctx context.Context, amount int64, currency string) (Intent, error)
	Retrieve(ctx context.Context, intentID string) (Intent, error)
}
