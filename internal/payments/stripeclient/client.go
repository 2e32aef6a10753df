package stripeclient

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"dreamer-backend/internal/payments"
)

// Client implements payments.IntentClient against the Stripe API. It holds
// its own API handle so no package-global key is mutated.
type Client struct {
	api *client.API
}

// New constructs a Stripe intent client.
func New(secretKey string) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}, nil
}

// Create opens a payment intent for the given amount in minor units.
func (c *Client) Create(ctx context.Context, amount int64, currency string) (payments.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("service", "document_analysis")

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return payments.Intent{}, fmt.Errorf("create payment intent: %w", err)
	}
	return toIntent(intent), nil
}

// Retrieve fetches a payment intent by id.
func (c *Client) Retrieve(ctx context.Context, intentID string) (payments.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return payments.Intent{}, fmt.Errorf("retrieve payment intent %s: %w", intentID, err)
	}
	return toIntent(intent), nil
}

func toIntent(pi *stripe.PaymentIntent) payments.Intent {
	return payments.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}

var _ payments.IntentClient = (*Client)(nil)
