package payments

import (
	"context"
	"database/sql"
)

// PGRepo implements PaymentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new payment.
func (r *PGRepo) Create(ctx context.Context, payment Payment) error {
	const query = `
INSERT INTO payments (
    id,
    stripe_payment_id,
    amount,
    currency,
    status,
    document_id,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	currency := payment.Currency
	if currency == "" {
		currency = "cny"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.StripePaymentID,
		payment.Amount,
		currency,
		payment.Status,
		payment.DocumentID,
		payment.CreatedAt,
	)
	return err
}

// ListByDocument returns payments for a document, newest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]Payment, error) {
	const query = `
SELECT id, stripe_payment_id, amount, currency, status, document_id, created_at
FROM payments
WHERE document_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID,
			&p.StripePaymentID,
			&p.Amount,
			&p.Currency,
			&p.Status,
			&p.DocumentID,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ PaymentsRepo = (*PGRepo)(nil)
