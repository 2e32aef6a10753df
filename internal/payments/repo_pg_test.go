package payments

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateDefaultsCurrency(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	payment := Payment{
		ID:              "pay-1",
		StripePaymentID: "pi_1",
		Amount:          100,
		Status:          IntentStatusSucceeded,
		DocumentID:      "doc-1",
		CreatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(
			payment.ID,
			payment.StripePaymentID,
			payment.Amount,
			"cny",
			payment.Status,
			payment.DocumentID,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), payment); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "stripe_payment_id", "amount", "currency", "status", "document_id", "created_at",
	}).
		AddRow("pay-2", "pi_2", int64(200), "cny", "succeeded", "doc-1", created).
		AddRow("pay-1", "pi_1", int64(100), "cny", "succeeded", "doc-1", created.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM payments").
		WithArgs("doc-1").
		WillReturnRows(rows)

	out, err := repo.ListByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d payments, want 2", len(out))
	}
	if out[0].StripePaymentID != "pi_2" {
		t.Errorf("first payment = %+v, want newest", out[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
