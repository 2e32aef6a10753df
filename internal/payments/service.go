package payments

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"dreamer-backend/internal/analysis"
	"dreamer-backend/internal/shared/storage/object"
	"dreamer-backend/internal/shared/telemetry"
)

// DocumentView is the slice of a document the confirmation flow needs.
type DocumentView struct {
	ID             string
	TextContentKey string
}

// DocumentSource provides the documents the confirmation flow operates on.
type DocumentSource interface {
	Get(ctx context.Context, documentID string) (DocumentView, error)
	SetAnalysisSummary(ctx context.Context, documentID, summary string) error
}

// Service confirms payments and triggers the paid document analysis.
type Service struct {
	Intents   IntentClient
	Documents DocumentSource
	Repo      PaymentsRepo
	Store     object.ObjectStore
	Analyzer  analysis.Analyzer
}

// Confirm verifies the payment intent, runs the analysis over the stored
// extracted text, saves the summary, and records the payment. The payment
// row is written last, so a failed analysis or a failed summary write
// leaves no charge on record.
func (s *Service) Confirm(ctx context.Context, intentID, documentID string, opts analysis.Options) (string, error) {
	if intentID == "" || documentID == "" {
		return "", ErrInvalidInput
	}

	intent, err := s.Intents.Retrieve(ctx, intentID)
	if err != nil {
		return "", fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Status != IntentStatusSucceeded {
		return "", fmt.Errorf("%w: status %s", ErrNotSucceeded, intent.Status)
	}

	doc, err := s.Documents.Get(ctx, documentID)
	if err != nil {
		return "", err
	}

	text, err := s.readExtractedText(ctx, doc.TextContentKey)
	if err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}

	summary, err := s.Analyzer.Analyze(ctx, text, opts)
	if err != nil {
		return "", fmt.Errorf("analyze document: %w", err)
	}

	if err := s.Documents.SetAnalysisSummary(ctx, doc.ID, summary); err != nil {
		return "", fmt.Errorf("save analysis summary: %w", err)
	}

	payment := Payment{
		ID:              uuid.NewString(),
		StripePaymentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          intent.Status,
		DocumentID:      doc.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}

	telemetry.Info("payment.confirmed", map[string]any{
		"payment_id":        payment.ID,
		"payment_intent_id": intent.ID,
		"document_id":       doc.ID,
		"amount":            intent.Amount,
		"currency":          intent.Currency,
	})

	return summary, nil
}

func (s *Service) readExtractedText(ctx context.Context, textKey string) (string, error) {
	rc, err := s.Store.Open(ctx, textKey)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
