package documents

import (
	"context"
	"errors"

	"dreamer-backend/internal/payments"
)

// UploadResponse is the outward-facing representation of a processed upload,
// merged with the payment-intent fields the client needs to pay.
type UploadResponse struct {
	DocumentID       string `json:"document_id"`
	Title            string `json:"title"`
	OriginalFilename string `json:"original_filename"`
	CharCount        int    `json:"char_count"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	UploadDate       string `json:"upload_date"`
	AnalysisCost     int64  `json:"analysis_cost"`
	TextContentPath  string `json:"text_content_file_path"`
	ClientSecret     string `json:"client_secret"`
	PublishableKey   string `json:"publishable_key"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
}

func toUploadResponse(res UploadResult, publishableKey string) UploadResponse {
	doc := res.Document
	return UploadResponse{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		OriginalFilename: doc.OriginalFilename,
		CharCount:        doc.CharCount,
		FileSize:         doc.SizeBytes,
		MimeType:         doc.MimeType,
		UploadDate:       doc.CreatedAt.Format("2006-01-02 15:04:05"),
		AnalysisCost:     doc.AnalysisCost,
		TextContentPath:  doc.TextContentKey,
		ClientSecret:     res.Intent.ClientSecret,
		PublishableKey:   publishableKey,
		Amount:           res.Intent.Amount,
		Currency:         res.Intent.Currency,
	}
}

// DetailResponse is the outward-facing representation of a stored document
// and its payment history.
type DetailResponse struct {
	DocumentID       string        `json:"document_id"`
	Title            string        `json:"title"`
	OriginalFilename string        `json:"original_filename"`
	CharCount        int           `json:"char_count"`
	FileSize         int64         `json:"file_size"`
	MimeType         string        `json:"mime_type"`
	UploadDate       string        `json:"upload_date"`
	AnalysisCost     int64         `json:"analysis_cost"`
	AnalysisSummary  string        `json:"analysis_summary,omitempty"`
	Payments         []paymentView `json:"payments"`
}

type paymentView struct {
	StripePaymentID string `json:"stripe_payment_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

func toDetailResponse(doc Document, history []payments.Payment) DetailResponse {
	views := make([]paymentView, 0, len(history))
	for _, p := range history {
		views = append(views, paymentView{
			StripePaymentID: p.StripePaymentID,
			Amount:          p.Amount,
			Currency:        p.Currency,
			Status:          p.Status,
			CreatedAt:       p.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return DetailResponse{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		OriginalFilename: doc.OriginalFilename,
		CharCount:        doc.CharCount,
		FileSize:         doc.SizeBytes,
		MimeType:         doc.MimeType,
		UploadDate:       doc.CreatedAt.Format("2006-01-02 15:04:05"),
		AnalysisCost:     doc.AnalysisCost,
		AnalysisSummary:  doc.AnalysisSummary,
		Payments:         views,
	}
}

// DocumentSourceAdapter exposes a DocumentsRepo as the narrow view the
// payment confirmation flow needs.
type DocumentSourceAdapter struct {
	Repo DocumentsRepo
}

// Get maps a document lookup onto the payments view.
func (a DocumentSourceAdapter) Get(ctx context.Context, documentID string) (payments.DocumentView, error) {
	doc, err := a.Repo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return payments.DocumentView{}, payments.ErrDocumentNotFound
		}
		return payments.DocumentView{}, err
	}
	return payments.DocumentView{ID: doc.ID, TextContentKey: doc.TextContentKey}, nil
}

// SetAnalysisSummary records the completed analysis on the document.
func (a DocumentSourceAdapter) SetAnalysisSummary(ctx context.Context, documentID, summary string) error {
	return a.Repo.SetAnalysisSummary(ctx, documentID, summary)
}

var _ payments.DocumentSource = DocumentSourceAdapter{}
