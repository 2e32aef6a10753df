package documents

import "context"

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	SetAnalysisSummary(ctx context.Context, documentID, summary string) error
	Delete(ctx context.Context, documentID string) error
}
