package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    file_name,
    original_filename,
    file_size,
    mime_type,
    title,
    char_count,
    analysis_cost,
    text_content_key,
    analysis_summary,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, $10)`

	originalName := doc.OriginalFilename
	if originalName == "" {
		originalName = doc.FileName
	}

	var title sql.NullString
	if doc.Title != "" {
		title = sql.NullString{String: doc.Title, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.FileName,
		originalName,
		doc.SizeBytes,
		doc.MimeType,
		title,
		doc.CharCount,
		doc.AnalysisCost,
		doc.TextContentKey,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, file_name, original_filename, file_size, mime_type, title, char_count, analysis_cost, text_content_key, analysis_summary, created_at
FROM documents
WHERE id = $1
LIMIT 1`

	var doc Document
	var title sql.NullString
	var charCount sql.NullInt64
	var analysisCost sql.NullInt64
	var summary sql.NullString
	err := r.DB.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID,
		&doc.FileName,
		&doc.OriginalFilename,
		&doc.SizeBytes,
		&doc.MimeType,
		&title,
		&charCount,
		&analysisCost,
		&doc.TextContentKey,
		&summary,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if title.Valid {
		doc.Title = title.String
	}
	if charCount.Valid {
		doc.CharCount = int(charCount.Int64)
	}
	if analysisCost.Valid {
		doc.AnalysisCost = analysisCost.Int64
	}
	if summary.Valid {
		doc.AnalysisSummary = summary.String
	}
	return doc, nil
}

// SetAnalysisSummary stores the completed analysis summary.
func (r *PGRepo) SetAnalysisSummary(ctx context.Context, documentID, summary string) error {
	const query = `
UPDATE documents
SET analysis_summary = $1
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, summary, documentID)
	if err != nil {
		return err
	}
	if updated, err := res.RowsAffected(); err == nil && updated == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document row. Used as compensating cleanup when
// payment-intent creation fails after the document was committed.
func (r *PGRepo) Delete(ctx context.Context, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, documentID)
	return err
}

var _ DocumentsRepo = (*PGRepo)(nil)
