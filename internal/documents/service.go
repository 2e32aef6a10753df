package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dreamer-backend/internal/extract"
	"dreamer-backend/internal/payments"
	"dreamer-backend/internal/pricing"
	"dreamer-backend/internal/shared/storage/object"
	"dreamer-backend/internal/shared/telemetry"
)

// Service sequences the upload flow: validate, store, extract, price,
// persist, create payment intent. Each stage cleans up after itself on
// failure; committed stages before it stay committed except where noted.
type Service struct {
	Store             object.ObjectStore
	Repo              DocumentsRepo
	Payments          payments.PaymentsRepo
	Pipeline          *extract.Pipeline
	Pricer            pricing.Calculator
	Intents           payments.IntentClient
	Currency          string
	AllowedExtensions []string
}

// UploadResult carries the created document and its payment intent.
type UploadResult struct {
	Document Document
	Intent   payments.Intent
}

// Upload runs the full upload flow for one file.
func (s *Service) Upload(ctx context.Context, originalName string, r io.Reader) (UploadResult, error) {
	if strings.TrimSpace(originalName) == "" {
		return UploadResult{}, fmt.Errorf("%w: no file selected", ErrInvalidInput)
	}
	if !s.extensionAllowed(originalName) {
		return UploadResult{}, fmt.Errorf("%w: file type not allowed", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, originalName, r)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	telemetry.Info("upload.stored", map[string]any{
		"storage_key": storageKey,
		"size_bytes":  size,
		"mime_type":   mimeType,
	})

	res, err := s.Pipeline.Process(ctx, storageKey, mimeType, originalName)
	if err != nil {
		s.removeFile(ctx, storageKey)
		return UploadResult{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	cost := s.Pricer.Cost(res.CharCount)
	telemetry.Info("upload.priced", map[string]any{
		"char_count":    res.CharCount,
		"analysis_cost": cost,
		"strategy":      res.Strategy,
	})

	doc := Document{
		ID:               uuid.NewString(),
		FileName:         storageKeyBase(storageKey),
		OriginalFilename: originalName,
		SizeBytes:        size,
		MimeType:         mimeType,
		Title:            res.Title,
		CharCount:        res.CharCount,
		AnalysisCost:     cost,
		TextContentKey:   res.TextKey,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		s.removeFile(ctx, storageKey)
		s.removeFile(ctx, res.TextKey)
		return UploadResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	intent, err := s.Intents.Create(ctx, cost, s.Currency)
	if err != nil {
		// Compensating cleanup: without an intent the document row is an
		// orphaned billable record, so the raw file, the extracted-text
		// side-file, and the row all go.
		s.removeFile(ctx, storageKey)
		s.removeFile(ctx, res.TextKey)
		if delErr := s.Repo.Delete(ctx, doc.ID); delErr != nil {
			telemetry.Error("upload.cleanup_document_failed", map[string]any{
				"document_id": doc.ID,
				"err":         delErr.Error(),
			})
		}
		return UploadResult{}, fmt.Errorf("%w: %v", ErrPaymentSetup, err)
	}

	return UploadResult{Document: doc, Intent: intent}, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, documentID)
}

// Detail returns a document together with its payment history, newest first.
func (s *Service) Detail(ctx context.Context, documentID string) (Document, []payments.Payment, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	history, err := s.Payments.ListByDocument(ctx, documentID)
	if err != nil {
		return Document{}, nil, fmt.Errorf("list payments: %w", err)
	}
	return doc, history, nil
}

func (s *Service) extensionAllowed(fileName string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range s.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

func (s *Service) removeFile(ctx context.Context, storageKey string) {
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Error("upload.cleanup_file_failed", map[string]any{
			"storage_key": storageKey,
			"err":         err.Error(),
		})
	}
}

func storageKeyBase(storageKey string) string {
	return filepath.Base(strings.ReplaceAll(storageKey, "\\", "/"))
}
