package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"dreamer-backend/internal/shared/storage/object"
	"dreamer-backend/internal/shared/telemetry"
)

// textKeyPrefix is where extracted-text side-files live in the object store.
const textKeyPrefix = "text"

// defaultStrategyTimeout bounds a single strategy run. Malformed documents
// (a PDF page tree that references itself, for one) can send a parser into
// an unbounded walk; the bound turns that into an ordinary strategy failure.
const defaultStrategyTimeout = 30 * time.Second

// Result carries the extracted text and its derived metadata.
type Result struct {
	Text      string
	CharCount int
	Title     string
	TextKey   string
	Strategy  string
}

// Pipeline runs extraction strategies in order over a stored document and
// persists the extracted text as a side-file for later retrieval.
type Pipeline struct {
	Strategies []Strategy
	Store      object.ObjectStore

	// StrategyTimeout caps each strategy run; zero means the default.
	StrategyTimeout time.Duration
}

// NewPipeline builds the standard chain: general converter first, dedicated
// PDF page walker as fallback.
func NewPipeline(store object.ObjectStore) *Pipeline {
	return &Pipeline{
		Strategies: []Strategy{ConverterStrategy{}, PDFPagesStrategy{}},
		Store:      store,
	}
}

// Process reads the stored object at fileKey and tries each strategy until
// one produces text. On total failure the returned error aggregates every
// strategy's failure. On success the text is written to a uniquely named
// side-file whose key is part of the result.
func (p *Pipeline) Process(ctx context.Context, fileKey string, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	body, err := p.Store.Open(ctx, fileKey)
	if err != nil {
		return Result{}, fmt.Errorf("extract key=%s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("extract key=%s: read: %w", fileKey, err)
	}

	text, strategyName, err := p.run(ctx, raw, mimeType, fileName)
	if err != nil {
		return Result{}, err
	}

	textKey := path.Join(textKeyPrefix, "text_content_"+object.RandomToken()+".txt")
	if _, err := p.Store.SaveWithKey(ctx, textKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return Result{}, fmt.Errorf("extract key=%s: save side-file: %w", fileKey, err)
	}

	return Result{
		Text:      text,
		CharCount: utf8.RuneCountInString(text),
		Title:     titleFromKey(fileKey),
		TextKey:   textKey,
		Strategy:  strategyName,
	}, nil
}

func (p *Pipeline) run(ctx context.Context, data []byte, mimeType string, fileName string) (string, string, error) {
	var failures []error
	for i, strategy := range p.Strategies {
		text, err := p.extractBounded(ctx, strategy, data, mimeType, fileName)
		if err == nil {
			if i > 0 {
				telemetry.Warn("extract.fallback_used", map[string]any{
					"strategy": strategy.Name(),
					"file":     fileName,
				})
			}
			return text, strategy.Name(), nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", strategy.Name(), err))
	}
	if len(failures) == 0 {
		return "", "", errors.New("no extraction strategies configured")
	}
	return "", "", fmt.Errorf("all extraction strategies failed: %w", errors.Join(failures...))
}

// extractBounded runs one strategy under a deadline. An overrun or a parser
// panic becomes a strategy error so the chain's fallback and the caller's
// cleanup still apply. A timed-out goroutine is abandoned; it holds only its
// own copy of the data and cannot be interrupted mid-parse.
func (p *Pipeline) extractBounded(ctx context.Context, strategy Strategy, data []byte, mimeType string, fileName string) (string, error) {
	timeout := p.StrategyTimeout
	if timeout <= 0 {
		timeout = defaultStrategyTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: fmt.Errorf("extraction panic: %v", rec)}
			}
		}()
		text, err := strategy.Extract(runCtx, data, mimeType, fileName)
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-runCtx.Done():
		return "", fmt.Errorf("extraction timed out after %s: %w", timeout, runCtx.Err())
	}
}

// titleFromKey derives a display title from the stored file name by dropping
// the extension and the trailing "_<token>" uniqueness suffix. A legitimate
// underscore at the end of the user's own stem is indistinguishable from the
// suffix separator, so such names lose their final segment.
func titleFromKey(fileKey string) string {
	base := path.Base(strings.ReplaceAll(fileKey, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if idx := strings.LastIndex(stem, "_"); idx > 0 {
		return stem[:idx]
	}
	return stem
}
