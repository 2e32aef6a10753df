package analysis

import (
	"context"
	"errors"
)

// Options selects which analysis sections the caller paid for. The zero
// value means every section.
type Options struct {
	CharacterAnalysis     bool `json:"characterAnalysis"`
	PlotAnalysis          bool `json:"plotAnalysis"`
	ThematicAnalysis      bool `json:"thematicAnalysis"`
	ReadabilityAssessment bool `json:"readabilityAssessment"`
	SentimentAnalysis     bool `json:"sentimentAnalysis"`
	StyleConsistency      bool `json:"styleConsistency"`
}

func (o Options) none() bool {
	return !o.CharacterAnalysis && !o.PlotAnalysis && !o.ThematicAnalysis &&
		!o.ReadabilityAssessment && !o.SentimentAnalysis && !o.StyleConsistency
}

// Analyzer produces a structured document analysis from extracted text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts Options) (string, error)
}

// ErrNotConfigured is returned by the placeholder analyzer.
var ErrNotConfigured = errors.New("analyzer not configured")

// Placeholder is a stub implementation until provider wiring is added.
type Placeholder struct{}

// Analyze returns ErrNotConfigured.
func (Placeholder) Analyze(ctx context.Context, text string, opts Options) (string, error) {
	_ = ctx
	_ = text
	_ = opts
	return "", ErrNotConfigured
}
