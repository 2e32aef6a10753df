package documents

import "time"

// Document represents an uploaded document and its extraction-derived
// metadata. Immutable after creation except for AnalysisSummary, which is
// set once the paid analysis completes.
type Document struct {
	ID               string
	FileName         string
	OriginalFilename string
	SizeBytes        int64
	MimeType         string
	Title            string
	CharCount        int
	AnalysisCost     int64
	TextContentKey   string
	AnalysisSummary  string
	CreatedAt        time.Time
}
