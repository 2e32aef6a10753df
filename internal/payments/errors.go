package payments

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotSucceeded     = errors.New("payment not successful")
	ErrDocumentNotFound = errors.New("document not found")
)

// IntentStatusSucceeded is the only status that releases the analysis.
const IntentStatusSucceeded = "succeeded"
