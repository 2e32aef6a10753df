package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failed")
	ErrExtraction   = errors.New("document processing failed")
	ErrPersistence  = errors.New("persistence failed")
	ErrPaymentSetup = errors.New("payment setup failed")
)
