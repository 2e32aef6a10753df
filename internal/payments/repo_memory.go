package payments

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of PaymentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Payment
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a payment.
func (r *MemoryRepo) Create(ctx context.Context, payment Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, payment)
	return nil
}

// ListByDocument returns payments for a document, newest first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Payment
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].DocumentID == documentID {
			out = append(out, r.data[i])
		}
	}
	return out, nil
}

var _ PaymentsRepo = (*MemoryRepo)(nil)
