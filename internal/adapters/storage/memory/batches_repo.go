package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-tag-registry/internal/domain/batches"
)

type batchesRepo struct {
	mu            sync.RWMutex
	manufacturing map[string]batches.ManufacturingBatch
	shipping      map[string]batches.ShippingBatch
}

func NewBatchesRepo() batches.Repository {
	return &batchesRepo{
		manufacturing: make(map[string]batches.ManufacturingBatch),
		shipping:      make(map[string]batches.ShippingBatch),
	}
}

func (r *batchesRepo) CreateManufacturing(ctx context.Context, b batches.ManufacturingBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		return errors.New("batch id required")
	}
	if _, exists := r.manufacturing[b.ID]; exists {
		return errors.New("batch already exists")
	}
	r.manufacturing[b.ID] = b
	return nil
}

func (r *batchesRepo) CreateShipping(ctx context.Context, b batches.ShippingBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		return errors.New("shipping id required")
	}
	if _, exists := r.shipping[b.ID]; exists {
		return errors.New("shipping batch already exists")
	}
	r.shipping[b.ID] = b
	return nil
}

func (r *batchesRepo) ListManufacturing(ctx context.Context) ([]batches.ManufacturingBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]batches.ManufacturingBatch, 0, len(r.manufacturing))
	for _, b := range r.manufacturing {
		out = append(out, b)
	}

	// más recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *batchesRepo) ListShipping(ctx context.Context) ([]batches.ShippingBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]batches.ShippingBatch, 0, len(r.shipping))
	for _, b := range r.shipping {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
