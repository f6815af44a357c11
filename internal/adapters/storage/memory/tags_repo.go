package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-tag-registry/internal/domain/tags"
)

type tagsRepo struct {
	mu      sync.RWMutex
	byID    map[string]tags.Tag
	counter int
}

func NewTagsRepo() tags.Repository {
	return &tagsRepo{
		byID: make(map[string]tags.Tag),
	}
}

func (r *tagsRepo) NextPetID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	return fmt.Sprintf("PET%06d", r.counter), nil
}

func (r *tagsRepo) Create(ctx context.Context, t tags.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.PetID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[t.PetID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[t.PetID] = t
	return nil
}

// Mutate ejecuta fn con el mutex del repo tomado: dos mutaciones del mismo
// pet nunca se intercalan entre lectura y escritura.
func (r *tagsRepo) Mutate(ctx context.Context, petID string, fn func(t *tags.Tag) error) (tags.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[petID]
	if !ok {
		return tags.Tag{}, tags.ErrNotFound
	}
	if err := fn(&t); err != nil {
		return tags.Tag{}, err
	}
	r.byID[petID] = t
	return t, nil
}

func (r *tagsRepo) GetByID(ctx context.Context, petID string) (tags.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[petID]
	if !ok {
		return tags.Tag{}, tags.ErrNotFound
	}
	return t, nil
}

func (r *tagsRepo) List(ctx context.Context, filter tags.ListFilter) ([]tags.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tags.Tag, 0)
	for _, t := range r.byID {
		if filter.TagStatus != nil && t.TagStatus != *filter.TagStatus {
			continue
		}
		if filter.PaymentStatus != nil && t.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		out = append(out, t)
	}

	// orden estable por created_at asc, pet_id desempata
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].PetID < out[j].PetID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
