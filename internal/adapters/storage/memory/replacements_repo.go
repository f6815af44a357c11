package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-tag-registry/internal/domain/replacements"
)

type replacementsRepo struct {
	mu   sync.RWMutex
	byID map[string]replacements.Replacement
}

func NewReplacementsRepo() replacements.Repository {
	return &replacementsRepo{
		byID: make(map[string]replacements.Replacement),
	}
}

func (r *replacementsRepo) Create(ctx context.Context, rep replacements.Replacement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rep.ID == "" {
		return errors.New("replacement id required")
	}
	if _, exists := r.byID[rep.ID]; exists {
		return errors.New("replacement already exists")
	}
	r.byID[rep.ID] = rep
	return nil
}

func (r *replacementsRepo) ListRecent(ctx context.Context, limit int) ([]replacements.Replacement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]replacements.Replacement, 0, len(r.byID))
	for _, rep := range r.byID {
		out = append(out, rep)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
