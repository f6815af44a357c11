package replacements

import "context"

type Repository interface {
	Create(ctx context.Context, rep Replacement) error
	ListRecent(ctx context.Context, limit int) ([]Replacement, error)
}
