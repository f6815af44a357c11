package replacements

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pet-tag-registry/internal/domain/tags"
	"pet-tag-registry/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Fee es el cargo fijo en ZAR por cada reemplazo, independiente del estado
// del tag original.
var Fee = decimal.RequireFromString("25.00")

type Service struct {
	repo     Repository
	tags     *tags.Service
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, tagsSvc *tags.Service, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		repo:     repo,
		tags:     tagsSvc,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create emite un tag nuevo para el linaje del original (replacement_count
// heredado + 1, estado ordered) y registra el vínculo old→new con el fee.
func (s *Service) Create(ctx context.Context, originalPetID string, reason Reason) (Replacement, error) {
	originalPetID = strings.TrimSpace(originalPetID)
	if originalPetID == "" {
		return Replacement{}, ErrInvalidInput
	}
	switch reason {
	case ReasonLost, ReasonDamaged, ReasonStolen:
	default:
		return Replacement{}, ErrInvalidInput
	}

	newTag, err := s.tags.RegisterReplacement(ctx, originalPetID)
	if err != nil {
		if errors.Is(err, tags.ErrNotFound) {
			return Replacement{}, ErrNotFound
		}
		return Replacement{}, err
	}

	rep := Replacement{
		ID:            uuid.NewString(),
		OriginalPetID: originalPetID,
		NewPetID:      newTag.PetID,
		Reason:        reason,
		Fee:           Fee,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return Replacement{}, err
	}

	// best-effort: notificación al dueño
	_ = s.notifier.ReplacementCreated(ctx, notify.ReplacementCreated{
		OriginalPetID: rep.OriginalPetID,
		NewPetID:      rep.NewPetID,
		Reason:        string(reason),
	})

	return rep, nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Replacement, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}
