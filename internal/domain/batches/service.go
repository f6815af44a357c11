package batches

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-tag-registry/internal/domain/tags"
	"pet-tag-registry/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

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

type BatchResult struct {
	BatchID    string
	PetCount   int
	SkippedIDs []string
}

type ShippingResult struct {
	ShippingID string
	PetCount   int
	SkippedIDs []string
}

// CreateManufacturing agrupa tags elegibles (ordered o printed) en un batch.
// Ids inexistentes o en otro estado se saltan y se reportan; el batch solo
// registra la agrupación, no toca tag_status.
func (s *Service) CreateManufacturing(ctx context.Context, petIDs []string, notes string) (BatchResult, error) {
	ids := normalizeIDs(petIDs)
	if len(ids) == 0 {
		return BatchResult{}, ErrInvalidInput
	}

	eligible, skipped := s.partitionByStatus(ctx, ids, tags.StatusOrdered, tags.StatusPrinted)
	if len(eligible) == 0 {
		return BatchResult{}, ErrInvalidInput
	}

	b := ManufacturingBatch{
		ID:        uuid.NewString(),
		PetIDs:    eligible,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateManufacturing(ctx, b); err != nil {
		return BatchResult{}, err
	}

	return BatchResult{BatchID: b.ID, PetCount: len(eligible), SkippedIDs: skipped}, nil
}

// CreateShipping agrupa tags manufacturados en un despacho. Si hay tracking,
// lo estampa en cada tag incluido. No avanza a shipped: eso lo hace el
// operador (bulk o individual) cuando el courier retira.
func (s *Service) CreateShipping(ctx context.Context, petIDs []string, courier, trackingNumber string) (ShippingResult, error) {
	courier = strings.TrimSpace(courier)
	if courier == "" {
		return ShippingResult{}, ErrInvalidInput
	}

	ids := normalizeIDs(petIDs)
	if len(ids) == 0 {
		return ShippingResult{}, ErrInvalidInput
	}

	eligible, skipped := s.partitionByStatus(ctx, ids, tags.StatusManufactured)
	if len(eligible) == 0 {
		return ShippingResult{}, ErrInvalidInput
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	b := ShippingBatch{
		ID:             uuid.NewString(),
		Courier:        courier,
		TrackingNumber: trackingNumber,
		PetIDs:         eligible,
		CreatedAt:      s.now(),
	}
	if err := s.repo.CreateShipping(ctx, b); err != nil {
		return ShippingResult{}, err
	}

	if trackingNumber != "" {
		_ = s.tags.SetShippingTracking(ctx, eligible, trackingNumber)
	}

	// best-effort: dispara la notificación por mascota en el servicio externo
	_ = s.notifier.ShippingBatchCreated(ctx, notify.ShippingBatchCreated{
		ShippingID:     b.ID,
		Courier:        courier,
		TrackingNumber: trackingNumber,
		PetIDs:         eligible,
	})

	return ShippingResult{ShippingID: b.ID, PetCount: len(eligible), SkippedIDs: skipped}, nil
}

func (s *Service) ListManufacturing(ctx context.Context) ([]ManufacturingBatch, error) {
	return s.repo.ListManufacturing(ctx)
}

func (s *Service) ListShipping(ctx context.Context) ([]ShippingBatch, error) {
	return s.repo.ListShipping(ctx)
}

// partitionByStatus separa ids elegibles de saltados según el estado actual
// del tag. Ids inexistentes cuentan como saltados.
func (s *Service) partitionByStatus(ctx context.Context, ids []string, allowed ...tags.TagStatus) (eligible, skipped []string) {
	eligible = make([]string, 0, len(ids))
	skipped = make([]string, 0)

	for _, id := range ids {
		t, err := s.tags.GetByID(ctx, id)
		if err != nil {
			skipped = append(skipped, id)
			continue
		}

		ok := false
		for _, st := range allowed {
			if t.TagStatus == st {
				ok = true
				break
			}
		}
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		eligible = append(eligible, id)
	}
	return eligible, skipped
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
