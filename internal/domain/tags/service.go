package tags

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pet-tag-registry/internal/ports/notify"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("illegal transition")
)

// DefaultMonthlyFee es la donación mensual en ZAR debitada por tag activo.
var DefaultMonthlyFee = decimal.RequireFromString("2.00")

type Service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

type RegisterInput struct {
	PetName      string
	Breed        string
	MedicalInfo  string
	Instructions string
	PhotoURL     string
	QRCodeURL    string

	OwnerName         string
	Mobile            string
	Email             string
	Address           string
	BankAccountNumber string
	BranchCode        string
	AccountHolderName string
}

// Register es el seam del flujo de registro: crea el Tag inicial en
// ordered/paid con un pet id nuevo del contador.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Tag, error) {
	if strings.TrimSpace(in.PetName) == "" {
		return Tag{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerName) == "" || strings.TrimSpace(in.Mobile) == "" {
		return Tag{}, ErrInvalidInput
	}

	petID, err := s.repo.NextPetID(ctx)
	if err != nil {
		return Tag{}, err
	}

	now := s.now()
	t := Tag{
		PetID:        petID,
		Name:         strings.TrimSpace(in.PetName),
		Breed:        strings.TrimSpace(in.Breed),
		MedicalInfo:  strings.TrimSpace(in.MedicalInfo),
		Instructions: strings.TrimSpace(in.Instructions),
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		QRCodeURL:    strings.TrimSpace(in.QRCodeURL),
		Owner: Owner{
			Name:              strings.TrimSpace(in.OwnerName),
			Mobile:            strings.TrimSpace(in.Mobile),
			Email:             strings.TrimSpace(in.Email),
			Address:           strings.TrimSpace(in.Address),
			BankAccountNumber: strings.TrimSpace(in.BankAccountNumber),
			BranchCode:        strings.TrimSpace(in.BranchCode),
			AccountHolderName: strings.TrimSpace(in.AccountHolderName),
		},
		TagStatus:     StatusOrdered,
		PaymentStatus: PaymentPaid,
		MonthlyFee:    DefaultMonthlyFee,
		LastPayment:   &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Tag{}, err
	}
	return t, nil
}

// RegisterReplacement crea un tag nuevo para la misma mascota/dueño,
// heredando el linaje (replacement_count + 1). El registro original no se
// toca: el id nuevo pasa a ser el miembro vivo del linaje.
func (s *Service) RegisterReplacement(ctx context.Context, originalPetID string) (Tag, error) {
	originalPetID = strings.TrimSpace(originalPetID)
	if originalPetID == "" {
		return Tag{}, ErrInvalidInput
	}

	orig, err := s.repo.GetByID(ctx, originalPetID)
	if err != nil {
		return Tag{}, err
	}

	petID, err := s.repo.NextPetID(ctx)
	if err != nil {
		return Tag{}, err
	}

	now := s.now()
	t := Tag{
		PetID:            petID,
		Name:             orig.Name,
		Breed:            orig.Breed,
		MedicalInfo:      orig.MedicalInfo,
		Instructions:     orig.Instructions,
		PhotoURL:         orig.PhotoURL,
		Owner:            orig.Owner,
		TagStatus:        StatusOrdered,
		PaymentStatus:    orig.PaymentStatus,
		ReplacementCount: orig.ReplacementCount + 1,
		MonthlyFee:       orig.MonthlyFee,
		LastPayment:      orig.LastPayment,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, petID string) (Tag, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Tag{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, petID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Tag, error) {
	return s.repo.List(ctx, filter)
}

// PrintQueue lista los tags pendientes de impresión (ordered).
func (s *Service) PrintQueue(ctx context.Context) ([]Tag, error) {
	st := StatusOrdered
	return s.repo.List(ctx, ListFilter{TagStatus: &st})
}

// Scan devuelve la vista pública para quien escanea el QR de una mascota
// encontrada: nombre, foto y contacto del dueño. Nada más.
func (s *Service) Scan(ctx context.Context, petID string) (ScanInfo, error) {
	t, err := s.GetByID(ctx, petID)
	if err != nil {
		return ScanInfo{}, err
	}
	return ScanInfo{
		PetName:     t.Name,
		PetPhotoURL: t.PhotoURL,
		OwnerName:   t.Owner.Name,
		OwnerMobile: t.Owner.Mobile,
	}, nil
}

// AdvanceStatus mueve el tag al estado next.
// Política estricta: solo la transición adyacente de la secuencia
// ordered→printed→manufactured→shipped→delivered. Re-afirmar el estado
// actual es no-op idempotente. force permite saltos (corrección manual).
func (s *Service) AdvanceStatus(ctx context.Context, petID string, next TagStatus, force bool) (Tag, error) {
	return s.advanceStatus(ctx, petID, next, "", force)
}

func (s *Service) advanceStatus(ctx context.Context, petID string, next TagStatus, notes string, force bool) (Tag, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || !next.Valid() {
		return Tag{}, ErrInvalidInput
	}

	var (
		old     TagStatus
		changed bool
	)
	// lectura y escritura dentro de Mutate: la serialización por pet_id
	// del repo evita que otra mutación pise este write
	t, err := s.repo.Mutate(ctx, petID, func(t *Tag) error {
		if t.TagStatus == next {
			// no-op: los operadores reintentan / hacen doble click
			return nil
		}
		if !force && !CanAdvance(t.TagStatus, next) {
			return ErrIllegalTransition
		}
		old = t.TagStatus
		t.TagStatus = next
		t.UpdatedAt = s.now()
		changed = true
		return nil
	})
	if err != nil {
		return Tag{}, err
	}
	if !changed {
		return t, nil
	}

	// best-effort: el notifier nunca falla la operación
	_ = s.notifier.TagStatusChanged(ctx, notify.TagStatusChanged{
		PetID: t.PetID,
		Old:   string(old),
		New:   string(next),
		Notes: notes,
	})

	return t, nil
}

type BulkResult struct {
	Updated   int
	FailedIDs []string
}

// BulkAdvanceStatus aplica AdvanceStatus a cada id, best-effort: ids
// inexistentes o con transición ilegal se saltan y se reportan en FailedIDs,
// nunca abortan el resto. Los ids se procesan ordenados para que dos bulks
// concurrentes toquen los registros en el mismo orden.
func (s *Service) BulkAdvanceStatus(ctx context.Context, petIDs []string, next TagStatus, notes string, force bool) (BulkResult, error) {
	if !next.Valid() {
		return BulkResult{}, ErrInvalidInput
	}

	ids := normalizeIDs(petIDs)
	if len(ids) == 0 {
		return BulkResult{}, ErrInvalidInput
	}

	res := BulkResult{FailedIDs: make([]string, 0)}
	for _, id := range ids {
		if _, err := s.advanceStatus(ctx, id, next, notes, force); err != nil {
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}
		res.Updated++
	}
	return res, nil
}

// UpdatePaymentStatus es un set simple sobre el eje de pago; al volver a
// paid se registra la fecha como último débito exitoso.
func (s *Service) UpdatePaymentStatus(ctx context.Context, petID string, status PaymentStatus) (Tag, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Tag{}, ErrInvalidInput
	}
	switch status {
	case PaymentPaid, PaymentArrears:
	default:
		return Tag{}, ErrInvalidInput
	}

	return s.repo.Mutate(ctx, petID, func(t *Tag) error {
		now := s.now()
		if status == PaymentPaid && t.PaymentStatus != PaymentPaid {
			t.LastPayment = &now
		}
		t.PaymentStatus = status
		t.UpdatedAt = now
		return nil
	})
}

// Stats es el resumen que consume el dashboard de administración.
type Stats struct {
	TotalPets      int
	PetsPaid       int
	PetsInArrears  int
	MonthlyRevenue decimal.Decimal
}

// Stats cuenta mascotas por estado de pago y suma el débito mensual
// proyectado (fee de cada mascota al día).
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	st := Stats{MonthlyRevenue: decimal.Zero}
	for _, t := range items {
		st.TotalPets++
		switch t.PaymentStatus {
		case PaymentPaid:
			st.PetsPaid++
			st.MonthlyRevenue = st.MonthlyRevenue.Add(t.MonthlyFee)
		case PaymentArrears:
			st.PetsInArrears++
		}
	}
	return st, nil
}

// SetShippingTracking estampa el tracking de un batch de envío en cada tag
// incluido. Best-effort, lo llama el módulo de batches.
func (s *Service) SetShippingTracking(ctx context.Context, petIDs []string, tracking string) error {
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		return nil
	}

	for _, id := range normalizeIDs(petIDs) {
		_, _ = s.repo.Mutate(ctx, id, func(t *Tag) error {
			t.ShippingTracking = tracking
			t.UpdatedAt = s.now()
			return nil
		})
	}
	return nil
}

// normalizeIDs recorta, deduplica y ordena (orden de lock consistente).
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
