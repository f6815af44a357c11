package tags

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-tag-registry/internal/ports/notify"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Tag
	counter int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Tag{}}
}

func (r *testRepo) NextPetID(ctx context.Context) (string, error) {
	r.counter++
	return fmt.Sprintf("PET%06d", r.counter), nil
}

func (r *testRepo) Create(ctx context.Context, t Tag) error {
	if t.PetID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[t.PetID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[t.PetID] = t
	return nil
}

func (r *testRepo) Mutate(ctx context.Context, petID string, fn func(t *Tag) error) (Tag, error) {
	t, ok := r.byID[petID]
	if !ok {
		return Tag{}, ErrNotFound
	}
	if err := fn(&t); err != nil {
		return Tag{}, err
	}
	r.byID[petID] = t
	return t, nil
}

func (r *testRepo) GetByID(ctx context.Context, petID string) (Tag, error) {
	t, ok := r.byID[petID]
	if !ok {
		return Tag{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Tag, error) {
	out := make([]Tag, 0)
	for _, t := range r.byID {
		if filter.TagStatus != nil && t.TagStatus != *filter.TagStatus {
			continue
		}
		if filter.PaymentStatus != nil && t.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// -------------------------
// Captura de eventos
// -------------------------

type captureNotifier struct {
	statusChanges []notify.TagStatusChanged
	shipping      []notify.ShippingBatchCreated
	replaced      []notify.ReplacementCreated
}

func (c *captureNotifier) TagStatusChanged(_ context.Context, ev notify.TagStatusChanged) error {
	c.statusChanges = append(c.statusChanges, ev)
	return nil
}

func (c *captureNotifier) ShippingBatchCreated(_ context.Context, ev notify.ShippingBatchCreated) error {
	c.shipping = append(c.shipping, ev)
	return nil
}

func (c *captureNotifier) ReplacementCreated(_ context.Context, ev notify.ReplacementCreated) error {
	c.replaced = append(c.replaced, ev)
	return nil
}

func newTestService() (*Service, *testRepo, *captureNotifier) {
	repo := newTestRepo()
	nc := &captureNotifier{}
	svc := NewService(repo, nc)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, nc
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		PetName:           "Milo",
		Breed:             "mixed",
		OwnerName:         "Jane Doe",
		Mobile:            "+27821234567",
		Email:             "jane@example.com",
		Address:           "12 Main Rd, Cape Town",
		BankAccountNumber: "123456789",
		BranchCode:        "632005",
		AccountHolderName: "J Doe",
	}
}

// -------------------------
// Register
// -------------------------

func TestRegister_MintsSequentialIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	second, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, "PET000001", first.PetID)
	assert.Equal(t, "PET000002", second.PetID)

	assert.Equal(t, StatusOrdered, first.TagStatus)
	assert.Equal(t, PaymentPaid, first.PaymentStatus)
	assert.Equal(t, 0, first.ReplacementCount)
	assert.Equal(t, "2.00", first.MonthlyFee.StringFixed(2))
	require.NotNil(t, first.LastPayment)
}

func TestRegister_RequiresPetAndOwner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := validRegisterInput()
	in.PetName = "  "
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = validRegisterInput()
	in.Mobile = ""
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// -------------------------
// AdvanceStatus
// -------------------------

func TestAdvanceStatus_StrictSequence(t *testing.T) {
	svc, _, nc := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.AdvanceStatus(ctx, tag.PetID, StatusPrinted, false)
	require.NoError(t, err)
	assert.Equal(t, StatusPrinted, updated.TagStatus)

	require.Len(t, nc.statusChanges, 1)
	assert.Equal(t, "ordered", nc.statusChanges[0].Old)
	assert.Equal(t, "printed", nc.statusChanges[0].New)
}

func TestAdvanceStatus_SameStatusIsNoop(t *testing.T) {
	svc, _, nc := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(ctx, tag.PetID, StatusPrinted, false)
	require.NoError(t, err)

	// segunda vez: mismo estado, sin error y sin evento nuevo
	again, err := svc.AdvanceStatus(ctx, tag.PetID, StatusPrinted, false)
	require.NoError(t, err)
	assert.Equal(t, StatusPrinted, again.TagStatus)
	assert.Len(t, nc.statusChanges, 1)
}

func TestAdvanceStatus_RejectsJumps(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(ctx, tag.PetID, StatusDelivered, false)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// el estado no cambió
	got, err := svc.GetByID(ctx, tag.PetID)
	require.NoError(t, err)
	assert.Equal(t, StatusOrdered, got.TagStatus)
}

func TestAdvanceStatus_ForceAllowsJumps(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.AdvanceStatus(ctx, tag.PetID, StatusDelivered, true)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.TagStatus)
}

func TestAdvanceStatus_NotFound(t *testing.T) {
	svc, _, nc := newTestService()

	_, err := svc.AdvanceStatus(context.Background(), "PET999999", StatusPrinted, false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, nc.statusChanges)
}

func TestAdvanceStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AdvanceStatus(context.Background(), "PET000001", TagStatus("retired"), false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// -------------------------
// BulkAdvanceStatus
// -------------------------

func TestBulkAdvanceStatus_BestEffort(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p1, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	p2, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	res, err := svc.BulkAdvanceStatus(ctx, []string{p1.PetID, p2.PetID, "PET999999"}, StatusPrinted, "print run 12", false)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, []string{"PET999999"}, res.FailedIDs)

	for _, id := range []string{p1.PetID, p2.PetID} {
		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StatusPrinted, got.TagStatus)
	}
}

func TestBulkAdvanceStatus_SkipsIllegalTransitions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p1, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	p2, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	// p2 queda en printed, p1 sigue en ordered
	_, err = svc.AdvanceStatus(ctx, p2.PetID, StatusPrinted, false)
	require.NoError(t, err)

	res, err := svc.BulkAdvanceStatus(ctx, []string{p1.PetID, p2.PetID}, StatusManufactured, "", false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{p1.PetID}, res.FailedIDs)
}

func TestBulkAdvanceStatus_EmptyInput(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.BulkAdvanceStatus(context.Background(), nil, StatusPrinted, "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// -------------------------
// Payment
// -------------------------

func TestUpdatePaymentStatus(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	updated, err := svc.UpdatePaymentStatus(ctx, tag.PetID, PaymentArrears)
	require.NoError(t, err)
	assert.Equal(t, PaymentArrears, updated.PaymentStatus)

	// volver a paid refresca last_payment
	later := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }

	updated, err = svc.UpdatePaymentStatus(ctx, tag.PetID, PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, updated.PaymentStatus)
	require.NotNil(t, updated.LastPayment)
	assert.Equal(t, later, *updated.LastPayment)
}

func TestUpdatePaymentStatus_InvalidValue(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdatePaymentStatus(context.Background(), "PET000001", PaymentStatus("pending"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// -------------------------
// Replacement lineage
// -------------------------

func TestRegisterReplacement(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	orig, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	_, err = svc.AdvanceStatus(ctx, orig.PetID, StatusDelivered, true)
	require.NoError(t, err)

	rep, err := svc.RegisterReplacement(ctx, orig.PetID)
	require.NoError(t, err)

	assert.NotEqual(t, orig.PetID, rep.PetID)
	assert.Equal(t, StatusOrdered, rep.TagStatus)
	assert.Equal(t, 1, rep.ReplacementCount)
	assert.Equal(t, orig.Owner, rep.Owner)
	assert.Empty(t, rep.ShippingTracking)

	// el original no se toca
	got, err := svc.GetByID(ctx, orig.PetID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.TagStatus)
	assert.Equal(t, 0, got.ReplacementCount)
}

func TestRegisterReplacement_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RegisterReplacement(context.Background(), "PET999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

// -------------------------
// Scan
// -------------------------

func TestScan_PublicSubsetOnly(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := validRegisterInput()
	in.PhotoURL = "/uploads/PET000001_milo.jpg"
	tag, err := svc.Register(ctx, in)
	require.NoError(t, err)

	info, err := svc.Scan(ctx, tag.PetID)
	require.NoError(t, err)

	assert.Equal(t, "Milo", info.PetName)
	assert.Equal(t, "/uploads/PET000001_milo.jpg", info.PetPhotoURL)
	assert.Equal(t, "Jane Doe", info.OwnerName)
	assert.Equal(t, "+27821234567", info.OwnerMobile)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "PET999999")
	assert.ErrorIs(t, err, ErrNotFound)

	// Scan propaga el mismo sentinel
	_, err = svc.Scan(context.Background(), "PET999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p1, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.UpdatePaymentStatus(ctx, p1.PetID, PaymentArrears)
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalPets)
	assert.Equal(t, 2, st.PetsPaid)
	assert.Equal(t, 1, st.PetsInArrears)
	// solo las mascotas al día suman al débito proyectado
	assert.Equal(t, "4.00", st.MonthlyRevenue.StringFixed(2))
}

func TestStats_Empty(t *testing.T) {
	svc, _, _ := newTestService()

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalPets)
	assert.Equal(t, "0.00", st.MonthlyRevenue.StringFixed(2))
}

func TestSetShippingTracking(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tag, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	err = svc.SetShippingTracking(ctx, []string{tag.PetID, "PET999999"}, "TRK-42")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, tag.PetID)
	require.NoError(t, err)
	assert.Equal(t, "TRK-42", got.ShippingTracking)
}
