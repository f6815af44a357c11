package tags_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "pet-tag-registry/internal/adapters/storage/memory"
	"pet-tag-registry/internal/domain/tags"
)

// Un avance de estado concurrente con un cambio de payment_status no debe
// pisar el otro eje: ambas escrituras sobreviven en el registro final.
func TestConcurrentStatusAndPaymentWrites(t *testing.T) {
	svc := tags.NewService(mem.NewTagsRepo(), nil)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		tag, err := svc.Register(ctx, tags.RegisterInput{
			PetName:   "Milo",
			OwnerName: "Jane Doe",
			Mobile:    "+27821234567",
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AdvanceStatus(ctx, tag.PetID, tags.StatusPrinted, false)
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.UpdatePaymentStatus(ctx, tag.PetID, tags.PaymentArrears)
		}()
		wg.Wait()

		got, err := svc.GetByID(ctx, tag.PetID)
		require.NoError(t, err)
		assert.Equal(t, tags.StatusPrinted, got.TagStatus)
		assert.Equal(t, tags.PaymentArrears, got.PaymentStatus)
	}
}

// Bulk advance concurrente con un import de cobranza: cada pet conserva las
// dos escrituras aunque toquen el mismo registro a la vez.
func TestConcurrentBulkAndPaymentWrites(t *testing.T) {
	svc := tags.NewService(mem.NewTagsRepo(), nil)
	ctx := context.Background()

	ids := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		tag, err := svc.Register(ctx, tags.RegisterInput{
			PetName:   "Nala",
			OwnerName: "Sipho Ndlovu",
			Mobile:    "+27835550101",
		})
		require.NoError(t, err)
		ids = append(ids, tag.PetID)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.BulkAdvanceStatus(ctx, ids, tags.StatusPrinted, "", false)
	}()
	go func() {
		defer wg.Done()
		for _, id := range ids {
			_, _ = svc.UpdatePaymentStatus(ctx, id, tags.PaymentArrears)
		}
	}()
	wg.Wait()

	for _, id := range ids {
		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tags.StatusPrinted, got.TagStatus)
		assert.Equal(t, tags.PaymentArrears, got.PaymentStatus)
	}
}
