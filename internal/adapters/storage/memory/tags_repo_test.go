package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-tag-registry/internal/domain/tags"
)

func TestTagsRepoMutate(t *testing.T) {
	repo := NewTagsRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, tags.Tag{
		PetID:         "PET000001",
		Name:          "Milo",
		TagStatus:     tags.StatusOrdered,
		PaymentStatus: tags.PaymentPaid,
	}))

	got, err := repo.Mutate(ctx, "PET000001", func(tg *tags.Tag) error {
		tg.TagStatus = tags.StatusPrinted
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, tags.StatusPrinted, got.TagStatus)

	_, err = repo.Mutate(ctx, "PET999999", func(*tags.Tag) error { return nil })
	assert.ErrorIs(t, err, tags.ErrNotFound)
}

func TestTagsRepoMutate_ErrorDiscardsWrite(t *testing.T) {
	repo := NewTagsRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, tags.Tag{
		PetID:     "PET000001",
		TagStatus: tags.StatusOrdered,
	}))

	wantErr := assert.AnError
	_, err := repo.Mutate(ctx, "PET000001", func(tg *tags.Tag) error {
		tg.TagStatus = tags.StatusDelivered
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	got, err := repo.GetByID(ctx, "PET000001")
	require.NoError(t, err)
	assert.Equal(t, tags.StatusOrdered, got.TagStatus)
}

// Dos Mutate sobre el mismo pet no se intercalan: el segundo espera a que
// el primero termine su lectura-modificación-escritura completa.
func TestTagsRepoMutate_SerializesPerPet(t *testing.T) {
	repo := NewTagsRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, tags.Tag{
		PetID:         "PET000001",
		TagStatus:     tags.StatusOrdered,
		PaymentStatus: tags.PaymentPaid,
	}))

	entered := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan struct{})
	secondDone := make(chan struct{})

	go func() {
		defer close(firstDone)
		_, _ = repo.Mutate(ctx, "PET000001", func(tg *tags.Tag) error {
			close(entered)
			<-release
			tg.TagStatus = tags.StatusPrinted
			return nil
		})
	}()

	<-entered
	go func() {
		defer close(secondDone)
		_, _ = repo.Mutate(ctx, "PET000001", func(tg *tags.Tag) error {
			tg.PaymentStatus = tags.PaymentArrears
			return nil
		})
	}()

	select {
	case <-secondDone:
		t.Fatal("second mutate ran while the first still held the record")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-firstDone
	<-secondDone

	// ambas mutaciones sobreviven, cada eje con su valor
	got, err := repo.GetByID(ctx, "PET000001")
	require.NoError(t, err)
	assert.Equal(t, tags.StatusPrinted, got.TagStatus)
	assert.Equal(t, tags.PaymentArrears, got.PaymentStatus)
}
