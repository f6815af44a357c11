package tags

import "context"

type Repository interface {
	// NextPetID avanza el contador y devuelve el siguiente id (PET000123).
	NextPetID(ctx context.Context) (string, error)

	Create(ctx context.Context, t Tag) error

	// GetByID devuelve ErrNotFound si el pet id no existe.
	GetByID(ctx context.Context, petID string) (Tag, error)
	List(ctx context.Context, filter ListFilter) ([]Tag, error)

	// Mutate aplica fn sobre el registro bajo serialización por pet_id:
	// ninguna otra mutación del mismo pet corre entre la lectura y la
	// escritura. Si fn devuelve error, no se escribe nada y el error se
	// propaga. Devuelve ErrNotFound si el pet id no existe.
	Mutate(ctx context.Context, petID string, fn func(t *Tag) error) (Tag, error)
}

type ListFilter struct {
	TagStatus     *TagStatus
	PaymentStatus *PaymentStatus
}
