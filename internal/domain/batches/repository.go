package batches

import "context"

type Repository interface {
	CreateManufacturing(ctx context.Context, b ManufacturingBatch) error
	CreateShipping(ctx context.Context, b ShippingBatch) error
	ListManufacturing(ctx context.Context) ([]ManufacturingBatch, error)
	ListShipping(ctx context.Context) ([]ShippingBatch, error)
}
