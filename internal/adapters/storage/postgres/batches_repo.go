package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pet-tag-registry/internal/domain/batches"
)

type BatchesRepo struct {
	db *sql.DB
}

func NewBatchesRepo(db *sql.DB) *BatchesRepo {
	return &BatchesRepo{db: db}
}

// pet_ids se guarda como jsonb: el servicio siempre lee el batch entero,
// no hace falta consultarlo por id individual.
func (r *BatchesRepo) CreateManufacturing(ctx context.Context, b batches.ManufacturingBatch) error {
	ids, err := json.Marshal(b.PetIDs)
	if err != nil {
		return fmt.Errorf("marshal pet_ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO manufacturing_batches (id, pet_ids, notes, created_at)
		VALUES ($1,$2,$3,$4)
	`, b.ID, ids, b.Notes, b.CreatedAt)
	return err
}

func (r *BatchesRepo) CreateShipping(ctx context.Context, b batches.ShippingBatch) error {
	ids, err := json.Marshal(b.PetIDs)
	if err != nil {
		return fmt.Errorf("marshal pet_ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO shipping_batches (id, courier, tracking_number, pet_ids, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, b.ID, b.Courier, b.TrackingNumber, ids, b.CreatedAt)
	return err
}

func (r *BatchesRepo) ListManufacturing(ctx context.Context) ([]batches.ManufacturingBatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_ids, notes, created_at
		FROM manufacturing_batches
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]batches.ManufacturingBatch, 0)
	for rows.Next() {
		var (
			b   batches.ManufacturingBatch
			ids []byte
		)
		if err := rows.Scan(&b.ID, &ids, &b.Notes, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ids, &b.PetIDs); err != nil {
			return nil, fmt.Errorf("unmarshal pet_ids: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BatchesRepo) ListShipping(ctx context.Context) ([]batches.ShippingBatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, courier, tracking_number, pet_ids, created_at
		FROM shipping_batches
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]batches.ShippingBatch, 0)
	for rows.Next() {
		var (
			b   batches.ShippingBatch
			ids []byte
		)
		if err := rows.Scan(&b.ID, &b.Courier, &b.TrackingNumber, &ids, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ids, &b.PetIDs); err != nil {
			return nil, fmt.Errorf("unmarshal pet_ids: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
