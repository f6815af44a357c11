package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"pet-tag-registry/internal/domain/replacements"
)

type ReplacementsRepo struct {
	db *sql.DB
}

func NewReplacementsRepo(db *sql.DB) *ReplacementsRepo {
	return &ReplacementsRepo{db: db}
}

func (r *ReplacementsRepo) Create(ctx context.Context, rep replacements.Replacement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tag_replacements (id, original_pet_id, new_pet_id, reason, fee, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		rep.ID,
		rep.OriginalPetID,
		rep.NewPetID,
		string(rep.Reason),
		rep.Fee.StringFixed(2),
		rep.CreatedAt,
	)
	return err
}

func (r *ReplacementsRepo) ListRecent(ctx context.Context, limit int) ([]replacements.Replacement, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, original_pet_id, new_pet_id, reason, fee, created_at
		FROM tag_replacements
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]replacements.Replacement, 0)
	for rows.Next() {
		var (
			rep    replacements.Replacement
			reason string
			fee    string
		)
		if err := rows.Scan(&rep.ID, &rep.OriginalPetID, &rep.NewPetID, &reason, &fee, &rep.CreatedAt); err != nil {
			return nil, err
		}

		rep.Reason = replacements.Reason(reason)
		d, err := decimal.NewFromString(fee)
		if err != nil {
			return nil, fmt.Errorf("parse fee: %w", err)
		}
		rep.Fee = d

		out = append(out, rep)
	}
	return out, rows.Err()
}
