package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pet-tag-registry/internal/domain/tags"
)

type TagsRepo struct {
	db *sql.DB
}

func NewTagsRepo(db *sql.DB) *TagsRepo {
	return &TagsRepo{db: db}
}

const tagColumns = `
	pet_id, name, breed, medical_info, instructions,
	photo_url, qr_code_url,
	owner_name, owner_mobile, owner_email, owner_address,
	bank_account_number, branch_code, account_holder_name,
	tag_status, payment_status, replacement_count, shipping_tracking,
	monthly_fee, last_payment, created_at, updated_at
`

func (r *TagsRepo) NextPetID(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('pet_id_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("PET%06d", n), nil
}

func (r *TagsRepo) Create(ctx context.Context, t tags.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_tags (`+tagColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	`,
		t.PetID,
		t.Name,
		t.Breed,
		t.MedicalInfo,
		t.Instructions,
		t.PhotoURL,
		t.QRCodeURL,
		t.Owner.Name,
		t.Owner.Mobile,
		t.Owner.Email,
		t.Owner.Address,
		t.Owner.BankAccountNumber,
		t.Owner.BranchCode,
		t.Owner.AccountHolderName,
		string(t.TagStatus),
		string(t.PaymentStatus),
		t.ReplacementCount,
		t.ShippingTracking,
		t.MonthlyFee.StringFixed(2),
		toNullTime(t.LastPayment),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// Mutate lee el registro con SELECT ... FOR UPDATE dentro de una
// transacción: el row lock de Postgres serializa las mutaciones del mismo
// pet_id entre instancias del servicio.
func (r *TagsRepo) Mutate(ctx context.Context, petID string, fn func(t *tags.Tag) error) (tags.Tag, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return tags.Tag{}, tags.ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return tags.Tag{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+tagColumns+`
		FROM pet_tags
		WHERE pet_id = $1
		FOR UPDATE
	`, petID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return tags.Tag{}, tags.ErrNotFound
	}
	if err != nil {
		return tags.Tag{}, err
	}

	if err := fn(&t); err != nil {
		return tags.Tag{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE pet_tags
		SET
			name = $2,
			breed = $3,
			medical_info = $4,
			instructions = $5,
			photo_url = $6,
			qr_code_url = $7,
			tag_status = $8,
			payment_status = $9,
			replacement_count = $10,
			shipping_tracking = $11,
			monthly_fee = $12,
			last_payment = $13,
			updated_at = $14
		WHERE pet_id = $1
	`,
		t.PetID,
		t.Name,
		t.Breed,
		t.MedicalInfo,
		t.Instructions,
		t.PhotoURL,
		t.QRCodeURL,
		string(t.TagStatus),
		string(t.PaymentStatus),
		t.ReplacementCount,
		t.ShippingTracking,
		t.MonthlyFee.StringFixed(2),
		toNullTime(t.LastPayment),
		t.UpdatedAt,
	); err != nil {
		return tags.Tag{}, err
	}

	if err := tx.Commit(); err != nil {
		return tags.Tag{}, err
	}
	return t, nil
}

func (r *TagsRepo) GetByID(ctx context.Context, petID string) (tags.Tag, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return tags.Tag{}, tags.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+tagColumns+`
		FROM pet_tags
		WHERE pet_id = $1
	`, petID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return tags.Tag{}, tags.ErrNotFound
	}
	return t, err
}

func (r *TagsRepo) List(ctx context.Context, filter tags.ListFilter) ([]tags.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM pet_tags`
	args := make([]any, 0, 2)
	where := make([]string, 0, 2)

	if filter.TagStatus != nil {
		args = append(args, string(*filter.TagStatus))
		where = append(where, fmt.Sprintf("tag_status = $%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, string(*filter.PaymentStatus))
		where = append(where, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC, pet_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tags.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (tags.Tag, error) {
	var (
		t           tags.Tag
		status      string
		payment     string
		fee         string
		lastPayment sql.NullTime
	)

	if err := row.Scan(
		&t.PetID,
		&t.Name,
		&t.Breed,
		&t.MedicalInfo,
		&t.Instructions,
		&t.PhotoURL,
		&t.QRCodeURL,
		&t.Owner.Name,
		&t.Owner.Mobile,
		&t.Owner.Email,
		&t.Owner.Address,
		&t.Owner.BankAccountNumber,
		&t.Owner.BranchCode,
		&t.Owner.AccountHolderName,
		&status,
		&payment,
		&t.ReplacementCount,
		&t.ShippingTracking,
		&fee,
		&lastPayment,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return tags.Tag{}, err
	}

	t.TagStatus = tags.TagStatus(status)
	t.PaymentStatus = tags.PaymentStatus(payment)

	d, err := decimal.NewFromString(fee)
	if err != nil {
		return tags.Tag{}, fmt.Errorf("parse monthly_fee: %w", err)
	}
	t.MonthlyFee = d

	if lastPayment.Valid {
		lp := lastPayment.Time
		t.LastPayment = &lp
	}
	return t, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
