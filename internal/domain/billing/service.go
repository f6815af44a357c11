package billing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"pet-tag-registry/internal/domain/tags"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// csvHeader es el layout que espera el banco para el débito mensual.
var csvHeader = []string{"Customer_ID", "Account_Holder_Name", "Account_Number", "Branch_Code", "Amount"}

type Service struct {
	tags *tags.Service
}

func NewService(tagsSvc *tags.Service) *Service {
	return &Service{tags: tagsSvc}
}

// ExportDebits escribe el CSV de cobranza mensual: un renglón por mascota
// con payment_status=paid, monto = fee mensual. Devuelve la cantidad de
// renglones exportados.
func (s *Service) ExportDebits(ctx context.Context, w io.Writer) (int, error) {
	ps := tags.PaymentPaid
	items, err := s.tags.List(ctx, tags.ListFilter{PaymentStatus: &ps})
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	for _, t := range items {
		row := []string{
			t.PetID,
			t.Owner.AccountHolderName,
			t.Owner.BankAccountNumber,
			t.Owner.BranchCode,
			t.MonthlyFee.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	return len(items), cw.Error()
}

type ImportResult struct {
	Updated   int
	FailedIDs []string
}

// ImportPaymentStatuses procesa el CSV de respuesta del banco:
// renglones pet_id,payment_status. Best-effort como el bulk de tags:
// renglones inválidos o ids inexistentes se reportan, no abortan el resto.
func (s *Service) ImportPaymentStatuses(ctx context.Context, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validamos a mano por renglón

	res := ImportResult{FailedIDs: make([]string, 0)}
	first := true

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("read csv: %w", err)
		}

		// header opcional
		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "pet_id") {
				continue
			}
		}

		if len(rec) < 2 {
			res.FailedIDs = append(res.FailedIDs, strings.Join(rec, ","))
			continue
		}

		petID := strings.TrimSpace(rec[0])
		status, ok := tags.ParsePaymentStatus(rec[1])
		if petID == "" || !ok {
			res.FailedIDs = append(res.FailedIDs, petID)
			continue
		}

		if _, err := s.tags.UpdatePaymentStatus(ctx, petID, status); err != nil {
			res.FailedIDs = append(res.FailedIDs, petID)
			continue
		}
		res.Updated++
	}

	if res.Updated == 0 && len(res.FailedIDs) == 0 {
		return ImportResult{}, ErrInvalidInput
	}
	return res, nil
}
