package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-tag-registry/internal/middleware"
	"pet-tag-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/admin/billing/csv", exportCSVHandler(svc))
	r.Post("/admin/billing/import", importCSVHandler(svc))
}

// exportCSVHandler godoc
// @Summary Exportar CSV de cobranza
// @Description Descarga el CSV mensual de débitos (mascotas con payment_status=paid).
// @Tags billing
// @Produce text/csv
// @Success 200 {string} string "CSV"
// @Router /admin/billing/csv [get]
func exportCSVHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		filename := fmt.Sprintf("billing_%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if _, err := svc.ExportDebits(r.Context(), w); err != nil {
			// headers ya salieron; solo queda cortar
			return
		}
	}
}

type importResponse struct {
	Success      bool     `json:"success"`
	UpdatedCount int      `json:"updated_count"`
	FailedIDs    []string `json:"failed_ids"`
}

func importCSVHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		res, err := svc.ImportPaymentStatuses(r.Context(), r.Body)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "empty csv", http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid csv", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, importResponse{
			Success:      true,
			UpdatedCount: res.Updated,
			FailedIDs:    res.FailedIDs,
		})
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if claims.Role != auth.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
