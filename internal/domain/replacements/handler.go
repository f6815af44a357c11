package replacements

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-tag-registry/internal/middleware"
	"pet-tag-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/admin/tags/create-replacement", createReplacementHandler(svc))
	r.Get("/admin/tags/replacements", listReplacementsHandler(svc))
}

type createReplacementRequest struct {
	OriginalPetID string `json:"original_pet_id"`
	Reason        string `json:"reason" enums:"lost,damaged,stolen"`
}

type createReplacementResponse struct {
	Success        bool   `json:"success"`
	OriginalPetID  string `json:"original_pet_id"`
	NewPetID       string `json:"new_pet_id"`
	ReplacementFee string `json:"replacement_fee"`
}

type replacementResponse struct {
	ID            string    `json:"id"`
	OriginalPetID string    `json:"original_pet_id"`
	NewPetID      string    `json:"new_pet_id"`
	Reason        Reason    `json:"reason"`
	Fee           string    `json:"fee"`
	CreatedAt     time.Time `json:"created_at"`
}

// createReplacementHandler godoc
// @Summary Crear reemplazo de tag
// @Description Emite un pet id nuevo para el linaje y cobra el fee fijo. El motivo es un enum cerrado.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body createReplacementRequest true "Pet id original y motivo"
// @Success 201 {object} createReplacementResponse
// @Failure 400 {string} string "invalid reason"
// @Failure 404 {string} string "pet not found"
// @Router /admin/tags/create-replacement [post]
func createReplacementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req createReplacementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reason, ok := ParseReason(req.Reason)
		if !ok {
			http.Error(w, "reason must be one of: lost, damaged, stolen", http.StatusBadRequest)
			return
		}

		rep, err := svc.Create(r.Context(), req.OriginalPetID, reason)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, createReplacementResponse{
			Success:        true,
			OriginalPetID:  rep.OriginalPetID,
			NewPetID:       rep.NewPetID,
			ReplacementFee: rep.Fee.StringFixed(2),
		})
	}
}

func listReplacementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]replacementResponse, 0, len(items))
		for _, rep := range items {
			out = append(out, replacementResponse{
				ID:            rep.ID,
				OriginalPetID: rep.OriginalPetID,
				NewPetID:      rep.NewPetID,
				Reason:        rep.Reason,
				Fee:           rep.Fee.StringFixed(2),
				CreatedAt:     rep.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
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
