package batches

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-tag-registry/internal/middleware"
	"pet-tag-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/admin/tags/create-manufacturing-batch", createManufacturingHandler(svc))
	r.Post("/admin/tags/create-shipping-batch", createShippingHandler(svc))
	r.Get("/admin/tags/batches", listBatchesHandler(svc))
}

type createManufacturingRequest struct {
	PetIDs []string `json:"pet_ids"`
	Notes  string   `json:"notes"`
}

type createManufacturingResponse struct {
	Success    bool     `json:"success"`
	BatchID    string   `json:"batch_id"`
	PetCount   int      `json:"pet_count"`
	SkippedIDs []string `json:"skipped_ids"`
}

type createShippingRequest struct {
	PetIDs         []string `json:"pet_ids"`
	Courier        string   `json:"courier"`
	TrackingNumber string   `json:"tracking_number"`
}

type createShippingResponse struct {
	Success    bool     `json:"success"`
	ShippingID string   `json:"shipping_id"`
	PetCount   int      `json:"pet_count"`
	SkippedIDs []string `json:"skipped_ids"`
}

type manufacturingBatchResponse struct {
	BatchID   string    `json:"batch_id"`
	PetIDs    []string  `json:"pet_ids"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type shippingBatchResponse struct {
	ShippingID     string    `json:"shipping_id"`
	Courier        string    `json:"courier"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	PetIDs         []string  `json:"pet_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

type listBatchesResponse struct {
	Manufacturing []manufacturingBatchResponse `json:"manufacturing"`
	Shipping      []shippingBatchResponse      `json:"shipping"`
}

// createManufacturingHandler godoc
// @Summary Crear batch de producción
// @Description Agrupa tags en estado ordered/printed para mandarlos a producir. No avanza tag_status.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body createManufacturingRequest true "Pet ids y notas"
// @Success 201 {object} createManufacturingResponse
// @Failure 400 {string} string "invalid input"
// @Router /admin/tags/create-manufacturing-batch [post]
func createManufacturingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req createManufacturingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.CreateManufacturing(r.Context(), req.PetIDs, req.Notes)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "no eligible pets for manufacturing batch", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createManufacturingResponse{
			Success:    true,
			BatchID:    res.BatchID,
			PetCount:   res.PetCount,
			SkippedIDs: res.SkippedIDs,
		})
	}
}

func createShippingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req createShippingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.CreateShipping(r.Context(), req.PetIDs, req.Courier, req.TrackingNumber)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "courier required and at least one manufactured pet", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createShippingResponse{
			Success:    true,
			ShippingID: res.ShippingID,
			PetCount:   res.PetCount,
			SkippedIDs: res.SkippedIDs,
		})
	}
}

func listBatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		mfg, err := svc.ListManufacturing(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		shp, err := svc.ListShipping(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := listBatchesResponse{
			Manufacturing: make([]manufacturingBatchResponse, 0, len(mfg)),
			Shipping:      make([]shippingBatchResponse, 0, len(shp)),
		}
		for _, b := range mfg {
			out.Manufacturing = append(out.Manufacturing, manufacturingBatchResponse{
				BatchID:   b.ID,
				PetIDs:    b.PetIDs,
				Notes:     b.Notes,
				CreatedAt: b.CreatedAt,
			})
		}
		for _, b := range shp {
			out.Shipping = append(out.Shipping, shippingBatchResponse{
				ShippingID:     b.ID,
				Courier:        b.Courier,
				TrackingNumber: b.TrackingNumber,
				PetIDs:         b.PetIDs,
				CreatedAt:      b.CreatedAt,
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
