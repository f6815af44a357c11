package tags

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
	// Público
	r.Post("/pets/register", registerHandler(svc))
	r.Get("/scan/{petID}", scanHandler(svc))

	// Back office
	r.Get("/admin/stats", statsHandler(svc))
	r.Get("/admin/pets", listPetsHandler(svc))
	r.Get("/admin/tags/print-queue", printQueueHandler(svc))
	r.Post("/admin/tags/update-status", updateStatusHandler(svc))
	r.Post("/admin/tags/bulk-update", bulkUpdateHandler(svc))
	r.Post("/admin/pets/update-payment-status", updatePaymentHandler(svc))
}

type registerRequest struct {
	PetName      string `json:"pet_name"`
	Breed        string `json:"breed"`
	MedicalInfo  string `json:"medical_info"`
	Instructions string `json:"instructions"`
	PhotoURL     string `json:"photo_url"`
	QRCodeURL    string `json:"qr_code_url"`

	OwnerName         string `json:"owner_name"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email"`
	Address           string `json:"address"`
	BankAccountNumber string `json:"bank_account_number"`
	BranchCode        string `json:"branch_code"`
	AccountHolderName string `json:"account_holder_name"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	PetID   string `json:"pet_id"`
}

type ownerResponse struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type tagResponse struct {
	PetID            string        `json:"pet_id"`
	Name             string        `json:"name"`
	Breed            string        `json:"breed"`
	MedicalInfo      string        `json:"medical_info"`
	Instructions     string        `json:"instructions"`
	PhotoURL         string        `json:"photo_url,omitempty"`
	QRCodeURL        string        `json:"qr_code_url,omitempty"`
	Owner            ownerResponse `json:"owner"`
	TagStatus        TagStatus     `json:"tag_status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	ReplacementCount int           `json:"replacement_count"`
	ShippingTracking string        `json:"shipping_tracking,omitempty"`
	MonthlyFee       string        `json:"monthly_fee"`
	LastPayment      *time.Time    `json:"last_payment,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type scanResponse struct {
	PetName     string `json:"pet_name"`
	PetPhotoURL string `json:"pet_photo_url,omitempty"`
	OwnerName   string `json:"owner_name"`
	OwnerMobile string `json:"owner_mobile"`
}

// registerHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota nueva y emite su pet id (tag en estado ordered).
// @Tags pets
// @Accept json
// @Produce json
// @Param request body registerRequest true "Datos de registro"
// @Success 201 {object} registerResponse
// @Failure 400 {string} string "invalid input"
// @Router /pets/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Register(r.Context(), RegisterInput{
			PetName:           req.PetName,
			Breed:             req.Breed,
			MedicalInfo:       req.MedicalInfo,
			Instructions:      req.Instructions,
			PhotoURL:          req.PhotoURL,
			QRCodeURL:         req.QRCodeURL,
			OwnerName:         req.OwnerName,
			Mobile:            req.Mobile,
			Email:             req.Email,
			Address:           req.Address,
			BankAccountNumber: req.BankAccountNumber,
			BranchCode:        req.BranchCode,
			AccountHolderName: req.AccountHolderName,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{Success: true, PetID: t.PetID})
	}
}

// scanHandler godoc
// @Summary Escanear QR de mascota encontrada
// @Description Endpoint público: devuelve solo los datos que necesita quien encuentra la mascota.
// @Tags pets
// @Produce json
// @Param petID path string true "Pet ID (PET000123)"
// @Success 200 {object} scanResponse
// @Failure 404 {string} string "pet not found"
// @Router /scan/{petID} [get]
func scanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.Scan(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, scanResponse{
			PetName:     info.PetName,
			PetPhotoURL: info.PetPhotoURL,
			OwnerName:   info.OwnerName,
			OwnerMobile: info.OwnerMobile,
		})
	}
}

type statsResponse struct {
	TotalPets      int    `json:"total_pets"`
	PetsPaid       int    `json:"pets_paid"`
	PetsInArrears  int    `json:"pets_in_arrears"`
	MonthlyRevenue string `json:"monthly_revenue"`
}

// statsHandler godoc
// @Summary Resumen del dashboard
// @Description Totales por estado de pago y débito mensual proyectado.
// @Tags admin
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /admin/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		st, err := svc.Stats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			TotalPets:      st.TotalPets,
			PetsPaid:       st.PetsPaid,
			PetsInArrears:  st.PetsInArrears,
			MonthlyRevenue: st.MonthlyRevenue.StringFixed(2),
		})
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var filter ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			st, ok := ParseTagStatus(raw)
			if !ok {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			filter.TagStatus = &st
		}
		if raw := r.URL.Query().Get("payment_status"); raw != "" {
			ps, ok := ParsePaymentStatus(raw)
			if !ok {
				http.Error(w, "invalid payment_status", http.StatusBadRequest)
				return
			}
			filter.PaymentStatus = &ps
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toTagResponses(items))
	}
}

func printQueueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.PrintQueue(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toTagResponses(items))
	}
}

type updateStatusRequest struct {
	PetID  string `json:"pet_id"`
	Status string `json:"status"`
	Force  bool   `json:"force"` // saltos fuera de secuencia (corrección manual)
}

// updateStatusHandler godoc
// @Summary Avanzar estado del tag
// @Description Transición estricta al estado adyacente; force permite saltos.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body updateStatusRequest true "Transición"
// @Success 200 {object} tagResponse
// @Failure 409 {string} string "illegal transition"
// @Router /admin/tags/update-status [post]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next, ok := ParseTagStatus(req.Status)
		if !ok {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		t, err := svc.AdvanceStatus(r.Context(), req.PetID, next, req.Force)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTagResponse(t))
	}
}

type bulkUpdateRequest struct {
	PetIDs    []string `json:"pet_ids"`
	NewStatus string   `json:"new_status"`
	Notes     string   `json:"notes"`
	Force     bool     `json:"force"`
}

type bulkUpdateResponse struct {
	Success      bool     `json:"success"`
	UpdatedCount int      `json:"updated_count"`
	FailedIDs    []string `json:"failed_ids"`
}

func bulkUpdateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req bulkUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next, ok := ParseTagStatus(req.NewStatus)
		if !ok {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		res, err := svc.BulkAdvanceStatus(r.Context(), req.PetIDs, next, req.Notes, req.Force)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, bulkUpdateResponse{
			Success:      true,
			UpdatedCount: res.Updated,
			FailedIDs:    res.FailedIDs,
		})
	}
}

type updatePaymentRequest struct {
	PetID  string `json:"pet_id"`
	Status string `json:"status"`
}

func updatePaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req updatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ps, ok := ParsePaymentStatus(req.Status)
		if !ok {
			http.Error(w, "invalid payment status", http.StatusBadRequest)
			return
		}

		t, err := svc.UpdatePaymentStatus(r.Context(), req.PetID, ps)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTagResponse(t))
	}
}

func toTagResponse(t Tag) tagResponse {
	return tagResponse{
		PetID:        t.PetID,
		Name:         t.Name,
		Breed:        t.Breed,
		MedicalInfo:  t.MedicalInfo,
		Instructions: t.Instructions,
		PhotoURL:     t.PhotoURL,
		QRCodeURL:    t.QRCodeURL,
		Owner: ownerResponse{
			Name:    t.Owner.Name,
			Mobile:  t.Owner.Mobile,
			Email:   t.Owner.Email,
			Address: t.Owner.Address,
		},
		TagStatus:        t.TagStatus,
		PaymentStatus:    t.PaymentStatus,
		ReplacementCount: t.ReplacementCount,
		ShippingTracking: t.ShippingTracking,
		MonthlyFee:       t.MonthlyFee.StringFixed(2),
		LastPayment:      t.LastPayment,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toTagResponses(items []Tag) []tagResponse {
	out := make([]tagResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTagResponse(t))
	}
	return out
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrIllegalTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// requireAdmin y writeJSON están duplicados intencionalmente en los handlers
// de distintos módulos para evitar crear helpers compartidos demasiado pronto.
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
