package notify

import "context"

// Eventos discretos del ciclo de vida de tags. Un componente externo
// (mailer, webhook) se suscribe implementando Notifier; los servicios de
// dominio los emiten best-effort y nunca fallan la operación por un notifier.

type TagStatusChanged struct {
	PetID string `json:"pet_id"`
	Old   string `json:"old"`
	New   string `json:"new"`
	Notes string `json:"notes,omitempty"`
}

type ShippingBatchCreated struct {
	ShippingID     string   `json:"shipping_id"`
	Courier        string   `json:"courier"`
	TrackingNumber string   `json:"tracking_number,omitempty"`
	PetIDs         []string `json:"pet_ids"`
}

type ReplacementCreated struct {
	OriginalPetID string `json:"original_pet_id"`
	NewPetID      string `json:"new_pet_id"`
	Reason        string `json:"reason"`
}

type Notifier interface {
	TagStatusChanged(ctx context.Context, ev TagStatusChanged) error
	ShippingBatchCreated(ctx context.Context, ev ShippingBatchCreated) error
	ReplacementCreated(ctx context.Context, ev ReplacementCreated) error
}

// Nop descarta todos los eventos (modo dev y tests).
type Nop struct{}

func (Nop) TagStatusChanged(context.Context, TagStatusChanged) error         { return nil }
func (Nop) ShippingBatchCreated(context.Context, ShippingBatchCreated) error { return nil }
func (Nop) ReplacementCreated(context.Context, ReplacementCreated) error     { return nil }
