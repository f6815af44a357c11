package batches

import "time"

// ManufacturingBatch agrupa pet ids enviados juntos a producción física.
// Crear el batch NO avanza el estado de los tags: el operador marca
// printed/manufactured aparte cuando la producción ocurre de verdad.
type ManufacturingBatch struct {
	ID        string
	PetIDs    []string
	Notes     string
	CreatedAt time.Time
}

// ShippingBatch agrupa pet ids despachados juntos con un courier.
type ShippingBatch struct {
	ID             string
	Courier        string
	TrackingNumber string
	PetIDs         []string
	CreatedAt      time.Time
}
