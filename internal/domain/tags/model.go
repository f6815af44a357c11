package tags

import (
	"time"

	"github.com/shopspring/decimal"
)

// Owner guarda contacto y datos de débito del dueño.
// Los campos bancarios solo se usan en el export de cobranza.
type Owner struct {
	Name    string
	Mobile  string
	Email   string
	Address string

	BankAccountNumber string
	BranchCode        string
	AccountHolderName string
}

// Tag representa el registro de un tag QR emitido para una mascota.
// PetID es secuencial (PET000123), inmutable una vez emitido; un reemplazo
// crea un registro nuevo en el mismo linaje, nunca muta este.
type Tag struct {
	PetID string

	Name         string
	Breed        string
	MedicalInfo  string
	Instructions string

	// URLs opacas: las genera el pipeline de imágenes/QR, no este servicio.
	PhotoURL  string
	QRCodeURL string

	Owner Owner

	TagStatus     TagStatus
	PaymentStatus PaymentStatus

	ReplacementCount int
	ShippingTracking string

	MonthlyFee  decimal.Decimal
	LastPayment *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScanInfo es el subconjunto público que ve quien encuentra la mascota.
type ScanInfo struct {
	PetName     string
	PetPhotoURL string
	OwnerName   string
	OwnerMobile string
}
