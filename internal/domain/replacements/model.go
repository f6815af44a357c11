package replacements

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reason define los motivos aceptados para reemplazar un tag.
// @Enum lost, damaged, stolen
type Reason string

const (
	ReasonLost    Reason = "lost"
	ReasonDamaged Reason = "damaged"
	ReasonStolen  Reason = "stolen"
)

func ParseReason(s string) (Reason, bool) {
	r := Reason(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case ReasonLost, ReasonDamaged, ReasonStolen:
		return r, true
	}
	return "", false
}

// Replacement vincula el pet id original con el nuevo dentro de un linaje.
// El registro original no cambia de estado: el id nuevo arranca en ordered
// y pasa a ser el miembro vivo del linaje.
type Replacement struct {
	ID            string
	OriginalPetID string
	NewPetID      string
	Reason        Reason
	Fee           decimal.Decimal
	CreatedAt     time.Time
}
