package tags

import "strings"

// TagStatus define el estado del tag físico en el flujo de producción.
// @Enum ordered, printed, manufactured, shipped, delivered
type TagStatus string

const (
	StatusOrdered      TagStatus = "ordered"
	StatusPrinted      TagStatus = "printed"
	StatusManufactured TagStatus = "manufactured"
	StatusShipped      TagStatus = "shipped"
	StatusDelivered    TagStatus = "delivered"
)

// statusSequence fija la secuencia forward-only del ciclo de vida.
var statusSequence = []TagStatus{
	StatusOrdered,
	StatusPrinted,
	StatusManufactured,
	StatusShipped,
	StatusDelivered,
}

var statusOrder = func() map[TagStatus]int {
	m := make(map[TagStatus]int, len(statusSequence))
	for i, s := range statusSequence {
		m[s] = i
	}
	return m
}()

func ParseTagStatus(s string) (TagStatus, bool) {
	st := TagStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := statusOrder[st]
	return st, ok
}

func (s TagStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Next devuelve el estado siguiente en la secuencia.
// ok=false si s es terminal (delivered) o inválido.
func (s TagStatus) Next() (TagStatus, bool) {
	idx, ok := statusOrder[s]
	if !ok || idx+1 >= len(statusSequence) {
		return "", false
	}
	return statusSequence[idx+1], true
}

// CanAdvance valida una transición estricta: solo el estado adyacente
// siguiente. Re-afirmar el estado actual se trata como no-op en el service.
func CanAdvance(from, to TagStatus) bool {
	next, ok := from.Next()
	return ok && next == to
}

// PaymentStatus es un eje independiente del estado del tag.
// @Enum paid, arrears
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentArrears PaymentStatus = "arrears"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	ps := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch ps {
	case PaymentPaid, PaymentArrears:
		return ps, true
	}
	return "", false
}
