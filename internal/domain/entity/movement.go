package entity

import "time"

// Direction dirección de un movimiento de stock (value object conceptual).
type Direction string

const (
	DirectionEntry Direction = "entrada" // entrada de inventario (suma)
	DirectionExit  Direction = "salida"  // salida de inventario (resta)
)

// Valid indica si la dirección es una de las conocidas.
func (d Direction) Valid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// Delta convierte una magnitud positiva en el delta con signo de la dirección.
func (d Direction) Delta(magnitude int64) int64 {
	if d == DirectionExit {
		return -magnitude
	}
	return magnitude
}

// Movement representa un movimiento de stock inmutable (entrada o salida).
// Se persiste el delta con signo en Quantity, de modo que la dirección es
// recuperable sin rederivarla: positivo = entrada, negativo = salida.
// Los movimientos son append-only: nunca se actualizan ni se borran.
type Movement struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"productId"`
	OccurredAt time.Time `json:"fechaHora"`
	Quantity   int64     `json:"cantidad"`
}

// Direction recupera la dirección a partir del signo del delta.
func (m *Movement) Direction() Direction {
	if m.Quantity < 0 {
		return DirectionExit
	}
	return DirectionEntry
}

// Magnitude devuelve la magnitud sin signo del movimiento.
func (m *Movement) Magnitude() int64 {
	if m.Quantity < 0 {
		return -m.Quantity
	}
	return m.Quantity
}
