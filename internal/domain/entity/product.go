package entity

import "github.com/shopspring/decimal"

// MaxNameLength longitud máxima del nombre de producto (columna VARCHAR(64)).
const MaxNameLength = 64

// Product representa un producto del catálogo local con su stock cacheado.
// CurrentStock es un valor derivado pero materializado: siempre debe ser igual
// a la suma con signo de los movimientos del producto; el motor de ledger lo
// mantiene transaccionalmente en cada movimiento.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nombre"`
	Price        decimal.Decimal `json:"precio"` // precio de venta, 2 decimales
	MinStock     int64           `json:"minStock"`
	CurrentStock int64           `json:"currentStock"`
	MaxStock     int64           `json:"maxStock"`
}

// IsLowStock indica si el producto requiere reposición (stock bajo el mínimo).
// Función pura; el resultado no se persiste.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock < p.MinStock
}
