package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// CreateProductRequest body para POST /productos.
type CreateProductRequest struct {
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	MinStock int64           `json:"minStock"`
}

// RecordMovementRequest body para POST /productos/:id/movimientos.
// Tipo: "entrada" o "salida"; Cantidad: magnitud positiva.
type RecordMovementRequest struct {
	Type     string `json:"tipo"`
	Quantity int64  `json:"cantidad"`
}

// UpdateThresholdsRequest body para PUT /productos/:id/umbrales.
type UpdateThresholdsRequest struct {
	MinStock int64 `json:"minStock"`
	MaxStock int64 `json:"maxStock"`
}

// ProductResponse producto más el flag calculado de stock bajo.
type ProductResponse struct {
	*entity.Product
	LowStock bool `json:"lowStock"`
}

// NewProductResponse arma la respuesta a partir de la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.IsLowStock()}
}

// NewProductListResponse arma la respuesta de listado.
func NewProductListResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ErrorResponse respuesta de error con motivo distinguible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
