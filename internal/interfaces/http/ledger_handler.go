package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/remote"
)

// LedgerHandler maneja los comandos del motor de ledger que consume la capa
// de presentación.
type LedgerHandler struct {
	uc     *ledger.UseCase
	remote *remote.Client
}

// NewLedgerHandler construye el handler. remote puede ser nil si no hay
// servicio remoto configurado.
func NewLedgerHandler(uc *ledger.UseCase, remote *remote.Client) *LedgerHandler {
	return &LedgerHandler{uc: uc, remote: remote}
}

// errorResponse mapea errores de dominio a un status y un motivo distinguible.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConstraint):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: "violación de integridad"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento local no disponible"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: "servicio remoto no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// List devuelve el catálogo local: GET /productos.
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewProductListResponse(products))
}

// ListRemote hidrata desde el servicio remoto: GET /productos/remoto.
// Ante fallo remoto responde 502 y la presentación degrada a la lista local.
func (h *LedgerHandler) ListRemote(c *fiber.Ctx) error {
	if h.remote == nil {
		return errorResponse(c, domain.ErrRemoteUnavailable)
	}
	products, err := h.remote.FetchProducts(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewProductListResponse(products))
}

// Create crea un producto: POST /productos.
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.AddProduct(c.Context(), ledger.AddProductInput{
		Name:     in.Name,
		Price:    in.Price,
		MinStock: in.MinStock,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// GetByID devuelve el detalle de un producto: GET /productos/:id.
func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	product, err := h.uc.GetProduct(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// ListMovements devuelve el historial del ledger: GET /productos/:id/movimientos.
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	movements, err := h.uc.ListMovements(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(movements)
}

// RecordMovement registra una entrada o salida: POST /productos/:id/movimientos.
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.RecordMovement(c.Context(), id, entity.Direction(in.Type), in.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// UpdateThresholds actualiza umbrales: PUT /productos/:id/umbrales.
func (h *LedgerHandler) UpdateThresholds(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.UpdateThresholds(c.Context(), id, in.MinStock, in.MaxStock)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Audit contrasta stock cacheado contra ledger: GET /productos/:id/auditoria.
func (h *LedgerHandler) Audit(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	audit, err := h.uc.VerifyStock(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(struct {
		ledger.StockAudit
		Consistent bool `json:"consistent"`
	}{StockAudit: audit, Consistent: audit.Consistent()})
}
