package ledger

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// UseCase es el motor de ledger: valida y aplica las operaciones que afectan
// stock contra el almacenamiento local y dispara el espejo remoto como mejor
// esfuerzo. Local-first: el id asignado localmente es el autoritativo y el
// resultado del espejo jamás lo sobrescribe.
type UseCase struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	mirror    Mirrorer
	log       *logger.Logger

	mirrorTimeout time.Duration
	mirrorResults chan MirrorResult
}

// New construye el motor. mirror puede ser nil cuando no hay servicio remoto
// configurado; en ese caso las creaciones no se espejan.
func New(
	txRunner TxRunner,
	products repository.ProductRepository,
	movements repository.MovementRepository,
	mirror Mirrorer,
	log *logger.Logger,
	mirrorTimeout time.Duration,
) *UseCase {
	if mirrorTimeout <= 0 {
		mirrorTimeout = 5 * time.Second
	}
	return &UseCase{
		txRunner:      txRunner,
		products:      products,
		movements:     movements,
		mirror:        mirror,
		log:           log,
		mirrorTimeout: mirrorTimeout,
		mirrorResults: make(chan MirrorResult, mirrorResultBuffer),
	}
}

// AddProductInput entrada para crear un producto.
type AddProductInput struct {
	Name     string
	Price    decimal.Decimal
	MinStock int64
}

// AddProduct valida la entrada, inserta el producto localmente y programa el
// espejo remoto (fire-and-forget). Devuelve el producto creado con su id
// local para que el llamador pueda navegar directo al detalle.
func (uc *UseCase) AddProduct(ctx context.Context, in AddProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > entity.MaxNameLength {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product := &entity.Product{
		Name:     name,
		Price:    in.Price.Round(2),
		MinStock: in.MinStock,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("producto_id", product.ID).
		Str("nombre", product.Name).
		Msg("producto creado localmente")

	// El espejo corre desacoplado del ctx del llamador: la escritura local ya
	// es definitiva aunque el llamador cancele.
	go uc.mirrorCreated(product)

	return product, nil
}

// RecordMovement aplica una entrada o salida de stock como unidad atómica:
// lee el stock dentro de la transacción, valida el invariante de no-negatividad,
// registra el movimiento con el delta firmado y actualiza el stock cacheado.
// Una salida que deje el stock exactamente en 0 es válida; una que lo deje
// negativo se rechaza completa, nunca se recorta a 0.
func (uc *UseCase) RecordMovement(ctx context.Context, productID int64, direction entity.Direction, magnitude int64) (*entity.Product, error) {
	if !direction.Valid() || magnitude <= 0 {
		return nil, domain.ErrInvalidInput
	}
	delta := direction.Delta(magnitude)

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		product, err := products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		newStock := product.CurrentStock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		movement := &entity.Movement{
			ProductID:  productID,
			OccurredAt: time.Now().UTC(),
			Quantity:   delta,
		}
		if err := movements.Append(ctx, movement); err != nil {
			return err
		}
		if err := products.UpdateStock(ctx, productID, newStock); err != nil {
			return err
		}
		product.CurrentStock = newStock
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("producto_id", productID).
		Str("tipo", string(direction)).
		Int64("cantidad", magnitude).
		Int64("stock", updated.CurrentStock).
		Msg("movimiento registrado")

	return updated, nil
}

// UpdateThresholds actualiza los umbrales min/max de stock. Ambos deben ser
// no negativos y minStock <= maxStock; si no, no se escribe nada. No toca el
// stock ni genera movimientos.
func (uc *UseCase) UpdateThresholds(ctx context.Context, productID, minStock, maxStock int64) (*entity.Product, error) {
	if minStock < 0 || maxStock < 0 || minStock > maxStock {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		if err := products.UpdateThresholds(ctx, productID, minStock, maxStock); err != nil {
			return err
		}
		product, err := products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProduct devuelve un producto por id.
func (uc *UseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.products.GetByID(ctx, id)
}

// ListProducts devuelve el catálogo local ordenado por id ascendente.
func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.products.List(ctx)
}

// ListMovements devuelve el historial de movimientos de un producto.
func (uc *UseCase) ListMovements(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.movements.ListByProduct(ctx, productID)
}

// StockAudit resultado de contrastar el stock cacheado contra la suma del ledger.
type StockAudit struct {
	ProductID   int64 `json:"productId"`
	CachedStock int64 `json:"cachedStock"`
	LedgerSum   int64 `json:"ledgerSum"`
	Drift       int64 `json:"drift"` // CachedStock - LedgerSum
}

// Consistent indica que el stock cacheado coincide con la suma del ledger.
func (a StockAudit) Consistent() bool {
	return a.Drift == 0
}

// VerifyStock recalcula la suma con signo de los movimientos de un producto y
// la contrasta con el stock cacheado, sin mutar nada. Lee ambos valores dentro
// de una transacción para obtener un snapshot consistente.
func (uc *UseCase) VerifyStock(ctx context.Context, productID int64) (StockAudit, error) {
	var audit StockAudit
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		product, err := products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		sum, err := movements.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		audit = StockAudit{
			ProductID:   productID,
			CachedStock: product.CurrentStock,
			LedgerSum:   sum,
			Drift:       product.CurrentStock - sum,
		}
		return nil
	})
	if err != nil {
		return StockAudit{}, err
	}
	if !audit.Consistent() {
		uc.log.Warn().
			Int64("producto_id", productID).
			Int64("stock_cacheado", audit.CachedStock).
			Int64("suma_ledger", audit.LedgerSum).
			Msg("deriva detectada entre stock cacheado y ledger")
	}
	return audit, nil
}
