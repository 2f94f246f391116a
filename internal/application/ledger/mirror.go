package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// mirrorResultBuffer capacidad del canal de resultados del espejo. Si nadie
// observa, los resultados más viejos se descartan sin bloquear al motor.
const mirrorResultBuffer = 16

// MirrorResult resultado de un intento de espejo hacia el servicio remoto.
// Err nil significa que el remoto aceptó la creación.
type MirrorResult struct {
	ID        string `json:"id"` // identificador del intento, para correlación en logs
	ProductID int64  `json:"productId"`
	Name      string `json:"nombre"`
	Err       error  `json:"-"`
}

// MirrorResults expone el canal de resultados del espejo. La capa de
// presentación puede observarlo para mostrar advertencias no bloqueantes;
// ignorarlo es seguro.
func (uc *UseCase) MirrorResults() <-chan MirrorResult {
	return uc.mirrorResults
}

// mirrorCreated ejecuta el espejo de una creación de producto. Corre en su
// propia goroutine con un contexto acotado por timeout; el fallo se registra
// como advertencia y se publica en el canal, nunca revierte el insert local.
func (uc *UseCase) mirrorCreated(product *entity.Product) {
	if uc.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), uc.mirrorTimeout)
	defer cancel()

	result := MirrorResult{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
	}
	result.Err = uc.mirror.MirrorProductCreated(ctx, product.Name, product.Price, product.MinStock)

	if result.Err != nil {
		uc.log.Warn().
			Str("espejo_id", result.ID).
			Int64("producto_id", product.ID).
			Err(result.Err).
			Msg("espejo remoto falló; el producto local sigue siendo válido")
	} else {
		uc.log.Debug().
			Str("espejo_id", result.ID).
			Int64("producto_id", product.ID).
			Msg("producto espejado en el servicio remoto")
	}

	select {
	case uc.mirrorResults <- result:
	default:
		// canal lleno: liberar el resultado más viejo y reintentar una vez
		select {
		case <-uc.mirrorResults:
		default:
		}
		select {
		case uc.mirrorResults <- result:
		default:
		}
	}
}
