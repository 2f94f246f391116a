package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/remote"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger *ledger.UseCase
	Remote *remote.Client // nil si no hay servicio remoto configurado
}

// Router registra las rutas que consume la capa de presentación.
func Router(app *fiber.App, deps RouterDeps) {
	handler := NewLedgerHandler(deps.Ledger, deps.Remote)

	productos := app.Group("/productos")
	productos.Get("/", handler.List)
	productos.Get("/remoto", handler.ListRemote)
	productos.Post("/", handler.Create)
	productos.Get("/:id", handler.GetByID)
	productos.Get("/:id/movimientos", handler.ListMovements)
	productos.Post("/:id/movimientos", handler.RecordMovement)
	productos.Put("/:id/umbrales", handler.UpdateThresholds)
	productos.Get("/:id/auditoria", handler.Audit)
}
