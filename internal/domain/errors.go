package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConstraint         = errors.New("violación de integridad en almacenamiento")
	ErrStorageUnavailable = errors.New("almacenamiento local no disponible")
	ErrRemoteUnavailable  = errors.New("servicio remoto no disponible")
)
