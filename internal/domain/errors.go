package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidFilter     = errors.New("filtro de fecha inválido")
	ErrRefreshInProgress = errors.New("ya hay una actualización del dashboard en curso")
	ErrSnapshotNotFound  = errors.New("no hay métricas previas para este filtro")
)
