package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrProviderNotFound    = errors.New("proveedor no encontrado")
	ErrOrderNotFound       = errors.New("pedido no encontrado")
	ErrInstallmentNotFound = errors.New("cuota no encontrada")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidPaymentTerms = errors.New("condiciones de pago inválidas")
	ErrInvalidEvent        = errors.New("tipo de evento desconocido")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrSweepInProgress     = errors.New("ya hay un barrido de vencimientos en curso")
	ErrSubscriptionExpired = errors.New("suscripción push expirada")
	ErrChannelDisabled     = errors.New("canal de notificación no configurado")
)
