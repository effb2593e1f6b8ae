package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso devuelven estos sentinelas; la capa HTTP los mapea a códigos.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Reglas del ledger de inventario.
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrReservedExceedsOnHand = errors.New("la reserva supera el stock disponible")
	ErrOverReceipt           = errors.New("la cantidad recibida supera la ordenada")
	ErrFractionalQuantity    = errors.New("cantidad fraccionaria no permitida para la unidad de medida")
	ErrBatchRequired         = errors.New("el producto exige lote y la línea no lo tiene")
	ErrBatchNotAllowed       = errors.New("el producto no maneja lotes y la línea trae uno")
	ErrBatchProductMismatch  = errors.New("el lote pertenece a otro producto")
	ErrLocationNotPickable   = errors.New("la ubicación no permite salidas (picking)")
	ErrLocationNotReceivable = errors.New("la ubicación no permite recepciones")
	ErrWarehouseMismatch     = errors.New("la ubicación no pertenece a la bodega del documento")
	ErrSameLocation          = errors.New("origen y destino del traslado no pueden ser la misma ubicación")

	// Protocolo de posteo.
	ErrInvalidState      = errors.New("el estado del documento no permite la operación")
	ErrNoActiveLines     = errors.New("el documento no tiene líneas activas")
	ErrImmutableDocument = errors.New("documento posteado: sus campos son inmutables")

	// Fallas de concurrencia; el caller puede reintentar el post completo
	// porque nada quedó parcialmente confirmado.
	ErrTxConflict = errors.New("conflicto de concurrencia, reintente la operación")
)
