package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidQuantity          = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrProductNotFound          = errors.New("producto no encontrado")
	ErrVariantNotFound          = errors.New("variante no encontrada para el producto")
	ErrSizeNotFound             = errors.New("talla no encontrada")
	ErrInsufficientStock        = errors.New("stock insuficiente")
	ErrInsufficientVariantStock = errors.New("stock insuficiente en la variante")
	ErrInvalidConfirmation      = errors.New("token de confirmación inválido o expirado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrInconsistentState        = errors.New("la suma de variantes no coincide con el stock total")
)
