package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// SizeID nil = movimiento solo sobre el total del producto.
// ConfirmToken solo aplica a ventas (segunda fase).
type ApplyMovementRequest struct {
	ProductID    int64  `json:"product_id"`
	SizeID       *int64 `json:"size_id,omitempty"`
	Tipo         string `json:"tipo"`
	Cantidad     int    `json:"cantidad"`
	ConfirmToken string `json:"confirm_token,omitempty"`
}

// LowStockAlertDTO aviso de stock bajo para el colaborador de notificaciones.
type LowStockAlertDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	NewStock    int    `json:"new_stock"`
	Threshold   int    `json:"threshold"`
}

// ApplyMovementResponse resultado de un movimiento aplicado.
type ApplyMovementResponse struct {
	TransactionID   string            `json:"transaction_id"`
	MovementID      int64             `json:"movement_id"`
	NewStock        int               `json:"new_stock"`
	NewVariantStock *int              `json:"new_variant_stock,omitempty"`
	LowStock        bool              `json:"low_stock"`
	Alert           *LowStockAlertDTO `json:"alert,omitempty"`
}

// ConfirmationResponse primera fase de una venta: token a reenviar.
type ConfirmationResponse struct {
	ConfirmToken string `json:"confirm_token"`
	Message      string `json:"message"`
}

// MovementEntry una entrada del libro en respuestas de listado.
type MovementEntry struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	SizeID    *int64    `json:"size_id,omitempty"`
	Etiqueta  string    `json:"etiqueta"`
	Tipo      string    `json:"tipo"`
	Cantidad  int       `json:"cantidad"`
	Fecha     time.Time `json:"fecha"`
	Usuario   string    `json:"usuario"`
}

// MovementListResponse página del historial, ordenada por fecha descendente.
type MovementListResponse struct {
	Movements []MovementEntry `json:"movements"`
	Page      PageResponse    `json:"page"`
}

// OrderLineItem una línea de orden en la reserva de stock del checkout.
type OrderLineItem struct {
	ProductID int64  `json:"product_id"`
	SizeID    *int64 `json:"size_id,omitempty"`
	Cantidad  int    `json:"cantidad"`
}

// ReserveStockRequest body para POST /api/checkout/reserve.
type ReserveStockRequest struct {
	Lines []OrderLineItem `json:"lines"`
}

// ReserveStockResponse resultado por línea de la reserva.
type ReserveStockResponse struct {
	Applied []ApplyMovementResponse `json:"applied"`
	Alerts  []LowStockAlertDTO      `json:"alerts,omitempty"`
}
