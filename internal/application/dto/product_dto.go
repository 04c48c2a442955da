package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantItem una talla dentro del conjunto de variantes de un producto.
// Stock 0 es válido: la fila se materializa igualmente.
type VariantItem struct {
	SizeID       int64           `json:"size_id"`
	Stock        int             `json:"stock"`
	PrecioAjuste decimal.Decimal `json:"precio_ajuste"`
}

// CreateProductRequest body para POST /api/products.
// Variants es opcional; si viene, se configura el desglose por talla junto
// con el producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	Variants    []VariantItem   `json:"variants,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/{id}. Los punteros nil
// dejan el campo como está; Variants no-nil reemplaza el conjunto completo.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	StockMinimo *int             `json:"stock_minimo,omitempty"`
	Variants    *[]VariantItem   `json:"variants,omitempty"`
}

// SetActiveRequest body para PATCH /api/products/{id}/active.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// OverrideStockRequest body para PATCH /api/products/{id}/stock.
// Ajuste administrativo directo: no genera entrada en el libro.
type OverrideStockRequest struct {
	Stock       int `json:"stock"`
	StockMinimo int `json:"stock_minimo"`
}

// VariantResponse una variante con su talla resuelta.
type VariantResponse struct {
	SizeID       int64           `json:"size_id"`
	SizeLabel    string          `json:"size_label"`
	SKU          string          `json:"sku"`
	Stock        int             `json:"stock"`
	PrecioAjuste decimal.Decimal `json:"precio_ajuste"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Stock       int               `json:"stock"`
	StockMinimo int               `json:"stock_minimo"`
	Active      bool              `json:"active"`
	LowStock    bool              `json:"low_stock"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// ReplaceVariantsRequest body para PUT /api/products/{id}/variants.
type ReplaceVariantsRequest struct {
	Variants []VariantItem `json:"variants"`
}

// ReplaceVariantsResponse conjunto resultante más la advertencia del
// invariante blando (suma de variantes vs. total del producto).
type ReplaceVariantsResponse struct {
	Variants     []VariantResponse `json:"variants"`
	VariantSum   int               `json:"variant_sum"`
	ProductStock int               `json:"product_stock"`
	Warning      string            `json:"warning,omitempty"`
}

// SizeResponse una talla del catálogo de referencia.
type SizeResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
