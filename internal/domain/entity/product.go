package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock total.
// Stock es el total declarado del producto; el desglose por talla vive en Variant.
// StockMinimo es el umbral de reorden: stock <= stock_minimo dispara la alerta.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       decimal.Decimal // precio de venta base
	Stock       int             // total de unidades, nunca negativo
	StockMinimo int             // umbral de stock bajo
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral de reorden.
// El límite es inclusivo: stock == stock_minimo ya cuenta como stock bajo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.StockMinimo
}
