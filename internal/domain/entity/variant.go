package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa el stock de un producto en una talla concreta.
// Identidad compuesta (ProductID, SizeID); el SKU se deriva del nombre del
// producto y la etiqueta de la talla. Las tallas sin unidades se materializan
// con Stock = 0 en lugar de omitir la fila, para distinguir "no configurada"
// de "configurada sin unidades".
type Variant struct {
	ProductID    int64
	SizeID       int64
	SizeLabel    string // etiqueta resuelta de la talla (join con sizes)
	SKU          string
	Stock        int             // nunca negativo
	PrecioAjuste decimal.Decimal // delta sobre el precio base, puede ser 0
	UpdatedAt    time.Time
}
