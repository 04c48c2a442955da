package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeVenta      = "venta"      // salida por venta
	MovementTypeDevolucion = "devolucion" // entrada por devolución
	MovementTypeReposicion = "reposicion" // entrada por reposición
)

// ValidMovementType verifica que el tipo sea uno de los tres admitidos.
func ValidMovementType(tipo string) bool {
	switch tipo {
	case MovementTypeVenta, MovementTypeDevolucion, MovementTypeReposicion:
		return true
	}
	return false
}

// MovementDelta devuelve el efecto del movimiento sobre el stock:
// venta resta la cantidad; devolución y reposición la suman.
func MovementDelta(tipo string, cantidad int) int {
	if tipo == MovementTypeVenta {
		return -cantidad
	}
	return cantidad
}

// Movement es una entrada del libro de movimientos (append-only).
// Inmutable una vez escrita: no existen operaciones de update ni delete.
// Etiqueta guarda el nombre del producto (y la talla) resuelto al momento
// del registro, para que el historial sobreviva a renombres y borrados.
type Movement struct {
	ID            int64
	TransactionID string // agrupa las escrituras de una misma invocación del motor
	ProductID     int64
	SizeID        *int64 // nil cuando el movimiento no afecta una variante
	Etiqueta      string // ej. "Camiseta básica (M)"
	Tipo          string // venta, devolucion, reposicion
	Cantidad      int    // siempre positivo; el signo lo da el tipo
	Fecha         time.Time
	Usuario       string // nombre visible del usuario que ejecutó el movimiento
}
