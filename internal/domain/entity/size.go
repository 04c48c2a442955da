package entity

// Size es una talla del catálogo de referencia, compartida por todos los
// productos. Solo lectura desde este subsistema.
type Size struct {
	ID    int64
	Label string // ej. "XS", "M", "42"
}
