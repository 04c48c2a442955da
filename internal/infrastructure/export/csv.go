// Package export genera los archivos CSV y ZIP que consumen los dashboards
// externos. Formateo puro sobre datos ya cargados; no toca estado.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
)

// Delimiter separador de campos para los CSV. Coma por defecto; punto y coma
// para hojas de cálculo con configuración regional europea/latina.
type Delimiter rune

const (
	Comma     Delimiter = ','
	Semicolon Delimiter = ';'
)

// ParseDelimiter interpreta el valor de configuración; cualquier cosa distinta
// de ";" cae en coma.
func ParseDelimiter(s string) Delimiter {
	if s == ";" {
		return Semicolon
	}
	return Comma
}

// MovementsCSV serializa el historial con el orden de columnas pactado:
// id, product_name, type, quantity, timestamp, acting_user.
func MovementsCSV(movements []*entity.Movement, delim Delimiter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = rune(delim)

	if err := w.Write([]string{"id", "product_name", "type", "quantity", "timestamp", "acting_user"}); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, m := range movements {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Etiqueta,
			m.Tipo,
			strconv.Itoa(m.Cantidad),
			m.Fecha.Format(time.RFC3339),
			m.Usuario,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ProductsCSV serializa productos con el orden de columnas pactado:
// id, name, category, stock, stock_minimo, price, active.
func ProductsCSV(products []*entity.Product, delim Delimiter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = rune(delim)

	if err := w.Write([]string{"id", "name", "category", "stock", "stock_minimo", "price", "active"}); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.StockMinimo),
			p.Price.StringFixed(2),
			strconv.FormatBool(p.Active),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}
