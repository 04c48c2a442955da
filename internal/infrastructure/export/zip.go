package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// InventoryZip empaqueta los CSV de movimientos y productos en un único ZIP
// en memoria, listo para descargar.
func InventoryZip(movementsCSV, productsCSV []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name string
		data []byte
	}{
		{"movements.csv", movementsCSV},
		{"products.csv", productsCSV},
	}
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", f.name, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
