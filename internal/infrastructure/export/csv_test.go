package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
)

func readAll(t *testing.T, data []byte, delim Delimiter) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = rune(delim)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestMovementsCSV(t *testing.T) {
	fecha := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	sizeID := int64(2)
	movements := []*entity.Movement{
		{ID: 7, ProductID: 1, SizeID: &sizeID, Etiqueta: "Camiseta Azul (M)", Tipo: entity.MovementTypeVenta, Cantidad: 3, Fecha: fecha, Usuario: "ana"},
		{ID: 8, ProductID: 1, Etiqueta: "Camiseta Azul", Tipo: entity.MovementTypeReposicion, Cantidad: 10, Fecha: fecha, Usuario: "luis"},
	}

	data, err := MovementsCSV(movements, Comma)
	require.NoError(t, err)

	rows := readAll(t, data, Comma)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "product_name", "type", "quantity", "timestamp", "acting_user"}, rows[0])
	assert.Equal(t, []string{"7", "Camiseta Azul (M)", "venta", "3", "2026-08-30T15:04:05Z", "ana"}, rows[1])
	assert.Equal(t, []string{"8", "Camiseta Azul", "reposicion", "10", "2026-08-30T15:04:05Z", "luis"}, rows[2])
}

// El delimitador configurable se respeta; una etiqueta con coma no rompe el
// CSV porque el writer la entrecomilla.
func TestMovementsCSV_DelimitadorYComillas(t *testing.T) {
	movements := []*entity.Movement{
		{ID: 1, Etiqueta: "Camiseta roja, manga larga (M)", Tipo: entity.MovementTypeVenta, Cantidad: 1, Fecha: time.Now(), Usuario: "ana"},
	}

	data, err := MovementsCSV(movements, Semicolon)
	require.NoError(t, err)

	rows := readAll(t, data, Semicolon)
	require.Len(t, rows, 2)
	assert.Equal(t, "Camiseta roja, manga larga (M)", rows[1][1])
}

func TestProductsCSV(t *testing.T) {
	products := []*entity.Product{
		{ID: 1, Name: "Camiseta Azul", Category: "Camisetas", Price: decimal.RequireFromString("19.90"), Stock: 10, StockMinimo: 3, Active: true},
		{ID: 2, Name: "Gorra", Category: "Accesorios", Price: decimal.NewFromInt(12), Stock: 5, StockMinimo: 1, Active: false},
	}

	data, err := ProductsCSV(products, Comma)
	require.NoError(t, err)

	rows := readAll(t, data, Comma)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "category", "stock", "stock_minimo", "price", "active"}, rows[0])
	// El precio siempre sale con dos decimales, como en la columna NUMERIC(12,2).
	assert.Equal(t, []string{"1", "Camiseta Azul", "Camisetas", "10", "3", "19.90", "true"}, rows[1])
	assert.Equal(t, []string{"2", "Gorra", "Accesorios", "5", "1", "12.00", "false"}, rows[2])
}

// CSV vacío sigue llevando la fila de cabecera.
func TestCSV_SinFilas(t *testing.T) {
	data, err := MovementsCSV(nil, Comma)
	require.NoError(t, err)
	rows := readAll(t, data, Comma)
	assert.Len(t, rows, 1)
}

func TestParseDelimiter(t *testing.T) {
	assert.Equal(t, Semicolon, ParseDelimiter(";"))
	assert.Equal(t, Comma, ParseDelimiter(","))
	assert.Equal(t, Comma, ParseDelimiter(""))
	assert.Equal(t, Comma, ParseDelimiter("tab"))
}

func TestInventoryZip(t *testing.T) {
	movCSV := []byte("id,product_name\n")
	prodCSV := []byte("id,name\n")

	data, err := InventoryZip(movCSV, prodCSV)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	contents := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[f.Name] = b
	}
	assert.Equal(t, movCSV, contents["movements.csv"])
	assert.Equal(t, prodCSV, contents["products.csv"])
}
