// Package pdf genera el reporte imprimible de stock bajo para el panel de
// administración usando Maroto v2.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.LowStockPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.LowStockPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(_ context.Context, products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}
	if len(products) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Sin productos bajo el umbral de reorden.", props.Text{
				Size: 9, Style: fontstyle.Italic, Color: colorGray,
			})),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Reporte de stock bajo", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("2006-01-02 15:04"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(1).Add(text.New("ID", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Categoría", header)),
		col.New(2).Add(text.New("Stock", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
		col.New(2).Add(text.New("Mínimo", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := props.Text{Size: 9}
	num := props.Text{Size: 9, Align: align.Right}
	return row.New(6).Add(
		col.New(1).Add(text.New(strconv.FormatInt(p.ID, 10), cell)),
		col.New(5).Add(text.New(p.Name, cell)),
		col.New(2).Add(text.New(p.Category, cell)),
		col.New(2).Add(text.New(strconv.Itoa(p.Stock), num)),
		col.New(2).Add(text.New(strconv.Itoa(p.StockMinimo), num)),
	)
}

func footerRow(total int) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("%d producto(s) en o por debajo de su umbral de reorden", total),
			props.Text{Size: 8, Color: colorGray},
		)),
	)
}
