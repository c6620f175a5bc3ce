// Package pdf genera el informe de existencias en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título  │  Fecha de generación                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Lote | Cant | Vence | ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valorización                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/inventory"
)

var _ inventory.ReportGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoPDFGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author se escribe en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// StockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) StockReport(report inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRows(report.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report inventory.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New(strconv.Itoa(len(report.Lines))+" stock records", props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// columnas: suman 12.
var columns = []struct {
	label string
	size  int
	align align.Type
}{
	{"SKU", 1, align.Left},
	{"Product", 3, align.Left},
	{"Warehouse", 2, align.Left},
	{"Batch", 1, align.Left},
	{"Units", 1, align.Right},
	{"Expires", 1, align.Center},
	{"Value", 1, align.Right},
	{"Alerts", 2, align.Left},
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func detailRows(lines []inventory.ReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		values := []string{
			"-", "-", "-",
			nonEmpty(l.Stock.Batch, "-"),
			strconv.Itoa(l.Stock.UnitQuantity) + unitSuffix(string(l.Stock.Unit)),
			"-",
			l.Value,
			strings.Join(l.Alerts, ", "),
		}
		if l.Product != nil {
			values[0], values[1] = l.Product.SKU, l.Product.Name
			if l.Product.Critical {
				values[1] += " (critical)"
			}
		}
		if l.Warehouse != nil {
			values[2] = l.Warehouse.Name
		}
		if l.Stock.ExpirationDate != nil {
			values[5] = l.Stock.ExpirationDate.Format(dto.DateLayout)
		}

		cols := make([]core.Col, 0, len(columns))
		for i, c := range columns {
			p := props.Text{Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1}
			if i == len(columns)-1 && len(l.Alerts) > 0 {
				p.Color = colorAlert
				p.Style = fontstyle.Bold
			}
			cols = append(cols, col.New(c.size).Add(text.New(values[i], p)))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

func totalRow(report inventory.StockReport) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("Total value:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2})),
		col.New(2).Add(text.New(report.TotalValue, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
