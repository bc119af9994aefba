// Package pdf renderiza los documentos de reporte del almacén con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + línea de período               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: título │ bloque resumen (pares etiqueta/valor)     │
//	│  SECCIÓN: título │ tabla (cabecera + filas) + totales al pie │
//	│  ... una banda por sección, en el orden del documento        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jcastro/almacen-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate renderiza el documento y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, d *report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(d.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(d)...)
	for _, s := range d.Sections {
		m.AddRows(sectionRows(s)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título centrado + línea de período.
func headerRows(d *report.Document) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(d.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(d.Period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
		)),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

// sectionRows: una banda completa (título, resumen o tabla, pie).
func sectionRows(s report.Section) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(8).Add(col.New(12).Add(
			text.New(s.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		)),
	}

	for _, kv := range s.Summary {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(kv.Label, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Left: 2,
			})),
			col.New(8).Add(text.New(": "+kv.Value, props.Text{Size: 9, Top: 1})),
		))
	}

	if len(s.Headers) > 0 {
		widths := s.Widths
		if len(widths) != len(s.Headers) {
			widths = evenWidths(len(s.Headers))
		}
		rows = append(rows, tableHeaderRow(s.Headers, widths))
		if len(s.Rows) == 0 {
			rows = append(rows, row.New(7).Add(col.New(12).Add(
				text.New("Sin registros en el período", props.Text{
					Size: 8, Align: align.Center, Color: colorGray, Top: 2,
				}),
			)))
		}
		for _, cells := range s.Rows {
			rows = append(rows, tableDataRow(cells, widths))
		}
		rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	for _, kv := range s.Footer {
		label := kv.Label
		if label == "" {
			label = kv.Value
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			}),
		)))
	}

	return rows
}

// tableHeaderRow: cabecera de tabla en azul corporativo.
func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(h, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		))
	}
	return row.New(8).Add(cols...)
}

// tableDataRow: una fila de datos ya formateados.
func tableDataRow(cells []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		w := 1
		if i < len(widths) {
			w = widths[i]
		}
		cols = append(cols, col.New(w).Add(
			text.New(c, props.Text{Size: 8, Align: align.Center, Top: 1}),
		))
	}
	return row.New(6).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// evenWidths reparte la grilla de 12 entre n columnas; el sobrante va a las
// primeras columnas.
func evenWidths(n int) []int {
	base, rem := 12/n, 12%n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}
