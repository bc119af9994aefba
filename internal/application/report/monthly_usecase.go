package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jcastro/almacen-api/internal/application/inventory"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
	"github.com/jcastro/almacen-api/internal/domain/stock"
)

// monthNames nombres de mes para la línea de período (índice 1-12).
var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthlyReportUseCase arma el reporte mensual de inventario: totales
// generales, entradas y salidas del período, y stock excedente/faltante.
// El estado de stock es siempre "al día de hoy", independiente del período
// reportado.
type MonthlyReportUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	pdf      PDFGenerator
}

// NewMonthlyReportUseCase construye el caso de uso.
func NewMonthlyReportUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, pdf PDFGenerator) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{itemRepo: itemRepo, movRepo: movRepo, pdf: pdf}
}

// GeneratePDF arma el documento del período y lo renderiza. Devuelve los
// bytes del PDF y el nombre de archivo sugerido.
func (uc *MonthlyReportUseCase) GeneratePDF(ctx context.Context, month, year int) ([]byte, string, error) {
	doc, err := uc.Build(month, year)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.Generate(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("renderizar reporte mensual: %w", err)
	}
	filename := fmt.Sprintf("reporte_inventario_mensual_%d_%d.pdf", month, year)
	return out, filename, nil
}

// Build construye el documento tabular del reporte. Valida el período antes
// de tocar el almacenamiento.
func (uc *MonthlyReportUseCase) Build(month, year int) (*Document, error) {
	if err := inventory.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	from, to := inventory.MonthWindow(month, year)

	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return nil, err
	}
	inbound, err := uc.movRepo.ListWindow(entity.KindInbound, from, to)
	if err != nil {
		return nil, err
	}
	outbound, err := uc.movRepo.ListWindow(entity.KindOutbound, from, to)
	if err != nil {
		return nil, err
	}

	totalStock := 0
	var over, under []*entity.Item
	for _, it := range items {
		totalStock += it.Stock
		switch s := stock.Classify(it.Stock, it.MinThreshold, it.MaxThreshold); {
		case s == stock.StatusHigh:
			over = append(over, it)
		case stock.IsLowOrEmpty(s):
			under = append(under, it)
		}
	}

	doc := &Document{
		Title:  "REPORTE MENSUAL DE INVENTARIO",
		Period: fmt.Sprintf("PERÍODO : %s %d", strings.ToUpper(monthNames[month]), year),
		Sections: []Section{
			{
				Title: "TOTAL GENERAL",
				Summary: []KV{
					{Label: "Total de items", Value: strconv.Itoa(len(items))},
					{Label: "Stock total", Value: strconv.Itoa(totalStock)},
				},
			},
			movementSection("ENTRADAS", inbound),
			movementSection("SALIDAS", outbound),
			stockSection("STOCK EXCEDENTE", "Excedente", over),
			stockSection("STOCK FALTANTE", "Faltante", under),
		},
	}
	return doc, nil
}

// movementSection tabla de movimientos del período con totales al pie.
func movementSection(title string, rows []*entity.MovementWithItem) Section {
	data := make([][]string, 0, len(rows))
	totalQty := 0
	for i, m := range rows {
		totalQty += m.Quantity
		data = append(data, []string{
			strconv.Itoa(i + 1),
			m.ItemCode,
			m.ItemName,
			m.ItemUnit,
			strconv.Itoa(m.Quantity),
			m.OccurredAt.Format("02-01-2006 15:04"),
			strconv.Itoa(m.ItemMaxThreshold),
		})
	}
	return Section{
		Title:   title,
		Headers: []string{"N°", "CÓDIGO", "NOMBRE", "UNIDAD", "CANTIDAD", "FECHA Y HORA", "UMBRAL MÁX."},
		Widths:  []int{1, 2, 3, 1, 1, 2, 2},
		Rows:    data,
		Footer: []KV{
			{Label: fmt.Sprintf("TOTAL MOVIMIENTOS : %d", len(rows))},
			{Value: fmt.Sprintf("TOTAL CANTIDAD : %d", totalQty)},
		},
	}
}

// stockSection tabla de items fuera de umbral, con el estado al día de hoy.
func stockSection(title, status string, items []*entity.Item) Section {
	data := make([][]string, 0, len(items))
	totalStock := 0
	for i, it := range items {
		totalStock += it.Stock
		data = append(data, []string{
			strconv.Itoa(i + 1),
			it.Code,
			it.Name,
			it.Unit,
			strconv.Itoa(it.Stock),
			strconv.Itoa(it.MinThreshold),
			strconv.Itoa(it.MaxThreshold),
			status,
		})
	}
	return Section{
		Title:   title,
		Headers: []string{"N°", "CÓDIGO", "NOMBRE", "UNIDAD", "STOCK", "UMBRAL MÍN.", "UMBRAL MÁX.", "ESTADO"},
		Widths:  []int{1, 2, 3, 1, 1, 1, 1, 2},
		Rows:    data,
		Footer: []KV{
			{Label: fmt.Sprintf("TOTAL ITEMS : %d", len(items))},
			{Value: fmt.Sprintf("STOCK TOTAL : %d", totalStock)},
		},
	}
}
