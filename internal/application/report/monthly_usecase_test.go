package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/almacen-api/internal/application/report"
	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// reportItems implementa ItemRepository devolviendo una lista fija; el caso de
// uso del reporte solo consume ListActive.
type reportItems struct {
	repository.ItemRepository
	active []*entity.Item
}

func (r *reportItems) ListActive() ([]*entity.Item, error) { return r.active, nil }

// reportMovs implementa MovementRepository devolviendo ventanas fijas por tipo.
type reportMovs struct {
	repository.MovementRepository
	windows map[entity.MovementKind][]*entity.MovementWithItem
}

func (r *reportMovs) ListWindow(kind entity.MovementKind, from, to time.Time) ([]*entity.MovementWithItem, error) {
	return r.windows[kind], nil
}

// capturingPDF guarda el documento recibido y devuelve bytes fijos.
type capturingPDF struct {
	doc   *report.Document
	calls int
}

func (p *capturingPDF) Generate(_ context.Context, d *report.Document) ([]byte, error) {
	p.calls++
	p.doc = d
	return []byte("%PDF-fake"), nil
}

func mov(id int64, code, name string, qty int, day int) *entity.MovementWithItem {
	return &entity.MovementWithItem{
		Movement: entity.Movement{
			ID: id, ItemID: id, Quantity: qty,
			OccurredAt: time.Date(2024, time.May, day, 9, 30, 0, 0, time.UTC),
		},
		ItemCode: code, ItemName: name, ItemUnit: "Unit", ItemMaxThreshold: 100,
	}
}

func newReportUC(items []*entity.Item, windows map[entity.MovementKind][]*entity.MovementWithItem) (*report.MonthlyReportUseCase, *capturingPDF) {
	pdf := &capturingPDF{}
	uc := report.NewMonthlyReportUseCase(
		&reportItems{active: items},
		&reportMovs{windows: windows},
		pdf,
	)
	return uc, pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestReportBuild_PeriodoInvalido(t *testing.T) {
	uc, pdf := newReportUC(nil, nil)

	_, _, err := uc.GeneratePDF(context.Background(), 13, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, pdf.calls, "con período inválido no debe renderizarse nada")
}

func TestReportBuild_SeccionesYTotales(t *testing.T) {
	items := []*entity.Item{
		{ID: 1, Code: "TOR0001", Name: "Tornillos", Unit: "Caja", Stock: 150, MinThreshold: 10, MaxThreshold: 100},
		{ID: 2, Code: "CLA0002", Name: "Clavos", Unit: "Caja", Stock: 2, MinThreshold: 10, MaxThreshold: 100},
		{ID: 3, Code: "TUE0003", Name: "Tuercas", Unit: "Caja", Stock: 50, MinThreshold: 10, MaxThreshold: 100},
	}
	windows := map[entity.MovementKind][]*entity.MovementWithItem{
		entity.KindInbound: {
			mov(1, "TOR0001", "Tornillos", 20, 3),
			mov(2, "CLA0002", "Clavos", 15, 10),
		},
		entity.KindOutbound: {
			mov(3, "TUE0003", "Tuercas", 8, 12),
		},
	}
	uc, _ := newReportUC(items, windows)

	doc, err := uc.Build(5, 2024)
	require.NoError(t, err)

	assert.Equal(t, "REPORTE MENSUAL DE INVENTARIO", doc.Title)
	assert.Equal(t, "PERÍODO : MAYO 2024", doc.Period)
	require.Len(t, doc.Sections, 5)

	general := doc.Sections[0]
	assert.Equal(t, "TOTAL GENERAL", general.Title)
	require.Len(t, general.Summary, 2)
	assert.Equal(t, "3", general.Summary[0].Value)
	assert.Equal(t, "202", general.Summary[1].Value, "stock total: 150+2+50")

	entradas := doc.Sections[1]
	assert.Equal(t, "ENTRADAS", entradas.Title)
	require.Len(t, entradas.Rows, 2)
	assert.Equal(t, []string{"1", "TOR0001", "Tornillos", "Unit", "20", "03-05-2024 09:30", "100"},
		entradas.Rows[0])
	require.Len(t, entradas.Footer, 2)
	assert.Contains(t, entradas.Footer[0].Label, "2", "total de movimientos")
	assert.Contains(t, entradas.Footer[1].Value, "35", "suma de cantidades")

	salidas := doc.Sections[2]
	assert.Equal(t, "SALIDAS", salidas.Title)
	require.Len(t, salidas.Rows, 1)

	excedente := doc.Sections[3]
	assert.Equal(t, "STOCK EXCEDENTE", excedente.Title)
	require.Len(t, excedente.Rows, 1, "solo Tornillos supera su máximo")
	assert.Equal(t, "TOR0001", excedente.Rows[0][1])
	assert.Equal(t, "Excedente", excedente.Rows[0][7])

	faltante := doc.Sections[4]
	assert.Equal(t, "STOCK FALTANTE", faltante.Title)
	require.Len(t, faltante.Rows, 1, "solo Clavos está bajo su mínimo")
	assert.Equal(t, "CLA0002", faltante.Rows[0][1])
	assert.Equal(t, "Faltante", faltante.Rows[0][7])
}

func TestReportBuild_MesVacio(t *testing.T) {
	uc, _ := newReportUC(nil, nil)

	doc, err := uc.Build(2, 2024)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 5, "un mes sin datos genera el reporte completo igual")
	assert.Equal(t, "PERÍODO : FEBRERO 2024", doc.Period)
	assert.Empty(t, doc.Sections[1].Rows)
	assert.Empty(t, doc.Sections[2].Rows)
}

func TestReportGeneratePDF_NombreDeArchivo(t *testing.T) {
	uc, pdf := newReportUC(nil, nil)

	out, filename, err := uc.GeneratePDF(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "reporte_inventario_mensual_5_2024.pdf", filename)
	assert.Equal(t, 1, pdf.calls)
}
