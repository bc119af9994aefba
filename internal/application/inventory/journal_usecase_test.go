package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/almacen-api/internal/application/dto"
	"github.com/jcastro/almacen-api/internal/application/inventory"
	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemStore struct {
	items map[int64]*entity.Item
}

func newFakeItemStore(items ...*entity.Item) *fakeItemStore {
	s := &fakeItemStore{items: map[int64]*entity.Item{}}
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
	return s
}

func (s *fakeItemStore) Create(item *entity.Item) error { panic("no usado") }

func (s *fakeItemStore) GetByID(id int64) (*entity.Item, error) {
	it, ok := s.items[id]
	if !ok || it.Deleted {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (s *fakeItemStore) GetForUpdate(id int64) (*entity.Item, error) { return s.GetByID(id) }

func (s *fakeItemStore) CodeExists(string) (bool, error) { return false, nil }

func (s *fakeItemStore) Update(item *entity.Item) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeItemStore) AdjustStock(id int64, delta int) (*entity.Item, error) {
	it, ok := s.items[id]
	if !ok || it.Deleted {
		return nil, domain.ErrNotFound
	}
	it.Stock += delta
	cp := *it
	return &cp, nil
}

func (s *fakeItemStore) SetDeleted(id int64) error { return nil }

func (s *fakeItemStore) List(repository.ItemFilter) ([]*entity.Item, int, error) {
	return nil, 0, nil
}

func (s *fakeItemStore) ListActive() ([]*entity.Item, error) { return nil, nil }

type fakeMovementStore struct {
	movs   map[entity.MovementKind]map[int64]*entity.Movement
	nextID int64
	items  *fakeItemStore

	summarizeCalls int
}

func newFakeMovementStore(items *fakeItemStore) *fakeMovementStore {
	return &fakeMovementStore{
		movs: map[entity.MovementKind]map[int64]*entity.Movement{
			entity.KindInbound:  {},
			entity.KindOutbound: {},
		},
		items: items,
	}
}

func (s *fakeMovementStore) Create(kind entity.MovementKind, m *entity.Movement) error {
	s.nextID++
	m.ID = s.nextID
	cp := *m
	s.movs[kind][m.ID] = &cp
	return nil
}

func (s *fakeMovementStore) GetByID(kind entity.MovementKind, id int64) (*entity.Movement, error) {
	m, ok := s.movs[kind][id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMovementStore) GetWithItem(kind entity.MovementKind, id int64) (*entity.MovementWithItem, error) {
	m, ok := s.movs[kind][id]
	if !ok {
		return nil, nil
	}
	it, ok := s.items.items[m.ItemID]
	if !ok || it.Deleted {
		return nil, nil
	}
	return &entity.MovementWithItem{
		Movement: *m,
		ItemCode: it.Code, ItemName: it.Name, ItemUnit: it.Unit,
		ItemMaxThreshold: it.MaxThreshold,
	}, nil
}

func (s *fakeMovementStore) Update(kind entity.MovementKind, m *entity.Movement) error {
	if _, ok := s.movs[kind][m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	s.movs[kind][m.ID] = &cp
	return nil
}

func (s *fakeMovementStore) Delete(kind entity.MovementKind, id int64) error {
	if _, ok := s.movs[kind][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.movs[kind], id)
	return nil
}

func (s *fakeMovementStore) List(kind entity.MovementKind, f repository.MovementFilter) ([]*entity.MovementWithItem, int, error) {
	var out []*entity.MovementWithItem
	for id := range s.movs[kind] {
		row, _ := s.GetWithItem(kind, id)
		if row == nil {
			continue
		}
		if !f.From.IsZero() && row.OccurredAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !row.OccurredAt.Before(f.To) {
			continue
		}
		out = append(out, row)
	}
	return out, len(out), nil
}

func (s *fakeMovementStore) ListWindow(kind entity.MovementKind, from, to time.Time) ([]*entity.MovementWithItem, error) {
	out, _, err := s.List(kind, repository.MovementFilter{From: from, To: to})
	return out, err
}

func (s *fakeMovementStore) Summarize(kind entity.MovementKind, from, to time.Time) (int, int, error) {
	s.summarizeCalls++
	rows, _ := s.ListWindow(kind, from, to)
	total := 0
	for _, r := range rows {
		total += r.Quantity
	}
	return len(rows), total, nil
}

func (s *fakeMovementStore) TopItems(kind entity.MovementKind, from, to time.Time, limit int) ([]*entity.ItemTotal, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directo sobre los fakes, sin transacción.
type fakeTxRunner struct {
	items *fakeItemStore
	movs  *fakeMovementStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	return fn(r.items, r.movs)
}

func newJournal(items ...*entity.Item) (*inventory.JournalUseCase, *fakeItemStore, *fakeMovementStore) {
	itemStore := newFakeItemStore(items...)
	movStore := newFakeMovementStore(itemStore)
	uc := inventory.NewJournalUseCase(&fakeTxRunner{items: itemStore, movs: movStore}, itemStore, movStore)
	return uc, itemStore, movStore
}

func testItem(id int64, stock int) *entity.Item {
	return &entity.Item{
		ID: id, Code: "TOR1234", Name: "Tornillos", Unit: "Caja",
		Stock: stock, MinThreshold: 10, MaxThreshold: 100,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PostInbound / PostOutbound
// ──────────────────────────────────────────────────────────────────────────────

func TestPostInbound_SumaStock(t *testing.T) {
	uc, items, movs := newJournal(testItem(1, 50))

	out, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 30})
	require.NoError(t, err)

	assert.Equal(t, 30, out.Quantity)
	require.NotNil(t, out.Item)
	assert.Equal(t, "TOR1234", out.Item.Code)
	assert.Equal(t, 80, items.items[1].Stock, "la entrada debe sumar al stock")
	assert.Len(t, movs.movs[entity.KindInbound], 1)
}

func TestPostOutbound_RestaStock(t *testing.T) {
	uc, items, movs := newJournal(testItem(1, 50))

	out, err := uc.PostOutbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 20})
	require.NoError(t, err)

	assert.Equal(t, 20, out.Quantity)
	assert.Equal(t, 30, items.items[1].Stock, "la salida debe restar del stock")
	assert.Len(t, movs.movs[entity.KindOutbound], 1)
}

func TestPostOutbound_StockInsuficiente_NoCambiaNada(t *testing.T) {
	uc, items, movs := newJournal(testItem(1, 5))

	_, err := uc.PostOutbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 20})

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 5, insErr.Available, "el error debe llevar el stock disponible")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, items.items[1].Stock, "el stock no debe tocarse")
	assert.Empty(t, movs.movs[entity.KindOutbound], "no debe quedar fila de salida")
}

func TestPostOutbound_StockExacto_DejaEnCero(t *testing.T) {
	uc, items, _ := newJournal(testItem(1, 20))

	_, err := uc.PostOutbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 20})
	require.NoError(t, err, "una salida por el stock exacto es válida")
	assert.Equal(t, 0, items.items[1].Stock)
}

func TestPost_ItemInexistente_NotFound(t *testing.T) {
	uc, _, _ := newJournal()

	_, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 99, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.PostOutbound(context.Background(), dto.PostMovementRequest{ItemID: 99, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_CantidadInvalida_Rechazada(t *testing.T) {
	uc, _, movs := newJournal(testItem(1, 50))

	_, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.PostOutbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, movs.movs[entity.KindInbound])
	assert.Empty(t, movs.movs[entity.KindOutbound])
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateInbound / DeleteInbound
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateInbound_AplicaDelta(t *testing.T) {
	uc, items, _ := newJournal(testItem(1, 50))
	posted, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 60, items.items[1].Stock)

	qty := 4
	out, err := uc.UpdateInbound(context.Background(), posted.ID, dto.UpdateInboundRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Quantity)
	assert.Equal(t, 54, items.items[1].Stock,
		"bajar la cantidad de 10 a 4 debe restar 6 al stock")
}

func TestUpdateInbound_DeltaDejaStockNegativo_Rechazado(t *testing.T) {
	uc, items, _ := newJournal(testItem(1, 0))
	posted, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 10})
	require.NoError(t, err)

	// El stock quedó en 10 y luego salió todo por otra vía.
	items.items[1].Stock = 3

	qty := 2
	_, err = uc.UpdateInbound(context.Background(), posted.ID, dto.UpdateInboundRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un delta que deja el stock negativo debe rechazarse")
	assert.Equal(t, 3, items.items[1].Stock)
}

func TestDeleteInbound_RevierteElStock(t *testing.T) {
	uc, items, movs := newJournal(testItem(1, 50))
	posted, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 60, items.items[1].Stock)

	require.NoError(t, uc.DeleteInbound(context.Background(), posted.ID))

	assert.Equal(t, 50, items.items[1].Stock, "borrar la entrada revierte su efecto")
	assert.Empty(t, movs.movs[entity.KindInbound])
}

func TestDeleteInbound_ReversionDejaNegativo_Rechazada(t *testing.T) {
	uc, items, movs := newJournal(testItem(1, 0))
	posted, err := uc.PostInbound(context.Background(), dto.PostMovementRequest{ItemID: 1, Quantity: 10})
	require.NoError(t, err)

	items.items[1].Stock = 4

	err = uc.DeleteInbound(context.Background(), posted.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, movs.movs[entity.KindInbound], 1, "la entrada debe seguir existiendo")
	assert.Equal(t, 4, items.items[1].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestList_MesSinAnio_Rechazado(t *testing.T) {
	uc, _, _ := newJournal()

	_, err := uc.List(entity.KindInbound, dto.ListMovementsRequest{Month: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el filtro por mes sin año debe rechazarse")
}

func TestSummary_PeriodoInvalido_NoTocaElStorage(t *testing.T) {
	uc, _, movs := newJournal()

	_, err := uc.Summary(entity.KindInbound, 13, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, movs.summarizeCalls, "la validación va antes que el storage")

	_, err = uc.Summary(entity.KindInbound, 0, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, movs.summarizeCalls)
}

func TestSummary_AgregaMovimientosDelPeriodo(t *testing.T) {
	uc, _, _ := newJournal(testItem(1, 100))

	at := func(day int) *time.Time {
		ts := time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
		return &ts
	}
	for _, q := range []int{5, 7} {
		_, err := uc.PostOutbound(context.Background(), dto.PostMovementRequest{
			ItemID: 1, Quantity: q, OccurredAt: at(q),
		})
		require.NoError(t, err)
	}
	// Fuera del período
	other := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.PostOutbound(context.Background(), dto.PostMovementRequest{
		ItemID: 1, Quantity: 9, OccurredAt: &other,
	})
	require.NoError(t, err)

	out, err := uc.Summary(entity.KindOutbound, 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, "03/2024", out.Period)
	assert.Equal(t, 2, out.Count, "el movimiento de abril no debe contar")
	assert.Equal(t, 12, out.TotalQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventanas de período
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthWindow_CruceDeDiciembre(t *testing.T) {
	from, to := inventory.MonthWindow(12, 2024)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to,
		"diciembre debe cerrar en el 1 de enero del año siguiente")
}

func TestYearWindow(t *testing.T) {
	from, to := inventory.YearWindow(2024)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
