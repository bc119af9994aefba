package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jcastro/almacen-api/internal/application/dto"
	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
)

// wibOffset desplazamiento fijo UTC+7 para las salidas: el timestamp de una
// salida se registra en hora local del almacén para consistencia de display.
var wibOffset = time.FixedZone("WIB", 7*60*60)

// JournalUseCase registra movimientos del diario de forma transaccional:
// la fila del movimiento y el ajuste de stock del item van en la misma
// transacción, con bloqueo de fila (SELECT FOR UPDATE) e incremento atómico.
type JournalUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	now      func() time.Time
}

// NewJournalUseCase construye el caso de uso. itemRepo y movRepo se usan para
// lecturas fuera de transacción (listados, resúmenes).
func NewJournalUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *JournalUseCase {
	return &JournalUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		now:      time.Now,
	}
}

// PostInbound registra una entrada: crea la fila y suma quantity al stock
// del item, atómicamente. occurred_at por defecto es "ahora".
func (uc *JournalUseCase) PostInbound(ctx context.Context, in dto.PostMovementRequest) (*dto.MovementResponse, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	occurredAt := uc.now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	var resp *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		mov := &entity.Movement{ItemID: in.ItemID, Quantity: in.Quantity, OccurredAt: occurredAt}
		if err := movRepo.Create(entity.KindInbound, mov); err != nil {
			return err
		}
		updated, err := itemRepo.AdjustStock(in.ItemID, in.Quantity)
		if err != nil {
			return err
		}
		resp = toMovementResponse(mov, updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// PostOutbound registra una salida: exige stock disponible suficiente y
// resta quantity, atómicamente. Si el stock no alcanza devuelve
// InsufficientStockError con la cantidad disponible, sin tocar nada.
// occurred_at por defecto es "ahora" en hora fija UTC+7.
func (uc *JournalUseCase) PostOutbound(ctx context.Context, in dto.PostMovementRequest) (*dto.MovementResponse, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	occurredAt := uc.now().In(wibOffset)
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	var resp *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Stock < in.Quantity {
			return &domain.InsufficientStockError{Available: item.Stock}
		}
		mov := &entity.Movement{ItemID: in.ItemID, Quantity: in.Quantity, OccurredAt: occurredAt}
		if err := movRepo.Create(entity.KindOutbound, mov); err != nil {
			return err
		}
		updated, err := itemRepo.AdjustStock(in.ItemID, -in.Quantity)
		if err != nil {
			return err
		}
		resp = toMovementResponse(mov, updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateInbound edita una entrada existente. Si cambia la cantidad, aplica el
// delta (nueva - vieja) al stock del item y rechaza la edición si el
// resultado quedaría negativo.
func (uc *JournalUseCase) UpdateInbound(ctx context.Context, id int64, in dto.UpdateInboundRequest) (*dto.MovementResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.NewValidation("la cantidad debe ser mayor que 0")
	}

	var resp *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		mov, err := movRepo.GetByID(entity.KindInbound, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if in.Quantity != nil {
			delta := *in.Quantity - mov.Quantity
			if item.Stock+delta < 0 {
				return domain.NewValidation("el stock resultante quedaría negativo (disponible %d)", item.Stock)
			}
			if delta != 0 {
				if item, err = itemRepo.AdjustStock(mov.ItemID, delta); err != nil {
					return err
				}
			}
			mov.Quantity = *in.Quantity
		}
		if in.OccurredAt != nil {
			mov.OccurredAt = *in.OccurredAt
		}
		if err := movRepo.Update(entity.KindInbound, mov); err != nil {
			return err
		}
		resp = toMovementResponse(mov, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteInbound elimina una entrada revirtiendo su efecto: resta la cantidad
// del stock del item. Rechaza el borrado si el stock quedaría negativo.
func (uc *JournalUseCase) DeleteInbound(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		mov, err := movRepo.GetByID(entity.KindInbound, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Stock-mov.Quantity < 0 {
			return domain.NewValidation("no se puede revertir la entrada: el stock quedaría negativo (disponible %d)", item.Stock)
		}
		if _, err := itemRepo.AdjustStock(mov.ItemID, -mov.Quantity); err != nil {
			return err
		}
		return movRepo.Delete(entity.KindInbound, id)
	})
}

// GetByID obtiene un movimiento con su item. NotFound si no existe o si el
// item dueño está borrado.
func (uc *JournalUseCase) GetByID(kind entity.MovementKind, id int64) (*dto.MovementResponse, error) {
	row, err := uc.movRepo.GetWithItem(kind, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementWithItemResponse(row), nil
}

// List pagina movimientos filtrando por búsqueda y ventana mensual o anual.
// Solo se unen items no borrados.
func (uc *JournalUseCase) List(kind entity.MovementKind, in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	if err := dto.Validate(&in); err != nil {
		return nil, domain.NewValidation("filtros de listado inválidos")
	}
	if in.Month != 0 && in.Year == 0 {
		return nil, domain.NewValidation("el filtro por mes requiere también el año")
	}

	f := repository.MovementFilter{
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
	switch {
	case in.Month != 0:
		f.From, f.To = MonthWindow(in.Month, in.Year)
	case in.Year != 0:
		f.From, f.To = YearWindow(in.Year)
	}

	rows, total, err := uc.movRepo.List(kind, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toMovementWithItemResponse(r))
	}
	return &dto.MovementListResponse{
		Movements: out,
		Page:      dto.NewPageResponse(total, in.PageRequest),
	}, nil
}

// Summary resumen mensual: cantidad de movimientos, suma de cantidades y
// top 5 items por cantidad acumulada. Valida mes y año antes de tocar el
// almacenamiento.
func (uc *JournalUseCase) Summary(kind entity.MovementKind, month, year int) (*dto.MovementSummaryResponse, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	from, to := MonthWindow(month, year)

	count, total, err := uc.movRepo.Summarize(kind, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.movRepo.TopItems(kind, from, to, 5)
	if err != nil {
		return nil, err
	}

	topOut := make([]dto.TopItemResponse, 0, len(top))
	for _, t := range top {
		topOut = append(topOut, dto.TopItemResponse{
			ItemID:        t.ItemID,
			Code:          t.ItemCode,
			Name:          t.ItemName,
			Unit:          t.ItemUnit,
			TotalQuantity: t.TotalQuantity,
		})
	}
	return &dto.MovementSummaryResponse{
		Period:        fmt.Sprintf("%02d/%d", month, year),
		Count:         count,
		TotalQuantity: total,
		TopItems:      topOut,
	}, nil
}

// ValidatePeriod valida un período mensual: mes 1-12 y año plausible.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return domain.NewValidation("el mes debe ser un número entre 1 y 12")
	}
	if year < 1900 || year > 2100 {
		return domain.NewValidation("el año no es válido")
	}
	return nil
}

// MonthWindow devuelve la ventana [año-mes-01, mes-siguiente-01).
// time.AddDate maneja el cruce de diciembre a enero.
func MonthWindow(month, year int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// YearWindow devuelve la ventana [año-01-01, año-siguiente-01-01).
func YearWindow(year int) (from, to time.Time) {
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func validatePost(in dto.PostMovementRequest) error {
	if in.ItemID == 0 {
		return domain.NewValidation("item_id es requerido")
	}
	if in.Quantity <= 0 {
		return domain.NewValidation("la cantidad debe ser mayor que 0")
	}
	return nil
}

func toMovementResponse(m *entity.Movement, item *entity.Item) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:         m.ID,
		ItemID:     m.ItemID,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
	}
	if item != nil {
		resp.Item = &dto.MovementItemResponse{
			Code:         item.Code,
			Name:         item.Name,
			Unit:         item.Unit,
			MaxThreshold: item.MaxThreshold,
		}
	}
	return resp
}

func toMovementWithItemResponse(r *entity.MovementWithItem) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		Quantity:   r.Quantity,
		OccurredAt: r.OccurredAt,
		Item: &dto.MovementItemResponse{
			Code:         r.ItemCode,
			Name:         r.ItemName,
			Unit:         r.ItemUnit,
			MaxThreshold: r.ItemMaxThreshold,
		},
	}
}
