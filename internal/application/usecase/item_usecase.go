package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/jcastro/almacen-api/internal/application/dto"
	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/itemcode"
	"github.com/jcastro/almacen-api/internal/domain/repository"
	"github.com/jcastro/almacen-api/internal/domain/stock"
	"github.com/jcastro/almacen-api/pkg/logger"
)

// Valores por defecto de un item nuevo.
const (
	defaultUnit         = "Unit"
	defaultMaxThreshold = 9999
)

// InboundPoster registra la entrada automática del alta de un item.
// Lo implementa inventory.JournalUseCase.
type InboundPoster interface {
	PostInbound(ctx context.Context, in dto.PostMovementRequest) (*dto.MovementResponse, error)
}

// ItemUseCase casos de uso del registro de items: alta con código generado,
// edición parcial, borrado lógico, listados y resumen por umbrales.
type ItemUseCase struct {
	repo    repository.ItemRepository
	inbound InboundPoster
	log     *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, inbound InboundPoster, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{repo: repo, inbound: inbound, log: log}
}

// Create da de alta un item. Genera un código único (sondeo de colisiones con
// reintentos acotados), fija stock = initial_stock y, si initial_inbound > 0,
// registra además una entrada automática fechada "ahora" que se suma encima.
//
// Si la entrada automática falla, el alta del item igual se considera exitosa
// y el fallo solo se registra en el log: la capa de UI depende de que el item
// siempre se pueda crear. Ninguna otra operación tolera éxito parcial.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, domain.NewValidation("datos de item inválidos")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidation("el nombre es requerido")
	}

	unit := in.Unit
	if unit == "" {
		unit = defaultUnit
	}
	min := 0
	if in.MinThreshold != nil {
		min = *in.MinThreshold
	}
	max := defaultMaxThreshold
	if in.MaxThreshold != nil {
		max = *in.MaxThreshold
	}
	if min >= max {
		return nil, domain.NewValidation("el umbral mínimo (%d) debe ser menor que el máximo (%d)", min, max)
	}

	code, err := uc.uniqueCode(name)
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		Code:         code,
		Name:         name,
		Unit:         unit,
		Stock:        in.InitialStock,
		MinThreshold: min,
		MaxThreshold: max,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}

	resp := &dto.CreateItemResponse{Item: *toItemResponse(item)}

	if in.InitialInbound > 0 {
		mov, err := uc.inbound.PostInbound(ctx, dto.PostMovementRequest{
			ItemID:   item.ID,
			Quantity: in.InitialInbound,
		})
		if err != nil {
			// Único éxito parcial tolerado: el item queda creado sin su entrada.
			uc.log.Warn().Err(err).
				Int64("item_id", item.ID).
				Int("initial_inbound", in.InitialInbound).
				Msg("falló la entrada automática del alta; el item se mantiene")
		} else {
			resp.Inbound = mov
			if refreshed, err := uc.repo.GetByID(item.ID); err == nil && refreshed != nil {
				resp.Item = *toItemResponse(refreshed)
			}
		}
	}
	return resp, nil
}

// uniqueCode genera un código y sondea colisiones contra toda la población de
// items (borrados incluidos), regenerando con contador incremental. El sondeo
// está acotado para no reproducir el bucle sin tope del diseño original.
func (uc *ItemUseCase) uniqueCode(name string) (string, error) {
	code := itemcode.Generate(name)
	for attempt := 1; ; attempt++ {
		exists, err := uc.repo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		if attempt >= itemcode.MaxAttempts {
			return "", domain.ErrCodeGeneration
		}
		code = itemcode.WithCounter(name, attempt)
	}
}

// GetByID obtiene un item no borrado.
func (uc *ItemUseCase) GetByID(id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List pagina items no borrados, con búsqueda por nombre o código.
func (uc *ItemUseCase) List(page dto.PageRequest, search string) (*dto.ItemListResponse, error) {
	return uc.list(page, search, false)
}

// ListDeleted espejo de List sobre los items borrados lógicamente.
func (uc *ItemUseCase) ListDeleted(page dto.PageRequest, search string) (*dto.ItemListResponse, error) {
	return uc.list(page, search, true)
}

func (uc *ItemUseCase) list(page dto.PageRequest, search string, deleted bool) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.repo.List(repository.ItemFilter{
		Search:  search,
		Deleted: deleted,
		Limit:   page.Limit,
		Offset:  page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: out, Page: dto.NewPageResponse(total, page)}, nil
}

// Update edita parcialmente un item: solo los campos presentes cambian.
// Los umbrales se revalidan con los valores efectivos resultantes, no solo
// con los enviados. La edición directa de stock exige un valor >= 0 y no
// genera movimiento (ajuste administrativo).
func (uc *ItemUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, domain.NewValidation("datos de item inválidos")
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	min := item.MinThreshold
	if in.MinThreshold != nil {
		min = *in.MinThreshold
	}
	max := item.MaxThreshold
	if in.MaxThreshold != nil {
		max = *in.MaxThreshold
	}
	if min >= max {
		return nil, domain.NewValidation("el umbral mínimo (%d) debe ser menor que el máximo (%d)", min, max)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidation("el nombre no puede quedar vacío")
		}
		item.Name = name
	}
	if in.Unit != nil && *in.Unit != "" {
		item.Unit = *in.Unit
	}
	item.MinThreshold = min
	item.MaxThreshold = max
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.NewValidation("el stock debe ser un número no negativo")
		}
		item.Stock = *in.Stock
	}

	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// UpdateStock edición directa de stock (uso administrativo).
func (uc *ItemUseCase) UpdateStock(id int64, in dto.UpdateStockRequest) (*dto.ItemResponse, error) {
	if in.Stock == nil || *in.Stock < 0 {
		return nil, domain.NewValidation("el stock debe ser un número no negativo")
	}
	return uc.Update(id, dto.UpdateItemRequest{Stock: in.Stock})
}

// SoftDelete marca el borrado lógico sin importar el historial de movimientos.
// El item nunca se destruye físicamente y sigue consultable en ListDeleted.
func (uc *ItemUseCase) SoftDelete(id int64) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetDeleted(id)
}

// ListLowStock items con stock bajo el mínimo o en cero, ordenados por stock
// ascendente y desempatados por nombre.
func (uc *ItemUseCase) ListLowStock() ([]dto.ItemResponse, error) {
	return uc.listByStatus(stock.IsLowOrEmpty, func(a, b *entity.Item) bool {
		if a.Stock != b.Stock {
			return a.Stock < b.Stock
		}
		return a.Name < b.Name
	})
}

// ListOverStock items con stock sobre el máximo, ordenados por stock
// descendente y desempatados por nombre.
func (uc *ItemUseCase) ListOverStock() ([]dto.ItemResponse, error) {
	return uc.listByStatus(
		func(s stock.Status) bool { return s == stock.StatusHigh },
		func(a, b *entity.Item) bool {
			if a.Stock != b.Stock {
				return a.Stock > b.Stock
			}
			return a.Name < b.Name
		})
}

// listByStatus recorre todos los items no borrados clasificando cada uno en
// memoria, para que la semántica de comparación sea siempre la del
// clasificador y no la de la capa de consultas.
func (uc *ItemUseCase) listByStatus(keep func(stock.Status) bool, less func(a, b *entity.Item) bool) ([]dto.ItemResponse, error) {
	items, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	var matched []*entity.Item
	for _, it := range items {
		if keep(stock.Classify(it.Stock, it.MinThreshold, it.MaxThreshold)) {
			matched = append(matched, it)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	out := make([]dto.ItemResponse, 0, len(matched))
	for _, it := range matched {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// Summary resumen del inventario sobre items no borrados, clasificando cada
// item en memoria. Expone a la vez el conteo agrupado LOW+EMPTY y el conteo
// de EMPTY separado.
func (uc *ItemUseCase) Summary() (*dto.ItemsSummaryResponse, error) {
	items, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemsSummaryResponse{TotalItems: len(items)}
	for _, it := range items {
		resp.TotalStock += it.Stock
		switch s := stock.Classify(it.Stock, it.MinThreshold, it.MaxThreshold); {
		case s == stock.StatusEmpty:
			resp.EmptyItems++
			resp.LowOrEmptyItems++
		case s == stock.StatusLow:
			resp.LowOrEmptyItems++
		case s == stock.StatusHigh:
			resp.OverStockItems++
		}
	}
	return resp, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           it.ID,
		Code:         it.Code,
		Name:         it.Name,
		Unit:         it.Unit,
		Stock:        it.Stock,
		MinThreshold: it.MinThreshold,
		MaxThreshold: it.MaxThreshold,
		Status:       string(stock.Classify(it.Stock, it.MinThreshold, it.MaxThreshold)),
	}
}
