package dto

// CreateItemRequest alta de un item. InitialStock e InitialInbound son
// independientes: el primero fija el stock de partida, el segundo además
// registra una entrada automática que se suma encima.
type CreateItemRequest struct {
	Name           string `json:"name" validate:"required"`
	Unit           string `json:"unit"`
	MinThreshold   *int   `json:"min_threshold" validate:"omitempty,min=0"`
	MaxThreshold   *int   `json:"max_threshold" validate:"omitempty,min=0"`
	InitialStock   int    `json:"initial_stock" validate:"omitempty,min=0"`
	InitialInbound int    `json:"initial_inbound" validate:"omitempty,min=0"`
}

// UpdateItemRequest edición parcial: solo los campos presentes cambian.
// Stock acepta la edición directa administrativa (sin movimiento).
type UpdateItemRequest struct {
	Name         *string `json:"name"`
	Unit         *string `json:"unit"`
	MinThreshold *int    `json:"min_threshold" validate:"omitempty,min=0"`
	MaxThreshold *int    `json:"max_threshold" validate:"omitempty,min=0"`
	Stock        *int    `json:"stock"`
}

// UpdateStockRequest edición directa de stock (uso interno/administrativo).
type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// ItemResponse representación de un item hacia la capa de peticiones.
type ItemResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Stock        int    `json:"stock"`
	MinThreshold int    `json:"min_threshold"`
	MaxThreshold int    `json:"max_threshold"`
	Status       string `json:"status"`
}

// CreateItemResponse item creado más la entrada automática si se registró.
// Inbound es nil cuando no se pidió o cuando su registro falló (el alta del
// item se mantiene; es el único caso de éxito parcial tolerado).
type CreateItemResponse struct {
	Item    ItemResponse      `json:"item"`
	Inbound *MovementResponse `json:"inbound,omitempty"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"pagination"`
}

// ItemsSummaryResponse resumen del inventario sobre items no borrados.
// LowOrEmptyItems agrupa LOW y EMPTY; EmptyItems los reporta por separado.
// Ambos conteos se exponen a la vez para servir a ambos consumidores.
type ItemsSummaryResponse struct {
	TotalItems      int `json:"total_items"`
	TotalStock      int `json:"total_stock"`
	LowOrEmptyItems int `json:"low_or_empty_items"`
	OverStockItems  int `json:"over_stock_items"`
	EmptyItems      int `json:"empty_items"`
}
