package dto

import "time"

// PostMovementRequest registro de una entrada o salida.
// OccurredAt omitido significa "ahora".
type PostMovementRequest struct {
	ItemID     int64      `json:"item_id" validate:"required"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// UpdateInboundRequest edición parcial de una entrada. Cambiar la cantidad
// recalcula el stock del item por el delta.
type UpdateInboundRequest struct {
	Quantity   *int       `json:"quantity" validate:"omitempty,gt=0"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// ListMovementsRequest filtros de listado: búsqueda por item y ventana
// mensual (month+year) o anual (solo year).
type ListMovementsRequest struct {
	PageRequest
	Search string `query:"search"`
	Month  int    `query:"month" validate:"omitempty,min=1,max=12"`
	Year   int    `query:"year" validate:"omitempty,min=1900,max=2100"`
}

// MovementItemResponse campos desnormalizados del item dueño.
type MovementItemResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	MaxThreshold int    `json:"max_threshold"`
}

// MovementResponse representación de un movimiento.
type MovementResponse struct {
	ID         int64                 `json:"id"`
	ItemID     int64                 `json:"item_id"`
	Quantity   int                   `json:"quantity"`
	OccurredAt time.Time             `json:"occurred_at"`
	Item       *MovementItemResponse `json:"item,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"pagination"`
}

// TopItemResponse entrada del ranking de un resumen mensual.
type TopItemResponse struct {
	ItemID        int64  `json:"item_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	TotalQuantity int    `json:"total_quantity"`
}

// MovementSummaryResponse resumen mensual de un tipo de movimiento.
type MovementSummaryResponse struct {
	Period        string            `json:"period"` // MM/YYYY
	Count         int               `json:"count"`
	TotalQuantity int               `json:"total_quantity"`
	TopItems      []TopItemResponse `json:"top_items"`
}
