package entity

import "time"

// MovementKind distingue entradas y salidas. Estructuralmente son idénticas;
// se persisten en tablas separadas.
type MovementKind string

const (
	KindInbound  MovementKind = "inbound"
	KindOutbound MovementKind = "outbound"
)

// Movement es un registro inmutable del diario de movimientos: una cantidad
// positiva recibida (entrada) o emitida (salida) contra un Item.
// Solo las entradas admiten edición o borrado posterior, y siempre revirtiendo
// su efecto sobre el stock del item.
type Movement struct {
	ID         int64
	ItemID     int64
	Quantity   int // siempre > 0; el signo lo da el tipo de movimiento
	OccurredAt time.Time
}

// MovementWithItem es un movimiento junto con los campos desnormalizados del
// item dueño (solo items no borrados), para listados y reportes.
type MovementWithItem struct {
	Movement
	ItemCode         string
	ItemName         string
	ItemUnit         string
	ItemMaxThreshold int
}

// ItemTotal acumulado de cantidades por item dentro de una ventana de tiempo
// (ranking de un resumen mensual).
type ItemTotal struct {
	ItemID        int64
	ItemCode      string
	ItemName      string
	ItemUnit      string
	TotalQuantity int
}
