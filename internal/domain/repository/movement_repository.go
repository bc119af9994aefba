package repository

import (
	"time"

	"github.com/jcastro/almacen-api/internal/domain/entity"
)

// MovementFilter filtro tipado para listados de movimientos.
// From/To en cero significan ventana abierta por ese lado.
type MovementFilter struct {
	Search string // substring case-insensitive sobre name o code del item
	From   time.Time
	To     time.Time // exclusivo
	Limit  int
	Offset int
}

// MovementRepository define el puerto de persistencia para el diario de
// movimientos. Kind selecciona la tabla (entradas o salidas); los listados
// siempre se unen a items no borrados.
type MovementRepository interface {
	// Create persiste un movimiento nuevo y asigna su ID.
	Create(kind entity.MovementKind, m *entity.Movement) error
	// GetByID obtiene el movimiento crudo. nil si no existe.
	GetByID(kind entity.MovementKind, id int64) (*entity.Movement, error)
	// GetWithItem obtiene el movimiento con los campos del item dueño.
	// nil si no existe o si el item está borrado.
	GetWithItem(kind entity.MovementKind, id int64) (*entity.MovementWithItem, error)
	// Update persiste quantity y occurred_at.
	Update(kind entity.MovementKind, m *entity.Movement) error
	// Delete elimina la fila del movimiento.
	Delete(kind entity.MovementKind, id int64) error
	// List pagina movimientos con item desnormalizado, ordenados por
	// occurred_at descendente y desempatados por id descendente.
	// Devuelve también el total sin paginar.
	List(kind entity.MovementKind, f MovementFilter) ([]*entity.MovementWithItem, int, error)
	// ListWindow devuelve todos los movimientos de la ventana [from, to)
	// ordenados por occurred_at ascendente (para el reporte mensual).
	ListWindow(kind entity.MovementKind, from, to time.Time) ([]*entity.MovementWithItem, error)
	// Summarize cuenta movimientos y suma cantidades en la ventana [from, to).
	Summarize(kind entity.MovementKind, from, to time.Time) (count, totalQuantity int, err error)
	// TopItems ranking de items por cantidad acumulada en la ventana, descendente.
	TopItems(kind entity.MovementKind, from, to time.Time, limit int) ([]*entity.ItemTotal, error)
}
