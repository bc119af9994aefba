package repository

import "github.com/jcastro/almacen-api/internal/domain/entity"

// ItemFilter filtro tipado para listados de items, interpretado por el
// repositorio (nunca un predicado libre).
type ItemFilter struct {
	Search  string // substring case-insensitive sobre name o code
	Deleted bool   // true lista solo los borrados lógicamente
	Limit   int
	Offset  int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los métodos de lectura normales excluyen items borrados; el filtro permite
// el listado dedicado de borrados.
type ItemRepository interface {
	// Create persiste un item nuevo y asigna su ID. Devuelve domain.ErrDuplicate
	// si el código ya existe (constraint único global, incluye borrados).
	Create(item *entity.Item) error
	// GetByID obtiene un item no borrado. nil si no existe o está borrado.
	GetByID(id int64) (*entity.Item, error)
	// GetForUpdate obtiene un item no borrado bloqueando la fila (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción.
	GetForUpdate(id int64) (*entity.Item, error)
	// CodeExists indica si un código ya está tomado, incluyendo items borrados.
	CodeExists(code string) (bool, error)
	// Update persiste los atributos editables (name, unit, umbrales, stock).
	Update(item *entity.Item) error
	// AdjustStock aplica un delta atómico: stock = stock + delta. Devuelve el
	// item resultante. El caller garantiza que el resultado no es negativo.
	AdjustStock(id int64, delta int) (*entity.Item, error)
	// SetDeleted marca el borrado lógico.
	SetDeleted(id int64) error
	// List pagina items según el filtro, ordenados por nombre ascendente.
	// Devuelve también el total sin paginar.
	List(f ItemFilter) ([]*entity.Item, int, error)
	// ListActive devuelve todos los items no borrados ordenados por nombre,
	// para clasificación uniforme en memoria (resumen y reportes).
	ListActive() ([]*entity.Item, error)
}
