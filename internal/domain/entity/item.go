package entity

// Item representa un artículo del inventario.
// Stock es un conteo entero mantenido por el libro de movimientos: cada entrada o
// salida registrada lo ajusta en la misma transacción. Las ediciones directas de
// stock (ajuste administrativo) no generan movimiento.
// Code es único entre todos los items, incluidos los borrados, e inmutable.
type Item struct {
	ID           int64
	Code         string
	Name         string
	Unit         string // por defecto "Unit"
	Stock        int
	MinThreshold int // invariante: MinThreshold < MaxThreshold
	MaxThreshold int
	Deleted      bool // borrado lógico; el item nunca se destruye físicamente
}
