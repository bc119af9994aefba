// Package stock clasifica el stock de un item contra sus umbrales configurados.
package stock

// Status estado de stock derivado de los umbrales.
type Status string

const (
	StatusEmpty  Status = "EMPTY"  // stock == 0
	StatusLow    Status = "LOW"    // stock < mínimo
	StatusNormal Status = "NORMAL" // dentro de los umbrales
	StatusHigh   Status = "HIGH"   // stock > máximo
)

// Classify es una función pura y total: mapea (stock, min, max) a un Status.
// El orden de evaluación importa: stock cero siempre es EMPTY, aunque el
// mínimo configurado sea cero.
func Classify(stock, min, max int) Status {
	switch {
	case stock == 0:
		return StatusEmpty
	case stock < min:
		return StatusLow
	case stock > max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// IsLowOrEmpty agrupa EMPTY dentro del conteo de stock bajo, como lo espera
// el resumen de inventario. El conteo de EMPTY separado también se expone;
// ambas lecturas conviven a propósito.
func IsLowOrEmpty(s Status) bool {
	return s == StatusLow || s == StatusEmpty
}
