package report

import "context"

// KV par etiqueta/valor para bloques de resumen y pies de tabla.
type KV struct {
	Label string
	Value string
}

// Section una sección del reporte: o un bloque de resumen (Summary) o una
// tabla (Headers + Rows) con totales al pie (Footer). Las celdas llegan ya
// formateadas como strings: el renderizador no hace ningún cálculo de negocio,
// solo layout y paginación.
type Section struct {
	Title   string
	Summary []KV
	Headers []string
	Widths  []int // anchos de columna en la grilla de 12; deben sumar 12
	Rows    [][]string
	Footer  []KV
}

// Document el reporte completo listo para renderizar.
type Document struct {
	Title    string
	Period   string
	Sections []Section
}

// PDFGenerator puerto del renderizador de documentos (Maroto en infraestructura).
type PDFGenerator interface {
	Generate(ctx context.Context, doc *Document) ([]byte, error)
}
