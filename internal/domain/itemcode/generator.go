// Package itemcode deriva códigos cortos de item a partir del nombre.
//
// Algoritmo: se normaliza el nombre (mayúsculas, sin diacríticos, solo
// letras/dígitos/espacios), se toman los primeros 3 caracteres de cada
// palabra (o la palabra completa si es más corta) y se concatenan; al final
// se agregan los últimos 4 dígitos del reloj en milisegundos como sufijo de
// unicidad. "Laptop Asus ROG" -> "LAPASUROG" + 4 dígitos.
package itemcode

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxAttempts tope de reintentos al sondear colisiones de código.
// El algoritmo original no tenía tope, lo que es un livelock latente
// bajo inserciones concurrentes patológicas.
const MaxAttempts = 1000

// stripMarks elimina diacríticos: descompone (NFD), quita las marcas
// combinantes y recompone (NFC). "Café" -> "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate deriva un código a partir del nombre usando el reloj actual.
func Generate(name string) string {
	return Prefix(name) + suffix(time.Now())
}

// Prefix devuelve la parte determinista del código: 3 primeros caracteres de
// cada palabra del nombre normalizado, concatenados.
func Prefix(name string) string {
	normalized, _, err := transform.String(stripMarks, name)
	if err != nil {
		normalized = name
	}
	upper := strings.ToUpper(normalized)

	var clean strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			clean.WriteRune(r)
		}
	}

	var code strings.Builder
	for _, word := range strings.Fields(clean.String()) {
		if len(word) >= 3 {
			code.WriteString(word[:3])
		} else {
			code.WriteString(word)
		}
	}
	return code.String()
}

// suffix devuelve los últimos 4 dígitos del instante en milisegundos Unix.
func suffix(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) <= 4 {
		return ms
	}
	return ms[len(ms)-4:]
}

// WithCounter agrega un sufijo numérico incremental para resolver colisiones:
// el código se regenera completo (sufijo de reloj fresco) y se le añade el
// contador. Counter <= 0 equivale a Generate.
func WithCounter(name string, counter int) string {
	if counter <= 0 {
		return Generate(name)
	}
	return Generate(name) + strconv.Itoa(counter)
}
