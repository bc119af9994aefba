package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCodeGeneration    = errors.New("no se pudo generar un código único")
)

// ValidationError describe por qué una entrada fue rechazada.
// Unwrap devuelve ErrInvalidInput para que errors.Is siga funcionando.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "entrada inválida: " + e.Reason }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidation construye un ValidationError con la razón dada.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientStockError indica que una salida excede el stock disponible.
// Available viaja hasta el caller para mostrarse al usuario.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
