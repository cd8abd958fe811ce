package domain

import "errors"

// Taxonomía de errores del pipeline de valoración. Todas las fórmulas envuelven
// uno de estos sentinels con %w, así que el caller los detecta con errors.Is.
var (
	// ErrInvalidInput indica una entrada estructuralmente inválida (serie demasiado corta,
	// proyección vacía, WACC por debajo del crecimiento a perpetuidad).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomain indica un resultado no real: base no positiva a un exponente
	// fraccionario, tasa de descuento <= -1, o un valor no finito.
	ErrDomain = errors.New("domain error")

	// ErrDivisionByZero indica un denominador degenerado.
	ErrDivisionByZero = errors.New("division by zero")
)
