package domain

import "fmt"

// ProjectionYears es el horizonte fijo de proyección explícita. El terminal value
// se descuenta también a este número de periodos.
const ProjectionYears = 5

// EstimateFutureFCF proyecta ProjectionYears periodos de FCF a partir del ejercicio
// más reciente (fcf[0], el mismo "latest" que usa CAGR).
//
//	period[0] = fcf[0]
//	period[i] = period[i-1] × (1 + cagr)   para i = 1..5
//
// Devuelve period[1..5], el más cercano primero. No recorta overflows: con
// |cagr| grande el caller debe comprobar que los valores sean finitos.
func EstimateFutureFCF(fcf []float64, cagr float64) ([]float64, error) {
	if len(fcf) == 0 {
		return nil, fmt.Errorf("domain.EstimateFutureFCF: empty FCF series: %w", ErrInvalidInput)
	}
	if !finite(cagr) {
		return nil, fmt.Errorf("domain.EstimateFutureFCF: growth rate %v is not finite: %w", cagr, ErrDomain)
	}

	projected := make([]float64, 0, ProjectionYears)
	current := fcf[0]
	for i := 0; i < ProjectionYears; i++ {
		current *= 1 + cagr
		projected = append(projected, current)
	}
	return projected, nil
}
