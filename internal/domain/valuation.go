package domain

import (
	"fmt"
	"math"
)

// Valuation es el desglose de una valoración DCF, en el orden en que se calcula.
type Valuation struct {
	TerminalValue           float64 // valor a perpetuidad al final del horizonte
	DiscountedTerminalValue float64 // TerminalValue traído a hoy
	SumDiscountedFCF        float64 // Σ PV de los FCF proyectados
	EnterpriseValue         float64
	EquityValue             float64 // EnterpriseValue - deuda neta
	IntrinsicValuePerShare  float64 // se rellena con IntrinsicValuePerShare
}

// TerminalValue aplica el modelo de Gordon sobre el último FCF proyectado.
//
// Fórmula: TV = FCF_n × (1 + g) / (WACC - g)
//
// Falla con ErrDivisionByZero si WACC = g, y con ErrInvalidInput si WACC < g:
// la perpetuidad sólo converge cuando el descuento supera al crecimiento.
func TerminalValue(projected []float64, wacc, growth float64) (float64, error) {
	if len(projected) == 0 {
		return 0, fmt.Errorf("domain.TerminalValue: empty projection: %w", ErrInvalidInput)
	}
	spread := wacc - growth
	if spread == 0 {
		return 0, fmt.Errorf("domain.TerminalValue: WACC equals growth rate %.4f: %w", growth, ErrDivisionByZero)
	}
	if spread < 0 {
		return 0, fmt.Errorf("domain.TerminalValue: WACC %.4f below growth rate %.4f: %w", wacc, growth, ErrInvalidInput)
	}
	last := projected[len(projected)-1]
	return last * (1 + growth) / spread, nil
}

// PresentValue descuenta un flujo t periodos: cashflow / (1 + rate)^t.
// t = 0 devuelve el flujo sin descontar. Falla con ErrDomain si rate <= -1.
func PresentValue(cashflow, rate, t float64) (float64, error) {
	if rate <= -1 {
		return 0, fmt.Errorf("domain.PresentValue: rate %.4f <= -1: %w", rate, ErrDomain)
	}
	return cashflow / math.Pow(1+rate, t), nil
}

// Value calcula terminal value, enterprise value y equity value.
//
//	EV     = Σ PV(FCF_i, WACC, i) para i = 1..n  +  PV(TV, WACC, n)
//	Equity = EV - netDebt
//
// n es la longitud de la proyección (ProjectionYears si viene de EstimateFutureFCF).
// La deuda neta la aporta el caller; no se recalcula aquí.
func Value(projected []float64, wacc, growth, netDebt float64) (Valuation, error) {
	tv, err := TerminalValue(projected, wacc, growth)
	if err != nil {
		return Valuation{}, err
	}

	n := float64(len(projected))
	discountedTV, err := PresentValue(tv, wacc, n)
	if err != nil {
		return Valuation{}, err
	}

	var sumPV float64
	for i, fcf := range projected {
		pv, err := PresentValue(fcf, wacc, float64(i+1))
		if err != nil {
			return Valuation{}, err
		}
		sumPV += pv
	}

	ev := sumPV + discountedTV
	return Valuation{
		TerminalValue:           tv,
		DiscountedTerminalValue: discountedTV,
		SumDiscountedFCF:        sumPV,
		EnterpriseValue:         ev,
		EquityValue:             ev - netDebt,
	}, nil
}

// EquityValue devuelve sólo el equity value de Value.
func EquityValue(projected []float64, wacc, growth, netDebt float64) (float64, error) {
	v, err := Value(projected, wacc, growth, netDebt)
	if err != nil {
		return 0, err
	}
	return v.EquityValue, nil
}

// IntrinsicValuePerShare divide el equity value entre las acciones en circulación.
func IntrinsicValuePerShare(equityValue, sharesOutstanding float64) (float64, error) {
	if sharesOutstanding == 0 {
		return 0, fmt.Errorf("domain.IntrinsicValuePerShare: shares outstanding is zero: %w", ErrDivisionByZero)
	}
	return equityValue / sharesOutstanding, nil
}
