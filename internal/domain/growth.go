package domain

import (
	"fmt"
	"math"
)

// CAGR calcula la tasa de crecimiento anual compuesta de una serie histórica de FCF.
// La serie va de más reciente a más antiguo: fcf[0] es el último ejercicio.
//
// Fórmula: CAGR = (latest / earliest)^(1/(n-1)) - 1
//
// Errores:
//   - ErrInvalidInput si hay menos de 2 puntos (n-1 = 0 en el exponente).
//   - ErrDomain si earliest <= 0, o si la potencia no es real
//     (ratio negativo con exponente fraccionario). Nunca devuelve NaN.
func CAGR(fcf []float64) (float64, error) {
	n := len(fcf)
	if n < 2 {
		return 0, fmt.Errorf("domain.CAGR: need at least 2 periods, got %d: %w", n, ErrInvalidInput)
	}

	latest := fcf[0]
	earliest := fcf[n-1]
	if earliest <= 0 {
		return 0, fmt.Errorf("domain.CAGR: earliest FCF %.2f is not positive: %w", earliest, ErrDomain)
	}

	cagr := math.Pow(latest/earliest, 1/float64(n-1)) - 1
	if !finite(cagr) {
		return 0, fmt.Errorf("domain.CAGR: (%.2f/%.2f)^(1/%d) is not real: %w", latest, earliest, n-1, ErrDomain)
	}
	return cagr, nil
}

// ReinvestmentGrowth estima el crecimiento fundamental como reinvestment rate × ROIC.
//
// Fórmula:
//
//	NOPAT             = EBIT × (1 - t)
//	reinvestmentRate  = (capex + ΔWC) / NOPAT
//	ROIC              = NOPAT / investedCapital
//	g                 = reinvestmentRate × ROIC
//
// capex y ΔWC se pasan como magnitudes invertidas (positivas = reinversión).
func ReinvestmentGrowth(ebit, taxRate, investedCapital, capex, changeInWorkingCapital float64) (float64, error) {
	nopat := ebit * (1 - taxRate)
	if nopat == 0 {
		return 0, fmt.Errorf("domain.ReinvestmentGrowth: NOPAT is zero: %w", ErrDivisionByZero)
	}
	if investedCapital == 0 {
		return 0, fmt.Errorf("domain.ReinvestmentGrowth: invested capital is zero: %w", ErrDivisionByZero)
	}
	reinvestmentRate := (capex + changeInWorkingCapital) / nopat
	roic := nopat / investedCapital
	return reinvestmentRate * roic, nil
}

// GrowthInputs reúne las señales que pondera BlendGrowthRate.
type GrowthInputs struct {
	CAGR               float64
	HistoricalPeriods  int // puntos de la serie FCF de la que sale CAGR
	ReinvestmentGrowth float64
	IndustryGrowth     float64
	Beta               float64
	WACC               float64
}

// Pesos y límites de BlendGrowthRate.
const (
	weightCAGR         = 0.4
	weightCAGRShort    = 0.2 // menos de 3 puntos históricos
	weightReinvestment = 0.3
	weightIndustry     = 0.3

	highBeta = 1.5
	lowBeta  = 0.8

	minGrowthFloor   = 0.01
	waccGrowthSpread = 0.01
)

// BlendGrowthRate elige la tasa de crecimiento a perpetuidad combinando el CAGR
// histórico, el crecimiento por reinversión y el crecimiento de la industria.
//
// Con beta alta pesa más la historia propia; con beta baja, la industria.
// El resultado se acota a [max(1%, 50% industria), min(WACC-1%, 120% industria)];
// si los límites se cruzan gana el superior, que mantiene g por debajo del WACC.
func BlendGrowthRate(in GrowthInputs) float64 {
	cagr := in.CAGR
	if in.HistoricalPeriods < 2 {
		cagr = in.IndustryGrowth * 0.8
	}

	wCAGR := weightCAGR
	if in.HistoricalPeriods < 3 {
		wCAGR = weightCAGRShort
	}
	wIndustry := weightIndustry

	switch {
	case in.Beta > highBeta:
		wIndustry *= 0.8
		wCAGR *= 1.2
	case in.Beta < lowBeta:
		wIndustry *= 1.2
		wCAGR *= 0.8
	}

	weighted := wCAGR*cagr + weightReinvestment*in.ReinvestmentGrowth + wIndustry*in.IndustryGrowth

	upper := math.Min(in.WACC-waccGrowthSpread, in.IndustryGrowth*1.2)
	lower := math.Max(minGrowthFloor, in.IndustryGrowth*0.5)
	return math.Min(math.Max(weighted, lower), upper)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
