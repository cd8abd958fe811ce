package domain

import "fmt"

// DiscountRate calcula el WACC (Weighted Average Cost of Capital).
//
// Fórmula:
//
//	V    = E + D
//	WACC = (E/V) × Ke + (D/V) × Kd × (1 - t)
//
// El resultado no se valida contra ningún rango: quien lo use para el terminal
// value debe comprobar que WACC > g (ver TerminalValue).
func DiscountRate(marketCap, totalDebt, costEquity, costDebt, taxRate float64) (float64, error) {
	v := marketCap + totalDebt
	if v == 0 {
		return 0, fmt.Errorf("domain.DiscountRate: market cap + total debt is zero: %w", ErrDivisionByZero)
	}
	return (marketCap/v)*costEquity + (totalDebt/v)*costDebt*(1-taxRate), nil
}

// DiscountRateFrom es DiscountRate a partir de la estructura de capital y sus costes ya derivados.
func DiscountRateFrom(marketCap float64, c CostComponents) (float64, error) {
	return DiscountRate(marketCap, c.TotalDebt, c.CostOfEquity, c.CostOfDebt, c.TaxRate)
}
