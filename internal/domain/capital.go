package domain

import "fmt"

// CapitalStructure agrupa las cifras de estructura de capital de una empresa.
// Todas en unidades monetarias salvo RiskFreeRate, Beta y MarketReturn (ratios).
type CapitalStructure struct {
	MarketCap        float64
	ShortTermDebt    float64
	LongTermDebt     float64
	InterestExpense  float64
	RiskFreeRate     float64
	Beta             float64
	MarketReturn     float64
	IncomeTaxExpense float64
	PreTaxIncome     float64
}

// CostComponents son las métricas derivadas que consume DiscountRate.
type CostComponents struct {
	TotalDebt    float64
	CostOfEquity float64
	CostOfDebt   float64 // antes de impuestos
	TaxRate      float64
}

// TotalDebt suma la deuda de corto y largo plazo.
func TotalDebt(shortTerm, longTerm float64) float64 {
	return shortTerm + longTerm
}

// CostOfEquity aplica CAPM.
//
// Fórmula: Ke = Rf + β × (Rm - Rf)
func CostOfEquity(riskFreeRate, beta, marketReturn float64) float64 {
	return riskFreeRate + beta*(marketReturn-riskFreeRate)
}

// CostOfDebt devuelve el coste de la deuda antes de impuestos: interestExpense / totalDebt.
// Falla con ErrDivisionByZero si la empresa no tiene deuda.
func CostOfDebt(interestExpense, totalDebt float64) (float64, error) {
	if totalDebt == 0 {
		return 0, fmt.Errorf("domain.CostOfDebt: total debt is zero: %w", ErrDivisionByZero)
	}
	return interestExpense / totalDebt, nil
}

// TaxRate devuelve la tasa impositiva efectiva: incomeTaxExpense / preTaxIncome.
func TaxRate(incomeTaxExpense, preTaxIncome float64) (float64, error) {
	if preTaxIncome == 0 {
		return 0, fmt.Errorf("domain.TaxRate: pre-tax income is zero: %w", ErrDivisionByZero)
	}
	return incomeTaxExpense / preTaxIncome, nil
}

// YearlyFCF calcula el free cash flow de un ejercicio: operating cash flow - capex.
// El capex se pasa como magnitud positiva.
func YearlyFCF(operatingCashFlow, capitalExpenditure float64) float64 {
	return operatingCashFlow - capitalExpenditure
}

// NetDebt devuelve la deuda neta (deuda total - caja). Puede ser negativa si
// la empresa tiene más caja que deuda.
func NetDebt(totalDebt, cash float64) float64 {
	return totalDebt - cash
}

// CostComponentsFrom calcula las cuatro métricas en orden. Devuelve el primer error.
func CostComponentsFrom(cs CapitalStructure) (CostComponents, error) {
	debt := TotalDebt(cs.ShortTermDebt, cs.LongTermDebt)
	ke := CostOfEquity(cs.RiskFreeRate, cs.Beta, cs.MarketReturn)

	kd, err := CostOfDebt(cs.InterestExpense, debt)
	if err != nil {
		return CostComponents{}, err
	}
	tax, err := TaxRate(cs.IncomeTaxExpense, cs.PreTaxIncome)
	if err != nil {
		return CostComponents{}, err
	}

	return CostComponents{
		TotalDebt:    debt,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		TaxRate:      tax,
	}, nil
}
