package domain

import "time"

// Company son las cifras ya obtenidas de una empresa, listas para valorar.
type Company struct {
	Ticker string
	Name   string

	// FCF histórico, el ejercicio más reciente primero.
	FCF []float64

	Capital           CapitalStructure
	Cash              float64
	SharesOutstanding float64
	Price             float64 // cotización actual, 0 = desconocida

	// TerminalGrowth fija g a mano. nil = estimarlo.
	TerminalGrowth *float64

	// IndustryGrowth es el crecimiento a largo plazo del sector. 0 = default de config.
	IndustryGrowth float64

	// Reinvestment es opcional; sin él no se puede mezclar crecimiento fundamental.
	Reinvestment *Reinvestment
}

// Reinvestment son las cifras para ReinvestmentGrowth.
type Reinvestment struct {
	EBIT                   float64
	InvestedCapital        float64
	Capex                  float64
	ChangeInWorkingCapital float64
}

// GrowthSource indica de dónde sale la tasa de crecimiento a perpetuidad.
type GrowthSource string

const (
	GrowthOverride GrowthSource = "override" // fijada en el input
	GrowthBlended  GrowthSource = "blended"  // BlendGrowthRate
	GrowthDefault  GrowthSource = "default"  // default de config
)

// Report es el resultado completo de una ejecución de valoración.
type Report struct {
	RunID     string
	Ticker    string
	ValuedAt  time.Time
	Costs     CostComponents
	WACC      float64
	NetDebt   float64
	CAGR      float64
	Growth    float64
	Source    GrowthSource
	Projected []float64
	Valuation Valuation
}

// Outcome empareja una empresa con su Report o con el error que cortó la ejecución.
type Outcome struct {
	Company Company
	Report  Report
	Err     error
}

// OK devuelve true si la valoración terminó sin error.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// UpsidePct devuelve el potencial del valor intrínseco frente a un precio de mercado, en %.
func (r Report) UpsidePct(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return (r.Valuation.IntrinsicValuePerShare/price - 1) * 100
}
