package valuation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/google/uuid"
)

// Config controla las decisiones del servicio que no vienen en los inputs de cada empresa.
type Config struct {
	// DefaultTerminalGrowth se usa cuando la empresa no fija g ni trae datos de reinversión.
	DefaultTerminalGrowth float64
	// IndustryGrowth es el crecimiento de sector por defecto para BlendGrowthRate.
	IndustryGrowth float64
	// Workers para RunBatch. <= 0 usa runtime.NumCPU() × 2.
	Workers int
}

// DefaultConfig devuelve una configuración conservadora.
func DefaultConfig() Config {
	return Config{
		DefaultTerminalGrowth: 0.025,
		IndustryGrowth:        0.05,
	}
}

// Service ejecuta el pipeline DCF completo sobre una empresa.
// No guarda estado entre llamadas; es seguro usarlo desde varias goroutines.
type Service struct {
	cfg Config
	now func() time.Time
}

// New crea un Service con la configuración dada.
func New(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Run valora una empresa en el orden fijo del pipeline:
// costes → WACC → CAGR → proyección → g → valoración → valor por acción.
// Devuelve el primer error, envuelto con el ticker.
func (s *Service) Run(ctx context.Context, c domain.Company) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	runID := uuid.New().String()
	log := slog.With("run_id", runID, "ticker", c.Ticker)

	costs, err := domain.CostComponentsFrom(c.Capital)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}

	wacc, err := domain.DiscountRateFrom(c.Capital.MarketCap, costs)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}
	log.Debug("discount rate",
		"cost_of_equity", costs.CostOfEquity,
		"cost_of_debt", costs.CostOfDebt,
		"tax_rate", costs.TaxRate,
		"wacc", wacc,
	)

	cagr, err := domain.CAGR(c.FCF)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}

	projected, err := domain.EstimateFutureFCF(c.FCF, cagr)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}
	for i, v := range projected {
		if !isFinite(v) {
			return domain.Report{}, fmt.Errorf("valuation.Run %s: projected FCF year %d overflows: %w",
				c.Ticker, i+1, domain.ErrDomain)
		}
	}
	log.Debug("projection", "cagr", cagr, "projected", projected)

	growth, source, err := s.terminalGrowth(c, costs, cagr, wacc)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}

	netDebt := domain.NetDebt(costs.TotalDebt, c.Cash)
	v, err := domain.Value(projected, wacc, growth, netDebt)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}

	v.IntrinsicValuePerShare, err = domain.IntrinsicValuePerShare(v.EquityValue, c.SharesOutstanding)
	if err != nil {
		return domain.Report{}, fmt.Errorf("valuation.Run %s: %w", c.Ticker, err)
	}

	log.Debug("valuation complete",
		"growth", growth,
		"growth_source", source,
		"enterprise_value", v.EnterpriseValue,
		"equity_value", v.EquityValue,
		"per_share", v.IntrinsicValuePerShare,
	)

	return domain.Report{
		RunID:     runID,
		Ticker:    c.Ticker,
		ValuedAt:  s.now(),
		Costs:     costs,
		WACC:      wacc,
		NetDebt:   netDebt,
		CAGR:      cagr,
		Growth:    growth,
		Source:    source,
		Projected: projected,
		Valuation: v,
	}, nil
}

// terminalGrowth elige g: override del input > mezcla con reinversión > default de config.
func (s *Service) terminalGrowth(c domain.Company, costs domain.CostComponents, cagr, wacc float64) (float64, domain.GrowthSource, error) {
	if c.TerminalGrowth != nil {
		return *c.TerminalGrowth, domain.GrowthOverride, nil
	}
	if c.Reinvestment == nil {
		return s.cfg.DefaultTerminalGrowth, domain.GrowthDefault, nil
	}

	r := c.Reinvestment
	reinvestment, err := domain.ReinvestmentGrowth(r.EBIT, costs.TaxRate, r.InvestedCapital, r.Capex, r.ChangeInWorkingCapital)
	if err != nil {
		return 0, "", err
	}

	industry := c.IndustryGrowth
	if industry == 0 {
		industry = s.cfg.IndustryGrowth
	}

	g := domain.BlendGrowthRate(domain.GrowthInputs{
		CAGR:               cagr,
		HistoricalPeriods:  len(c.FCF),
		ReinvestmentGrowth: reinvestment,
		IndustryGrowth:     industry,
		Beta:               c.Capital.Beta,
		WACC:               wacc,
	})
	return g, domain.GrowthBlended, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
