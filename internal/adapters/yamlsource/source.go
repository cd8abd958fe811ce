package yamlsource

// source.go: lee las cifras de las empresas desde un archivo YAML.
//
// Formato:
//
//	defaults:
//	  risk_free_rate: 0.04
//	  market_return: 0.09
//	  industry_growth: 0.05
//	companies:
//	  - ticker: ACME
//	    fcf: [120, 100]          # más reciente primero
//	    market_cap: 1000
//	    ...
//
// Precedencia de supuestos de mercado: empresa > bloque defaults > Defaults del caller.

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/alejandrodnm/dcf/internal/domain"
	"gopkg.in/yaml.v3"
)

// Defaults son los supuestos de mercado que se aplican a las empresas que no los traen.
type Defaults struct {
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	MarketReturn   float64 `yaml:"market_return"`
	IndustryGrowth float64 `yaml:"industry_growth"`
}

type file struct {
	Defaults  *fileDefaults `yaml:"defaults"`
	Companies []company     `yaml:"companies"`
}

type fileDefaults struct {
	RiskFreeRate   *float64 `yaml:"risk_free_rate"`
	MarketReturn   *float64 `yaml:"market_return"`
	IndustryGrowth *float64 `yaml:"industry_growth"`
}

type company struct {
	Ticker string `yaml:"ticker"`
	Name   string `yaml:"name"`

	FCF       []float64  `yaml:"fcf"`
	CashFlows []cashFlow `yaml:"cash_flows"` // alternativa a fcf

	MarketCap        float64  `yaml:"market_cap"`
	ShortTermDebt    float64  `yaml:"short_term_debt"`
	LongTermDebt     float64  `yaml:"long_term_debt"`
	InterestExpense  float64  `yaml:"interest_expense"`
	RiskFreeRate     *float64 `yaml:"risk_free_rate"`
	Beta             float64  `yaml:"beta"`
	MarketReturn     *float64 `yaml:"market_return"`
	IncomeTaxExpense float64  `yaml:"income_tax_expense"`
	PreTaxIncome     float64  `yaml:"pre_tax_income"`

	Cash              float64 `yaml:"cash"`
	SharesOutstanding float64 `yaml:"shares_outstanding"`
	Price             float64 `yaml:"price"`

	TerminalGrowth *float64      `yaml:"terminal_growth"`
	IndustryGrowth *float64      `yaml:"industry_growth"`
	Reinvestment   *reinvestment `yaml:"reinvestment"`
}

type cashFlow struct {
	Operating float64 `yaml:"operating"`
	Capex     float64 `yaml:"capex"`
}

type reinvestment struct {
	EBIT                   float64 `yaml:"ebit"`
	InvestedCapital        float64 `yaml:"invested_capital"`
	Capex                  float64 `yaml:"capex"`
	ChangeInWorkingCapital float64 `yaml:"change_in_working_capital"`
}

// Source implementa ports.CompanySource sobre un archivo YAML.
type Source struct {
	path     string
	defaults Defaults
}

// New crea una Source que lee path. defaults cubre lo que el archivo no defina.
func New(path string, defaults Defaults) *Source {
	return &Source{path: path, defaults: defaults}
}

// Load lee y valida el archivo. Falla en la primera empresa inválida.
func (s *Source) Load(ctx context.Context) ([]domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("yamlsource.Load: read %q: %w", s.path, err)
	}
	return Parse(data, s.defaults)
}

// Parse decodifica el contenido YAML. Expuesto para tests y para leer de stdin.
func Parse(data []byte, defaults Defaults) ([]domain.Company, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yamlsource.Load: parse YAML: %w", err)
	}
	if len(f.Companies) == 0 {
		return nil, fmt.Errorf("yamlsource.Load: no companies defined: %w", domain.ErrInvalidInput)
	}

	d := mergeDefaults(defaults, f.Defaults)

	seen := make(map[string]bool, len(f.Companies))
	out := make([]domain.Company, 0, len(f.Companies))
	for i, raw := range f.Companies {
		c, err := raw.toDomain(d)
		if err != nil {
			return nil, fmt.Errorf("yamlsource.Load: company #%d: %w", i+1, err)
		}
		if seen[c.Ticker] {
			return nil, fmt.Errorf("yamlsource.Load: duplicate ticker %q: %w", c.Ticker, domain.ErrInvalidInput)
		}
		seen[c.Ticker] = true
		out = append(out, c)
	}
	return out, nil
}

func mergeDefaults(base Defaults, fd *fileDefaults) Defaults {
	if fd == nil {
		return base
	}
	if fd.RiskFreeRate != nil {
		base.RiskFreeRate = *fd.RiskFreeRate
	}
	if fd.MarketReturn != nil {
		base.MarketReturn = *fd.MarketReturn
	}
	if fd.IndustryGrowth != nil {
		base.IndustryGrowth = *fd.IndustryGrowth
	}
	return base
}

func (c company) toDomain(d Defaults) (domain.Company, error) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Ticker))
	if ticker == "" {
		return domain.Company{}, fmt.Errorf("missing ticker: %w", domain.ErrInvalidInput)
	}

	fcf := c.FCF
	if len(fcf) == 0 {
		fcf = make([]float64, 0, len(c.CashFlows))
		for _, cf := range c.CashFlows {
			fcf = append(fcf, domain.YearlyFCF(cf.Operating, cf.Capex))
		}
	}

	rf := d.RiskFreeRate
	if c.RiskFreeRate != nil {
		rf = *c.RiskFreeRate
	}
	rm := d.MarketReturn
	if c.MarketReturn != nil {
		rm = *c.MarketReturn
	}
	industry := d.IndustryGrowth
	if c.IndustryGrowth != nil {
		industry = *c.IndustryGrowth
	}

	out := domain.Company{
		Ticker: ticker,
		Name:   c.Name,
		FCF:    fcf,
		Capital: domain.CapitalStructure{
			MarketCap:        c.MarketCap,
			ShortTermDebt:    c.ShortTermDebt,
			LongTermDebt:     c.LongTermDebt,
			InterestExpense:  c.InterestExpense,
			RiskFreeRate:     rf,
			Beta:             c.Beta,
			MarketReturn:     rm,
			IncomeTaxExpense: c.IncomeTaxExpense,
			PreTaxIncome:     c.PreTaxIncome,
		},
		Cash:              c.Cash,
		SharesOutstanding: c.SharesOutstanding,
		Price:             c.Price,
		TerminalGrowth:    c.TerminalGrowth,
		IndustryGrowth:    industry,
	}
	if c.Reinvestment != nil {
		out.Reinvestment = &domain.Reinvestment{
			EBIT:                   c.Reinvestment.EBIT,
			InvestedCapital:        c.Reinvestment.InvestedCapital,
			Capex:                  c.Reinvestment.Capex,
			ChangeInWorkingCapital: c.Reinvestment.ChangeInWorkingCapital,
		}
	}

	if err := validate(out); err != nil {
		return domain.Company{}, fmt.Errorf("%s: %w", ticker, err)
	}
	return out, nil
}

// validate comprueba lo que las fórmulas asumen pero no verifican:
// números finitos y deuda/capitalización no negativas.
func validate(c domain.Company) error {
	cs := c.Capital
	named := map[string]float64{
		"market_cap":         cs.MarketCap,
		"short_term_debt":    cs.ShortTermDebt,
		"long_term_debt":     cs.LongTermDebt,
		"interest_expense":   cs.InterestExpense,
		"risk_free_rate":     cs.RiskFreeRate,
		"beta":               cs.Beta,
		"market_return":      cs.MarketReturn,
		"income_tax_expense": cs.IncomeTaxExpense,
		"pre_tax_income":     cs.PreTaxIncome,
		"cash":               c.Cash,
		"shares_outstanding": c.SharesOutstanding,
		"price":              c.Price,
	}
	for name, v := range named {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite: %w", name, domain.ErrInvalidInput)
		}
	}
	for i, v := range c.FCF {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("fcf[%d] is not finite: %w", i, domain.ErrInvalidInput)
		}
	}

	if cs.MarketCap < 0 {
		return fmt.Errorf("market_cap %.2f is negative: %w", cs.MarketCap, domain.ErrInvalidInput)
	}
	if cs.ShortTermDebt < 0 || cs.LongTermDebt < 0 {
		return fmt.Errorf("debt is negative: %w", domain.ErrInvalidInput)
	}
	return nil
}
