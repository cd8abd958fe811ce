package yamlsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/dcf/internal/adapters/yamlsource"
	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
defaults:
  risk_free_rate: 0.04
  market_return: 0.10
companies:
  - ticker: acme
    name: Acme Corp
    fcf: [120, 100]
    market_cap: 1000
    short_term_debt: 100
    long_term_debt: 400
    interest_expense: 25
    beta: 1.2
    income_tax_expense: 21
    pre_tax_income: 100
    cash: 50
    shares_outstanding: 100
    price: 25
    terminal_growth: 0.03
  - ticker: GLOBEX
    cash_flows:
      - {operating: 150, capex: 30}
      - {operating: 130, capex: 30}
    market_cap: 500
    long_term_debt: 50
    interest_expense: 3
    risk_free_rate: 0.05
    beta: 0.9
    income_tax_expense: 10
    pre_tax_income: 40
    shares_outstanding: 10
    industry_growth: 0.03
    reinvestment:
      ebit: 60
      invested_capital: 400
      capex: 30
      change_in_working_capital: 5
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Load_Sample(t *testing.T) {
	src := yamlsource.New(writeFile(t, sampleFile), yamlsource.Defaults{IndustryGrowth: 0.05})

	companies, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)

	acme := companies[0]
	assert.Equal(t, "ACME", acme.Ticker)
	assert.Equal(t, "Acme Corp", acme.Name)
	assert.Equal(t, []float64{120, 100}, acme.FCF)
	assert.Equal(t, 0.04, acme.Capital.RiskFreeRate)
	assert.Equal(t, 0.10, acme.Capital.MarketReturn)
	assert.Equal(t, 0.05, acme.IndustryGrowth)
	assert.Equal(t, 50.0, acme.Cash)
	assert.Equal(t, 25.0, acme.Price)
	require.NotNil(t, acme.TerminalGrowth)
	assert.Equal(t, 0.03, *acme.TerminalGrowth)
	assert.Nil(t, acme.Reinvestment)

	globex := companies[1]
	assert.Equal(t, []float64{120, 100}, globex.FCF, "derived from operating - capex")
	assert.Equal(t, 0.05, globex.Capital.RiskFreeRate, "company overrides file defaults")
	assert.Equal(t, 0.03, globex.IndustryGrowth)
	assert.Nil(t, globex.TerminalGrowth)
	require.NotNil(t, globex.Reinvestment)
	assert.Equal(t, 400.0, globex.Reinvestment.InvestedCapital)
}

func TestSource_Load_CallerDefaultsWithoutFileDefaults(t *testing.T) {
	content := `
companies:
  - ticker: X
    fcf: [10, 8]
    market_cap: 100
`
	companies, err := yamlsource.Parse([]byte(content), yamlsource.Defaults{RiskFreeRate: 0.03, MarketReturn: 0.08})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, 0.03, companies[0].Capital.RiskFreeRate)
	assert.Equal(t, 0.08, companies[0].Capital.MarketReturn)
}

func TestSource_Load_MissingFile(t *testing.T) {
	src := yamlsource.New(filepath.Join(t.TempDir(), "nope.yaml"), yamlsource.Defaults{})
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yamlsource.Load")
}

func TestSource_Load_InvalidYAML(t *testing.T) {
	_, err := yamlsource.Parse([]byte("companies: [unclosed"), yamlsource.Defaults{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestSource_Load_NoCompanies(t *testing.T) {
	_, err := yamlsource.Parse([]byte("defaults: {}\n"), yamlsource.Defaults{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_Load_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing ticker", "companies:\n  - fcf: [1, 2]\n"},
		{"negative debt", "companies:\n  - ticker: A\n    long_term_debt: -5\n"},
		{"negative market cap", "companies:\n  - ticker: A\n    market_cap: -1\n"},
		{"non-finite fcf", "companies:\n  - ticker: A\n    fcf: [.inf, 1]\n"},
		{"non-finite beta", "companies:\n  - ticker: A\n    beta: .nan\n"},
		{"duplicate ticker", "companies:\n  - ticker: A\n  - ticker: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yamlsource.Parse([]byte(tt.content), yamlsource.Defaults{})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSource_Load_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := yamlsource.New(writeFile(t, sampleFile), yamlsource.Defaults{}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
