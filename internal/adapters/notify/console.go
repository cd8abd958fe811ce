package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// Console implementa ports.Notifier.
type Console struct {
	out     io.Writer
	table   bool
	details bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table, details bool) *Console {
	return &Console{out: os.Stdout, table: table, details: details}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table, details bool) *Console {
	return &Console{out: w, table: table, details: details}
}

// Notify imprime el output en el modo configurado.
func (c *Console) Notify(_ context.Context, outcomes []domain.Outcome) error {
	if len(outcomes) == 0 {
		fmt.Fprintf(c.out, "[%s] no companies valued\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printTable(outcomes)
	} else {
		c.printCompact(outcomes)
	}

	if c.details {
		for _, o := range outcomes {
			if o.OK() {
				c.PrintReport(o.Company, o.Report)
			}
		}
	}

	return nil
}

// printCompact imprime una línea por empresa.
func (c *Console) printCompact(outcomes []domain.Outcome) {
	now := time.Now().Format("15:04:05")
	failed := countFailed(outcomes)
	fmt.Fprintf(c.out, "[%s] %d companies → ok:%d failed:%d\n", now, len(outcomes), len(outcomes)-failed, failed)

	for _, o := range outcomes {
		if !o.OK() {
			fmt.Fprintf(c.out, "  %-8s ERROR %v\n", o.Company.Ticker, o.Err)
			continue
		}
		r := o.Report
		var sb strings.Builder
		fmt.Fprintf(&sb, "  %-8s wacc %s g %s cagr %s → %s/share",
			r.Ticker, percent(r.WACC), percent(r.Growth), percent(r.CAGR),
			money(r.Valuation.IntrinsicValuePerShare))
		if o.Company.Price > 0 {
			fmt.Fprintf(&sb, " (price %s, %+.1f%%)", money(o.Company.Price), r.UpsidePct(o.Company.Price))
		}
		fmt.Fprintln(c.out, sb.String())
	}
}

// printTable imprime la tabla completa de resultados.
func (c *Console) printTable(outcomes []domain.Outcome) {
	failed := countFailed(outcomes)
	fmt.Fprintf(c.out, "\n[%s] %d companies → ok:%d failed:%d\n",
		time.Now().Format("15:04:05"), len(outcomes), len(outcomes)-failed, failed)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Ticker", "WACC", "CAGR", "g", "EV", "Equity", "Per share", "Price", "Upside", "Status")

	for i, o := range outcomes {
		if !o.OK() {
			table.Append(
				fmt.Sprintf("%d", i+1),
				o.Company.Ticker,
				"-", "-", "-", "-", "-", "-", "-", "-",
				truncate(o.Err.Error(), 40),
			)
			continue
		}

		r := o.Report
		price, upside := "-", "-"
		if o.Company.Price > 0 {
			price = money(o.Company.Price)
			upside = fmt.Sprintf("%+.1f%%", r.UpsidePct(o.Company.Price))
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			r.Ticker,
			percent(r.WACC),
			percent(r.CAGR),
			percent(r.Growth)+" "+sourceTag(r.Source),
			money(r.Valuation.EnterpriseValue),
			money(r.Valuation.EquityValue),
			money(r.Valuation.IntrinsicValuePerShare),
			price,
			upside,
			"OK",
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  g: (o) override | (b) blended CAGR/reinvestment/industry | (d) config default")
}

// PrintReport imprime el cálculo paso a paso de una valoración.
func (c *Console) PrintReport(company domain.Company, r domain.Report) {
	name := r.Ticker
	if company.Name != "" {
		name = fmt.Sprintf("%s (%s)", r.Ticker, company.Name)
	}
	fmt.Fprintf(c.out, "\n--- %s  run %s ---\n", name, r.RunID)

	fmt.Fprintf(c.out, "\n  1. COST OF CAPITAL:\n")
	fmt.Fprintf(c.out, "     total_debt=%s  net_debt=%s\n", money(r.Costs.TotalDebt), money(r.NetDebt))
	fmt.Fprintf(c.out, "     cost_of_equity=%s  cost_of_debt=%s  tax_rate=%s\n",
		percent(r.Costs.CostOfEquity), percent(r.Costs.CostOfDebt), percent(r.Costs.TaxRate))
	fmt.Fprintf(c.out, "     >>> WACC: %s\n", percent(r.WACC))

	fmt.Fprintf(c.out, "\n  2. GROWTH:\n")
	fmt.Fprintf(c.out, "     historical FCF (newest first): %s\n", joinMoney(company.FCF))
	fmt.Fprintf(c.out, "     CAGR: %s\n", percent(r.CAGR))
	fmt.Fprintf(c.out, "     terminal g: %s (%s)\n", percent(r.Growth), r.Source)

	fmt.Fprintf(c.out, "\n  3. PROJECTION:\n")
	tbl := tablewriter.NewWriter(c.out)
	tbl.Header("Year", "FCF", "Discount factor", "PV")
	for i, fcf := range r.Projected {
		factor := 1 / math.Pow(1+r.WACC, float64(i+1))
		tbl.Append(
			fmt.Sprintf("%d", i+1),
			money(fcf),
			fmt.Sprintf("%.4f", factor),
			money(fcf*factor),
		)
	}
	tbl.Render()

	v := r.Valuation
	fmt.Fprintf(c.out, "\n  4. VALUE:\n")
	fmt.Fprintf(c.out, "     terminal value:        %s\n", money(v.TerminalValue))
	fmt.Fprintf(c.out, "     PV terminal value:     %s\n", money(v.DiscountedTerminalValue))
	fmt.Fprintf(c.out, "     Σ PV projected FCF:    %s\n", money(v.SumDiscountedFCF))
	fmt.Fprintf(c.out, "     enterprise value:      %s\n", money(v.EnterpriseValue))
	fmt.Fprintf(c.out, "     equity value:          %s\n", money(v.EquityValue))
	fmt.Fprintf(c.out, "     >>> PER SHARE: %s\n", money(v.IntrinsicValuePerShare))
	if company.Price > 0 {
		fmt.Fprintf(c.out, "     price %s → upside %+.1f%%\n", money(company.Price), r.UpsidePct(company.Price))
	}
	fmt.Fprintln(c.out)
}

// PrintProjection imprime el CAGR y la proyección de una serie suelta de FCF.
func (c *Console) PrintProjection(fcf []float64, cagr float64, projected []float64) {
	fmt.Fprintf(c.out, "historical FCF (newest first): %s\n", joinMoney(fcf))
	fmt.Fprintf(c.out, "CAGR: %s\n", percent(cagr))

	tbl := tablewriter.NewWriter(c.out)
	tbl.Header("Year", "Projected FCF")
	for i, v := range projected {
		tbl.Append(fmt.Sprintf("+%d", i+1), money(v))
	}
	tbl.Render()
}

func countFailed(outcomes []domain.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

func sourceTag(s domain.GrowthSource) string {
	switch s {
	case domain.GrowthOverride:
		return "(o)"
	case domain.GrowthBlended:
		return "(b)"
	default:
		return "(d)"
	}
}

// money redondea importes a 2 decimales con decimal para evitar artefactos de float.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func joinMoney(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = money(v)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
