package notify_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alejandrodnm/dcf/internal/adapters/notify"
	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOutcome(ticker string, perShare, price float64) domain.Outcome {
	return domain.Outcome{
		Company: domain.Company{Ticker: ticker, Name: ticker + " Corp", FCF: []float64{120, 100}, Price: price},
		Report: domain.Report{
			RunID:     "run-" + ticker,
			Ticker:    ticker,
			ValuedAt:  time.Now(),
			WACC:      0.10,
			CAGR:      0.20,
			Growth:    0.025,
			Source:    domain.GrowthDefault,
			Projected: []float64{144, 172.8, 207.36, 248.832, 298.5984},
			Valuation: domain.Valuation{
				TerminalValue:          4393.6622,
				EnterpriseValue:        3512.9919,
				EquityValue:            3012.9919,
				IntrinsicValuePerShare: perShare,
			},
		},
	}
}

func failedOutcome(ticker string) domain.Outcome {
	return domain.Outcome{
		Company: domain.Company{Ticker: ticker},
		Err:     errors.New("valuation.Run " + ticker + ": cagr: domain error"),
	}
}

func TestConsole_Notify_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	err := n.Notify(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no companies valued")
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	err := n.Notify(context.Background(), []domain.Outcome{
		makeOutcome("ACME", 30.1299, 25),
		failedOutcome("BAD"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ok:1 failed:1")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "30.13/share")
	assert.Contains(t, out, "10.00%")
	assert.Contains(t, out, "+20.5%")
	assert.Contains(t, out, "BAD")
	assert.Contains(t, out, "ERROR")
	assert.NotContains(t, out, "1. COST OF CAPITAL")
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true, false)

	err := n.Notify(context.Background(), []domain.Outcome{
		makeOutcome("ACME", 30.1299, 0),
		failedOutcome("BAD"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "3512.99")
	assert.Contains(t, out, "3012.99")
	assert.Contains(t, out, "30.13")
	assert.Contains(t, out, "2.50% (d)")
	assert.Contains(t, out, "BAD")
	assert.Contains(t, out, "OK")
}

func TestConsole_Notify_DetailsOnlyForSuccessfulRuns(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, true)

	err := n.Notify(context.Background(), []domain.Outcome{
		makeOutcome("ACME", 30.1299, 0),
		failedOutcome("BAD"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "--- ACME (ACME Corp)  run run-ACME ---")
	assert.NotContains(t, out, "--- BAD")
}

func TestConsole_PrintReport(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, true)

	o := makeOutcome("ACME", 30.1299, 25)
	n.PrintReport(o.Company, o.Report)

	out := buf.String()
	assert.Contains(t, out, "1. COST OF CAPITAL")
	assert.Contains(t, out, "120.00, 100.00")
	assert.Contains(t, out, "144.00")
	assert.Contains(t, out, "298.60")
	// factor año 1 a WACC 10%
	assert.Contains(t, out, "0.9091")
	assert.Contains(t, out, "4393.66")
	assert.Contains(t, out, ">>> PER SHARE: 30.13")
	assert.Contains(t, out, "upside +20.5%")
}

func TestConsole_PrintProjection(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	n.PrintProjection([]float64{120, 100}, 0.2, []float64{144, 172.8, 207.36, 248.832, 298.5984})

	out := buf.String()
	assert.Contains(t, out, "CAGR: 20.00%")
	assert.Contains(t, out, "+5")
	assert.Contains(t, out, "248.83")
}

func TestConsole_PrintProjection_NonFiniteDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false, false)

	assert.NotPanics(t, func() {
		n.PrintProjection([]float64{1}, math.Inf(1), []float64{math.Inf(1), math.NaN()})
	})
	assert.Contains(t, buf.String(), "+Inf")
	assert.Contains(t, buf.String(), "NaN")
}
