package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alejandrodnm/dcf/internal/adapters/notify"
	"github.com/alejandrodnm/dcf/internal/adapters/yamlsource"
	"github.com/alejandrodnm/dcf/internal/application/valuation"
	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/alejandrodnm/dcf/internal/ports"
	"github.com/spf13/cobra"
)

// errRunsFailed indica que al menos una empresa no pudo valorarse.
var errRunsFailed = errors.New("some valuations failed")

var (
	showDetails bool
	showTable   bool
	onlyTicker  string
	minUpside   float64
	maxWACC     float64
)

var valueCmd = &cobra.Command{
	Use:   "value <companies.yaml>",
	Short: "Value every company in a YAML file",
	Long: `Load companies from a YAML file, run the DCF pipeline on each one
concurrently and print the results in input order.

Exits with a non-zero status if any company failed to value.`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

func init() {
	valueCmd.Flags().BoolVarP(&showDetails, "details", "d", false, "print the step-by-step breakdown per company")
	valueCmd.Flags().BoolVarP(&showTable, "table", "t", false, "print a full table (default: compact 1-line)")
	valueCmd.Flags().StringVar(&onlyTicker, "ticker", "", "value only this ticker")
	valueCmd.Flags().Float64Var(&minUpside, "min-upside", 0, "only show companies with at least this upside vs price, in %")
	valueCmd.Flags().Float64Var(&maxWACC, "max-wacc", 0, "only show companies with a WACC at or below this ratio")
}

func runValue(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var source ports.CompanySource = yamlsource.New(args[0], yamlsource.Defaults{
		RiskFreeRate:   cfg.Valuation.RiskFreeRate,
		MarketReturn:   cfg.Valuation.MarketReturn,
		IndustryGrowth: cfg.Valuation.IndustryGrowth,
	})
	notifier := notify.NewConsole(showTable, showDetails)

	svc := valuation.New(valuation.Config{
		DefaultTerminalGrowth: cfg.Valuation.DefaultTerminalGrowth,
		IndustryGrowth:        cfg.Valuation.IndustryGrowth,
		Workers:               cfg.Valuation.Workers,
	})

	filter := valuation.NewFilter(valuation.FilterConfig{MinUpsidePct: minUpside, MaxWACC: maxWACC})

	return value(ctx, source, svc, filter, notifier, onlyTicker)
}

// value carga, valora y notifica. Separado de runValue para poder testearlo sin flags globales.
func value(ctx context.Context, source ports.CompanySource, svc *valuation.Service, filter *valuation.Filter, notifier ports.Notifier, ticker string) error {
	start := time.Now()

	companies, err := source.Load(ctx)
	if err != nil {
		return err
	}

	if ticker != "" {
		companies, err = filterTicker(companies, ticker)
		if err != nil {
			return err
		}
	}

	slog.Info("valuing companies", "count", len(companies))
	outcomes := svc.RunBatch(ctx, companies)

	shown := outcomes
	if filter.Active() {
		shown = filter.Apply(outcomes)
		slog.Info("screen applied", "kept", len(shown), "total", len(outcomes))
	}

	if err := notifier.Notify(ctx, shown); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
			slog.Error("valuation failed", "ticker", o.Company.Ticker, "err", o.Err)
		}
	}
	slog.Info("valuation complete",
		"companies", len(outcomes),
		"failed", failed,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(outcomes), errRunsFailed)
	}
	return nil
}

func filterTicker(companies []domain.Company, ticker string) ([]domain.Company, error) {
	want := strings.ToUpper(strings.TrimSpace(ticker))
	for _, c := range companies {
		if c.Ticker == want {
			return []domain.Company{c}, nil
		}
	}
	return nil, fmt.Errorf("ticker %q not found: %w", ticker, domain.ErrInvalidInput)
}
