// Package cmd contiene los comandos del CLI dcf.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alejandrodnm/dcf/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	// cfg queda cargada por PersistentPreRunE antes de cualquier subcomando.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dcf",
	Short: "Discounted cash flow valuation",
	Long: `dcf values companies with a five-year discounted cash flow model:
cost of capital → WACC → historical CAGR → projection → terminal value →
enterprise, equity and per-share value.

Examples:
  dcf value config/companies.example.yaml
  dcf value --details --ticker ACME companies.yaml
  dcf cagr 120 110 100`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute ejecuta el comando raíz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: env + built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set log level to debug")
	rootCmd.PersistentFlags().StringVar(&logFormat, "format", "", "log format: text|json (overrides config)")

	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(cagrCmd)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	setupLogger(cmd.ErrOrStderr(), cfg.Log)
	return nil
}

// setupLogger configura slog. Los logs van a stderr para no mezclarse con el output.
func setupLogger(w io.Writer, lc config.LogConfig) {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
