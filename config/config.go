package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del valuador.
type Config struct {
	Valuation ValuationConfig `yaml:"valuation"`
	Log       LogConfig       `yaml:"log"`
}

// ValuationConfig contiene los supuestos por defecto del pipeline.
// El horizonte de proyección NO es configurable (domain.ProjectionYears).
type ValuationConfig struct {
	RiskFreeRate          float64 `yaml:"risk_free_rate"`          // bono a 10 años, ratio
	MarketReturn          float64 `yaml:"market_return"`           // retorno esperado del benchmark, ratio
	IndustryGrowth        float64 `yaml:"industry_growth"`         // crecimiento de sector a largo plazo
	DefaultTerminalGrowth float64 `yaml:"default_terminal_growth"` // g si no hay override ni datos de reinversión
	Workers               int     `yaml:"workers"`                 // 0 = NumCPU × 2
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve la configuración sin archivo: sólo env y defaults.
// Es lo que usa el CLI cuando no se pasa --config.
func Default() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Default: %w", err)
	}
	setDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DCF_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DCF_WORKERS=%q: %w", v, err)
		}
		cfg.Valuation.Workers = n
	}

	rates := []struct {
		key string
		dst *float64
	}{
		{"DCF_RISK_FREE_RATE", &cfg.Valuation.RiskFreeRate},
		{"DCF_MARKET_RETURN", &cfg.Valuation.MarketReturn},
	}
	for _, r := range rates {
		v := os.Getenv(r.key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", r.key, v, err)
		}
		*r.dst = f
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Tasas a 0 se consideran no definidas.
func setDefaults(cfg *Config) {
	if cfg.Valuation.RiskFreeRate == 0 {
		cfg.Valuation.RiskFreeRate = 0.05
	}
	if cfg.Valuation.MarketReturn == 0 {
		cfg.Valuation.MarketReturn = 0.05
	}
	if cfg.Valuation.IndustryGrowth == 0 {
		cfg.Valuation.IndustryGrowth = 0.05
	}
	if cfg.Valuation.DefaultTerminalGrowth == 0 {
		cfg.Valuation.DefaultTerminalGrowth = 0.025
	}
	if cfg.Valuation.Workers < 0 {
		cfg.Valuation.Workers = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
