package valuation

import "github.com/alejandrodnm/dcf/internal/domain"

// FilterConfig contiene los umbrales del screen sobre resultados.
// Un umbral a 0 queda desactivado.
type FilterConfig struct {
	// MinUpsidePct descarta empresas cuyo valor por acción no supera el precio en este %.
	// Las empresas sin precio se descartan si el umbral está activo.
	MinUpsidePct float64
	// MaxWACC descarta empresas con una tasa de descuento mayor.
	MaxWACC float64
}

// Filter aplica el screen sobre los outcomes de un batch.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Active indica si hay algún umbral configurado.
func (f *Filter) Active() bool {
	return f.cfg.MinUpsidePct != 0 || f.cfg.MaxWACC > 0
}

// Apply devuelve los outcomes que pasan el screen, en el mismo orden.
// Los fallidos se conservan siempre para que el error llegue al usuario.
func (f *Filter) Apply(outcomes []domain.Outcome) []domain.Outcome {
	result := make([]domain.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.OK() || f.passes(o) {
			result = append(result, o)
		}
	}
	return result
}

func (f *Filter) passes(o domain.Outcome) bool {
	if f.cfg.MaxWACC > 0 && o.Report.WACC > f.cfg.MaxWACC {
		return false
	}
	if f.cfg.MinUpsidePct != 0 {
		if o.Company.Price <= 0 {
			return false
		}
		if o.Report.UpsidePct(o.Company.Price) < f.cfg.MinUpsidePct {
			return false
		}
	}
	return true
}
