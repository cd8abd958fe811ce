package ports

import (
	"context"

	"github.com/alejandrodnm/dcf/internal/domain"
)

// Notifier presenta los resultados de una tanda de valoraciones.
type Notifier interface {
	// Notify muestra un resultado por empresa, en el orden recibido.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, outcomes []domain.Outcome) error
}
