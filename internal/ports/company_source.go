package ports

import (
	"context"

	"github.com/alejandrodnm/dcf/internal/domain"
)

// CompanySource entrega las cifras ya obtenidas de las empresas a valorar.
// La obtención de datos (scraping, APIs) queda fuera: la fuente sólo lee.
type CompanySource interface {
	// Load devuelve las empresas en el orden en que aparecen en la fuente.
	Load(ctx context.Context) ([]domain.Company, error)
}
