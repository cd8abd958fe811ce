package valuation

// batch.go: worker pool para valorar varias empresas en paralelo.
//
// Cada valoración es independiente y pura, así que los workers no comparten
// nada salvo el Service (inmutable). El resultado conserva el orden de entrada.

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/dcf/internal/domain"
)

// RunBatch valora todas las empresas usando un worker pool.
// Si workers <= 0 usa runtime.NumCPU() × 2. Un error en una empresa no
// afecta a las demás: queda en su Outcome. Si el contexto se cancela, las
// empresas pendientes reciben ctx.Err().
func (s *Service) RunBatch(ctx context.Context, companies []domain.Company) []domain.Outcome {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > len(companies) {
		workers = len(companies)
	}

	outcomes := make([]domain.Outcome, len(companies))
	workCh := make(chan int, len(companies))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				c := companies[idx]
				report, err := s.Run(ctx, c)
				if err != nil {
					slog.Debug("valuation failed", "ticker", c.Ticker, "err", err)
				}
				// Cada worker escribe sólo su índice; no hace falta mutex.
				outcomes[idx] = domain.Outcome{Company: c, Report: report, Err: err}
			}
		}()
	}

	for i := range companies {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	slog.Debug("batch valuation complete",
		"companies", len(companies),
		"failed", failed,
		"workers", workers,
	)

	return outcomes
}
