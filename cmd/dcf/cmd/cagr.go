package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alejandrodnm/dcf/internal/adapters/notify"
	"github.com/alejandrodnm/dcf/internal/domain"
	"github.com/spf13/cobra"
)

var cagrCmd = &cobra.Command{
	Use:   "cagr <fcf...>",
	Short: "Print the CAGR and five-year projection of an FCF series",
	Long: `Compute the compound annual growth rate of a free cash flow series given
newest first, and project it five years forward from the newest value.

Example:
  dcf cagr 120 110 100`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cagr(cmd.OutOrStdout(), args)
	},
}

func cagr(w io.Writer, args []string) error {
	fcf := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("fcf[%d]=%q: %w", i, a, domain.ErrInvalidInput)
		}
		fcf[i] = v
	}

	rate, err := domain.CAGR(fcf)
	if err != nil {
		return err
	}
	projected, err := domain.EstimateFutureFCF(fcf, rate)
	if err != nil {
		return err
	}

	notify.NewConsoleWriter(w, false, false).PrintProjection(fcf, rate, projected)
	return nil
}
