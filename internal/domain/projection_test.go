package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFutureFCF_AnchorsOnLatest(t *testing.T) {
	fcf := []float64{120, 100}
	cagr, err := CAGR(fcf)
	require.NoError(t, err)

	projected, err := EstimateFutureFCF(fcf, cagr)
	require.NoError(t, err)
	require.Len(t, projected, ProjectionYears)

	want := []float64{144, 172.8, 207.36, 248.832, 298.5984}
	for i := range want {
		assert.InDelta(t, want[i], projected[i], 1e-9, "period %d", i+1)
	}
}

func TestEstimateFutureFCF_EachPeriodCompounds(t *testing.T) {
	cagr := 0.0731
	projected, err := EstimateFutureFCF([]float64{250, 240, 230}, cagr)
	require.NoError(t, err)
	require.Len(t, projected, ProjectionYears)

	prev := 250.0
	for i, v := range projected {
		assert.Equal(t, prev*(1+cagr), v, "period %d", i+1)
		prev = v
	}
}

func TestEstimateFutureFCF_NegativeGrowth(t *testing.T) {
	projected, err := EstimateFutureFCF([]float64{100, 200}, -0.5)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, projected[0], 1e-12)
	assert.InDelta(t, 3.125, projected[4], 1e-12)
}

func TestEstimateFutureFCF_EmptySeries(t *testing.T) {
	_, err := EstimateFutureFCF(nil, 0.1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEstimateFutureFCF_NonFiniteGrowth(t *testing.T) {
	_, err := EstimateFutureFCF([]float64{100, 90}, math.NaN())
	assert.ErrorIs(t, err, ErrDomain)

	_, err = EstimateFutureFCF([]float64{100, 90}, math.Inf(1))
	assert.ErrorIs(t, err, ErrDomain)
}

func TestEstimateFutureFCF_OverflowNotClamped(t *testing.T) {
	projected, err := EstimateFutureFCF([]float64{1e300, 1}, 1e10)
	require.NoError(t, err)
	assert.True(t, math.IsInf(projected[ProjectionYears-1], 1))
}
