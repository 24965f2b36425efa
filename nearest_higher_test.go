package clue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteNearestHigher scans every pair using the already computed densities.
func bruteNearestHigher(p *PointSet, dm float64) ([]float64, []int) {
	delta := make([]float64, p.N())
	nh := make([]int, p.N())
	for i := range p.N() {
		delta[i], nh[i] = math.Inf(1), -1
		for j := range p.N() {
			higher := p.Rho(j) > p.Rho(i) || (p.Rho(j) == p.Rho(i) && j > i)
			if d := p.Distance(i, j); higher && d <= dm && d < delta[i] {
				delta[i], nh[i] = d, j
			}
		}
	}
	return delta, nh
}

func TestNearestHigher_MatchesBruteForce(t *testing.T) {
	for _, dims := range []int{1, 2, 3} {
		coords := randomCoords(500, dims, 100+uint64(dims), -10, 10)
		cfg := DefaultConfig()
		cfg.Dc = 1.2
		cfg.OutlierDeltaFactor = 2.5
		cfg.PointsPerTile = 6
		c := newTestClusterer(t, cfg, coords, nil)

		_, err := c.MakeClusters(GaussianKernel{Mean: 0, StdDev: 0.7, Amplitude: 1})
		require.NoError(t, err)

		p := c.Points()
		delta, nh := bruteNearestHigher(p, cfg.OutlierDeltaFactor*cfg.Dc)
		for i := range p.N() {
			require.Equal(t, nh[i], p.NearestHigher(i), "dims=%d point %d", dims, i)
			require.Equal(t, delta[i], p.Delta(i), "dims=%d point %d", dims, i)
		}
	}
}

func TestNearestHigher_IsDenser(t *testing.T) {
	coords := randomCoords(800, 2, 5, 0, 30)
	cfg := DefaultConfig()
	cfg.Dc = 1
	c := newTestClusterer(t, cfg, coords, nil)

	// A flat kernel produces many equal densities and exercises the tie-break.
	_, err := c.MakeClusters(FlatKernel{Value: 1})
	require.NoError(t, err)

	p := c.Points()
	for i := range p.N() {
		nh := p.NearestHigher(i)
		if nh == -1 {
			assert.True(t, math.IsInf(p.Delta(i), 1))
			continue
		}
		denser := p.Rho(nh) > p.Rho(i) || (p.Rho(nh) == p.Rho(i) && nh > i)
		assert.True(t, denser, "point %d -> %d is not denser", i, nh)
		assert.LessOrEqual(t, p.Delta(i), cfg.OutlierDeltaFactor*cfg.Dc)
		assert.Equal(t, p.Distance(i, nh), p.Delta(i))
	}
}

func TestNearestHigher_TieBreakFavoursHigherIndex(t *testing.T) {
	coords := [][]float64{{0, 0.5, 1}}
	cfg := DefaultConfig()
	cfg.Dc = 2
	cfg.PointsPerTile = 1
	c := newTestClusterer(t, cfg, coords, nil)

	// Every point sees every other one, so all densities are equal.
	_, err := c.MakeClusters(FlatKernel{Value: 1})
	require.NoError(t, err)

	p := c.Points()
	assert.Equal(t, 1, p.NearestHigher(0))
	assert.Equal(t, 2, p.NearestHigher(1))
	assert.Equal(t, -1, p.NearestHigher(2))
	assert.InDelta(t, 0.5, p.Delta(0), floatTol)
	assert.InDelta(t, 0.5, p.Delta(1), floatTol)
	assert.True(t, math.IsInf(p.Delta(2), 1))
}

func TestNearestHigher_OutsideEnlargedRadius(t *testing.T) {
	coords := [][]float64{{0, 2.5, 2.6}}
	cfg := DefaultConfig()
	cfg.Dc = 1
	cfg.OutlierDeltaFactor = 2
	cfg.PointsPerTile = 1
	c := newTestClusterer(t, cfg, coords, nil)

	_, err := c.MakeClusters(FlatKernel{Value: 1})
	require.NoError(t, err)

	// Point 0 is alone (rho 1); the denser pair is 2.5 away, beyond dm = 2.
	p := c.Points()
	assert.Equal(t, -1, p.NearestHigher(0))
	assert.True(t, math.IsInf(p.Delta(0), 1))
	assert.Equal(t, 2, p.NearestHigher(1))
}
