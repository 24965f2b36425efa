package clue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKernels_SelfWeightIsOne(t *testing.T) {
	kernels := []Kernel{
		FlatKernel{Value: 0.5},
		ExponentialKernel{Mean: 2, Amplitude: 3},
		GaussianKernel{Mean: 1, StdDev: 0.5, Amplitude: 4},
	}
	for _, k := range kernels {
		assert.Equal(t, 1.0, k.Weight(0, 7, 7), "%T", k)
		assert.Equal(t, 1.0, k.Weight(0.3, 7, 7), "%T", k)
	}
}

func TestFlatKernel(t *testing.T) {
	k := FlatKernel{Value: 0.25}
	assert.Equal(t, 0.25, k.Weight(0, 0, 1))
	assert.Equal(t, 0.25, k.Weight(100, 0, 1))
}

func TestExponentialKernel(t *testing.T) {
	k := ExponentialKernel{Mean: 2, Amplitude: 3}
	assert.InDelta(t, 3.0, k.Weight(0, 0, 1), floatTol)
	assert.InDelta(t, 3*math.Exp(-1), k.Weight(0.5, 0, 1), floatTol)
}

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel{Mean: 1, StdDev: 0.5, Amplitude: 4}
	assert.InDelta(t, 4.0, k.Weight(1, 0, 1), floatTol)
	assert.InDelta(t, 4*math.Exp(-2), k.Weight(2, 0, 1), floatTol)
	assert.InDelta(t, k.Weight(0.5, 0, 1), k.Weight(1.5, 0, 1), floatTol, "symmetric around the mean")
}

func TestKernelFunc(t *testing.T) {
	var calls int
	k := KernelFunc(func(dist float64, i, j int) float64 {
		calls++
		return dist + float64(i*10+j)
	})
	assert.Equal(t, 12.5, k.Weight(0.5, 1, 2))
	assert.Equal(t, 1, calls)
}
