package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func TestGenerate_Shape(t *testing.T) {
	opts := DefaultOptions()
	ds, err := Generate(opts)
	require.NoError(t, err)

	require.Len(t, ds.Coordinates, opts.Dims)
	for _, c := range ds.Coordinates {
		assert.Len(t, c, opts.Points)
	}
	assert.Len(t, ds.Weights, opts.Points)
	assert.Equal(t, float64(opts.Points), floats.Sum(ds.Weights), "every weight is 1")
	assert.Len(t, ds.Centers, opts.Clusters)

	perCluster := 90
	for i, c := range ds.Truth {
		if i < perCluster*opts.Clusters {
			assert.Equal(t, i/perCluster, c)
		} else {
			assert.Equal(t, -1, c)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 17
	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Coordinates, b.Coordinates)

	opts.Seed = 18
	c, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Coordinates, c.Coordinates)
}

func TestGenerate_BlobsAreCentred(t *testing.T) {
	opts := DefaultOptions()
	opts.Points, opts.Clusters, opts.ClusterFraction = 4000, 2, 1
	ds, err := Generate(opts)
	require.NoError(t, err)

	for c, center := range ds.Centers {
		for dim := range opts.Dims {
			blob := ds.Coordinates[dim][c*2000 : (c+1)*2000]
			mean, std := stat.MeanStdDev(blob, nil)
			assert.InDelta(t, center[dim], mean, 0.1)
			assert.InDelta(t, opts.Sigma, std, 0.1)
		}
	}
}

func TestGenerate_NoiseWithinBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.ClusterFraction = 0
	ds, err := Generate(opts)
	require.NoError(t, err)

	for _, c := range ds.Coordinates {
		assert.GreaterOrEqual(t, floats.Min(c), opts.Min)
		assert.LessOrEqual(t, floats.Max(c), opts.Max)
	}
}

func TestGenerate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero dims", func(o *Options) { o.Dims = 0 }},
		{"negative points", func(o *Options) { o.Points = -1 }},
		{"empty range", func(o *Options) { o.Min, o.Max = 1, 1 }},
		{"fraction above one", func(o *Options) { o.ClusterFraction = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := Generate(opts)
			assert.Error(t, err)
		})
	}
}
