// Package datagen generates synthetic point sets for benchmarks and tests:
// Gaussian blobs on top of uniform background noise.
package datagen

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Options describes a synthetic dataset.
type Options struct {
	// Points is the total number of points, noise included.
	Points int
	// Dims is the dimensionality.
	Dims int
	// Clusters is the number of Gaussian blobs.
	Clusters int
	// Min and Max bound the cluster centres and the noise.
	Min, Max float64
	// Sigma is the per-dimension standard deviation of every blob.
	Sigma float64
	// ClusterFraction is the share of points drawn from blobs; the rest is
	// uniform noise.
	ClusterFraction float64
	// Seed makes the dataset reproducible.
	Seed uint64
}

// DefaultOptions mirrors the reference benchmark: 1000 points in 2D, ten
// unit-sigma blobs holding 90% of the points, in [-20, 20].
func DefaultOptions() Options {
	return Options{
		Points:          1000,
		Dims:            2,
		Clusters:        10,
		Min:             -20,
		Max:             20,
		Sigma:           1,
		ClusterFraction: 0.9,
	}
}

// Dataset is a generated point set in the column layout the clusterer takes.
type Dataset struct {
	// Coordinates[dim][i] is coordinate dim of point i.
	Coordinates [][]float64
	// Weights are all 1.
	Weights []float64
	// Truth[i] is the blob point i was drawn from, or -1 for noise.
	Truth []int
	// Centers[c] is the centre of blob c.
	Centers [][]float64
}

// Generate builds a dataset. Blob points come first, grouped by blob, then
// the noise.
func Generate(opts Options) (*Dataset, error) {
	if opts.Points < 0 || opts.Dims < 1 || opts.Clusters < 0 {
		return nil, fmt.Errorf("datagen: invalid sizes points=%d dims=%d clusters=%d", opts.Points, opts.Dims, opts.Clusters)
	}
	if !(opts.Min < opts.Max) {
		return nil, fmt.Errorf("datagen: Min must be < Max, got [%v, %v]", opts.Min, opts.Max)
	}
	if opts.ClusterFraction < 0 || opts.ClusterFraction > 1 {
		return nil, fmt.Errorf("datagen: ClusterFraction must be in [0, 1], got %v", opts.ClusterFraction)
	}

	src := rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)
	uniform := distuv.Uniform{Min: opts.Min, Max: opts.Max, Src: src}

	perCluster := 0
	if opts.Clusters > 0 {
		perCluster = int(opts.ClusterFraction*float64(opts.Points)) / opts.Clusters
	}

	ds := &Dataset{
		Coordinates: make([][]float64, opts.Dims),
		Weights:     make([]float64, opts.Points),
		Truth:       make([]int, opts.Points),
		Centers:     make([][]float64, opts.Clusters),
	}
	for dim := range ds.Coordinates {
		ds.Coordinates[dim] = make([]float64, opts.Points)
	}
	floats.AddConst(1, ds.Weights)

	i := 0
	for c := range opts.Clusters {
		center := make([]float64, opts.Dims)
		for dim := range center {
			center[dim] = uniform.Rand()
		}
		ds.Centers[c] = center

		for range perCluster {
			for dim := range opts.Dims {
				normal := distuv.Normal{Mu: center[dim], Sigma: opts.Sigma, Src: src}
				ds.Coordinates[dim][i] = normal.Rand()
			}
			ds.Truth[i] = c
			i++
		}
	}
	for ; i < opts.Points; i++ {
		for dim := range opts.Dims {
			ds.Coordinates[dim][i] = uniform.Rand()
		}
		ds.Truth[i] = -1
	}
	return ds, nil
}
