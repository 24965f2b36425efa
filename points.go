package clue

import (
	"fmt"
	"math"
)

// PointSet holds the input coordinates and weights of the points being
// clustered together with every per-point output of the pipeline. All
// per-point slices share the same length N.
type PointSet struct {
	coords  [][]float64 // coords[dim][i]
	weight  []float64
	domains []Domain
	delta   DeltaFunc

	rho           []float64
	deltaHigher   []float64
	nearestHigher []int
	followers     [][]int
	clusterIndex  []int
	isSeed        []bool
}

func newPointSet(domains []Domain, delta DeltaFunc) *PointSet {
	return &PointSet{domains: domains, delta: delta}
}

// set copies the inputs and initialises the outputs. The caller has already
// checked the shapes.
func (p *PointSet) set(coordinates [][]float64, weights []float64) {
	p.coords = make([][]float64, len(coordinates))
	for dim, c := range coordinates {
		p.coords[dim] = append([]float64(nil), c...)
	}
	p.weight = append([]float64(nil), weights...)

	n := len(weights)
	p.rho = make([]float64, n)
	p.deltaHigher = make([]float64, n)
	p.nearestHigher = make([]int, n)
	p.followers = make([][]int, n)
	p.clusterIndex = make([]int, n)
	p.isSeed = make([]bool, n)
	p.resetOutputs()
}

// resetOutputs restores every output to its default so a clustering pass
// never sees results from a previous one.
func (p *PointSet) resetOutputs() {
	for i := range p.rho {
		p.rho[i] = 0
		p.deltaHigher[i] = math.Inf(1)
		p.nearestHigher[i] = -1
		p.followers[i] = p.followers[i][:0]
		p.clusterIndex[i] = -1
		p.isSeed[i] = false
	}
}

func (p *PointSet) clear() {
	p.coords = nil
	p.weight = nil
	p.rho = nil
	p.deltaHigher = nil
	p.nearestHigher = nil
	p.followers = nil
	p.clusterIndex = nil
	p.isSeed = nil
}

// N returns the number of points.
func (p *PointSet) N() int { return len(p.weight) }

// Dims returns the dimensionality.
func (p *PointSet) Dims() int { return len(p.domains) }

// Coordinate returns coordinate dim of point i.
func (p *PointSet) Coordinate(dim, i int) float64 { return p.coords[dim][i] }

// Coordinates returns all coordinates along dim. The slice must not be
// modified.
func (p *PointSet) Coordinates(dim int) []float64 {
	if dim >= len(p.coords) {
		return nil
	}
	return p.coords[dim]
}

// Weight returns the weight of point i.
func (p *PointSet) Weight(i int) float64 { return p.weight[i] }

// Rho returns the local density of point i.
func (p *PointSet) Rho(i int) float64 { return p.rho[i] }

// Delta returns the distance from point i to its nearest higher, or +Inf.
func (p *PointSet) Delta(i int) float64 { return p.deltaHigher[i] }

// NearestHigher returns the index of the nearest denser point, or -1.
func (p *PointSet) NearestHigher(i int) int { return p.nearestHigher[i] }

// Followers returns the points whose cluster id is inherited from i. The
// slice must not be modified.
func (p *PointSet) Followers(i int) []int { return p.followers[i] }

// ClusterIndex returns the cluster id of point i, or -1.
func (p *PointSet) ClusterIndex(i int) int { return p.clusterIndex[i] }

// IsSeed reports whether point i founded a cluster.
func (p *PointSet) IsSeed(i int) bool { return p.isSeed[i] }

// validatePoints checks the shape of SetPoints input for dims dimensions.
func validatePoints(dims int, coordinates [][]float64, weights []float64) error {
	if len(coordinates) != dims {
		return fmt.Errorf("%w: got %d coordinate arrays for %d dimensions", ErrDimensionMismatch, len(coordinates), dims)
	}
	n := len(weights)
	for dim, c := range coordinates {
		if len(c) != n {
			return fmt.Errorf("%w: dimension %d has %d coordinates, want %d", ErrInvalidPoints, dim, len(c), n)
		}
		for i, x := range c {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: coordinate %d of point %d is %v", ErrInvalidPoints, dim, i, x)
			}
		}
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight of point %d is %v", ErrInvalidPoints, i, w)
		}
	}
	return nil
}
