package clue

import "math"

// Domain bounds the valid coordinate range of one dimension. A bounded
// domain is treated as periodic: coordinates near Min are close to
// coordinates near Max. The empty domain {-Inf, +Inf} disables wraparound.
type Domain struct {
	Min float64
	Max float64
}

// EmptyDomain returns the unbounded domain.
func EmptyDomain() Domain {
	return Domain{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Empty reports whether d is the unbounded domain.
func (d Domain) Empty() bool {
	return math.IsInf(d.Min, -1) && math.IsInf(d.Max, 1)
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// DeltaFunc computes the signed difference xi - xj along one dimension whose
// domain is [min, max]. Implementations are expected to account for
// wraparound when the domain is bounded.
type DeltaFunc func(xi, xj, min, max float64) float64

// DeltaPhi is the default DeltaFunc. For an unbounded domain it is plain
// subtraction; for a bounded one the difference is wrapped into
// [-(max-min)/2, (max-min)/2], like an angular coordinate.
func DeltaPhi(xi, xj, lo, hi float64) float64 {
	d := xi - xj
	if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
		return d
	}
	span := hi - lo
	if d > span/2 || d < -span/2 {
		d = math.Remainder(d, span)
	}
	return d
}

// Distance returns the domain-aware Euclidean distance between points i and j:
// the square root of the summed squared per-dimension differences.
func (p *PointSet) Distance(i, j int) float64 {
	var sum float64
	for dim, coords := range p.coords {
		d := p.delta(coords[i], coords[j], p.domains[dim].Min, p.domains[dim].Max)
		sum += d * d
	}
	return math.Sqrt(sum)
}
