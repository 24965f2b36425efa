package clue

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// Grid partitions the observed extent of the points into a regular lattice
// of tiles so that a neighbourhood query only scans the tiles overlapping the
// query window instead of every point.
//
// Tiles are numbered with dimension 0 as the fastest-varying index:
// id = bin_0 + bin_1*nPerDim + bin_2*nPerDim^2 + ...
type Grid struct {
	dims     int
	nPerDim  int
	nTiles   int
	tileSize []float64
	minMax   [][2]float64
	tiles    []*AppendBuffer[int]
}

// CalculateNTiles returns the number of tiles needed for nPoints points at an
// average occupancy of pointsPerTile. It returns a *TileCountError when the
// result would be zero.
func CalculateNTiles(nPoints, pointsPerTile int) (int, error) {
	if pointsPerTile < 1 {
		return 0, fmt.Errorf("%w: PointsPerTile must be >= 1, got %d", ErrInvalidConfig, pointsPerTile)
	}
	nTiles := nPoints / pointsPerTile
	if nTiles == 0 {
		return 0, &TileCountError{Points: nPoints, PointsPerTile: pointsPerTile}
	}
	return nTiles, nil
}

// newGrid lays out floor(nTiles^(1/dims)) bins per dimension. The resulting
// tile count nPerDim^dims may be lower than the requested nTiles.
func newGrid(dims, nTiles int) *Grid {
	nPerDim := tilesPerDim(nTiles, dims)
	return &Grid{
		dims:     dims,
		nPerDim:  nPerDim,
		nTiles:   powCapped(nPerDim, dims, nTiles),
		tileSize: make([]float64, dims),
		minMax:   make([][2]float64, dims),
	}
}

// tilesPerDim returns the largest k >= 1 with k^dims <= nTiles. math.Pow is
// only a first guess; the integer checks correct rounding in either direction.
func tilesPerDim(nTiles, dims int) int {
	k := max(int(math.Pow(float64(nTiles), 1/float64(dims))), 1)
	for k > 1 && powCapped(k, dims, nTiles) > nTiles {
		k--
	}
	for powCapped(k+1, dims, nTiles) <= nTiles {
		k++
	}
	return k
}

// powCapped returns base^exp, or limit+1 as soon as the product exceeds limit.
func powCapped(base, exp, limit int) int {
	r := 1
	for range exp {
		if r > limit/base {
			return limit + 1
		}
		r *= base
	}
	return r
}

// calculateTileSize records the observed extent of every dimension and
// derives the tile span from it.
func (g *Grid) calculateTileSize(p *PointSet) {
	for dim := range g.dims {
		coords := p.Coordinates(dim)
		lo, hi := floats.Min(coords), floats.Max(coords)
		g.minMax[dim] = [2]float64{lo, hi}
		g.tileSize[dim] = (hi - lo) / float64(g.nPerDim)
	}
}

// resizeTiles allocates one empty buffer per tile. capacity[t] is the
// expected occupancy of tile t.
func (g *Grid) resizeTiles(capacity []int) {
	g.tiles = make([]*AppendBuffer[int], g.nTiles)
	for t := range g.tiles {
		g.tiles[t] = NewAppendBuffer[int](capacity[t])
	}
}

// bin returns the bin of coordinate x along dim, clamped to the grid.
func (g *Grid) bin(x float64, dim int) int {
	ts := g.tileSize[dim]
	if ts == 0 {
		return 0
	}
	f := (x - g.minMax[dim][0]) / ts
	if !(f > 0) {
		return 0
	}
	if f >= float64(g.nPerDim) {
		return g.nPerDim - 1
	}
	return int(f)
}

// GlobalBin returns the id of the tile containing coords.
func (g *Grid) GlobalBin(coords []float64) int {
	id, stride := 0, 1
	for dim, x := range coords {
		id += g.bin(x, dim) * stride
		stride *= g.nPerDim
	}
	return id
}

func (g *Grid) pointBin(p *PointSet, i int) int {
	id, stride := 0, 1
	for dim := range g.dims {
		id += g.bin(p.coords[dim][i], dim) * stride
		stride *= g.nPerDim
	}
	return id
}

// Fill appends index to the tile containing coords and returns the slot it
// landed in, or -1 if the tile was full. Safe for concurrent use.
func (g *Grid) Fill(coords []float64, index int) int {
	return g.tiles[g.GlobalBin(coords)].PushBack(index)
}

// BinsFromRange returns, in increasing order, the bins along dim whose span
// intersects [lo, hi].
func (g *Grid) BinsFromRange(lo, hi float64, dim int) []int {
	return g.appendBinsFromRange(nil, lo, hi, dim)
}

func (g *Grid) appendBinsFromRange(out []int, lo, hi float64, dim int) []int {
	for b := g.bin(lo, dim); b <= g.bin(hi, dim); b++ {
		out = append(out, b)
	}
	return out
}

// searchBins returns the bins along dim covering [x-r, x+r]. When the window
// crosses a bound of a bounded domain, the bins on the opposite side of the
// domain that the window wraps onto are added as well. The result has no
// duplicates.
func (g *Grid) searchBins(out []int, x, r float64, dim int, d Domain) []int {
	out = g.appendBinsFromRange(out[:0], x-r, x+r, dim)
	wrapped := false
	if x+r > d.Max {
		out = g.appendBinsFromRange(out, d.Min, d.Min+r, dim)
		wrapped = true
	} else if x-r < d.Min {
		out = g.appendBinsFromRange(out, d.Max-r, d.Max, dim)
		wrapped = true
	}
	if wrapped {
		slices.Sort(out)
		out = slices.Compact(out)
	}
	return out
}

// SearchBox appends to out[:0] the ids of every tile in the Cartesian product
// of the per-dimension bin lists and returns the extended slice.
func (g *Grid) SearchBox(perDim [][]int, out []int) []int {
	out = out[:0]
	for _, bins := range perDim {
		if len(bins) == 0 {
			return out
		}
	}
	out = append(out, 0)
	stride := 1
	for _, bins := range perDim {
		n := len(out)
		for _, b := range bins[1:] {
			for t := range n {
				out = append(out, out[t]+b*stride)
			}
		}
		for t := range n {
			out[t] += bins[0] * stride
		}
		stride *= g.nPerDim
	}
	return out
}

// build fills the grid with every point of p. With tileCapacity == 0 each
// tile is sized exactly from a counting pass; otherwise every tile gets
// tileCapacity slots and surplus indices are dropped. It returns the number
// of dropped indices.
func (g *Grid) build(p *PointSet, tileCapacity, workers int) int {
	g.calculateTileSize(p)
	n := p.N()

	capacity := make([]int, g.nTiles)
	if tileCapacity > 0 {
		for t := range capacity {
			capacity[t] = tileCapacity
		}
	} else {
		counts := make([]atomic.Int64, g.nTiles)
		parallelFor(n, workers, func(start, end int) {
			for i := start; i < end; i++ {
				counts[g.pointBin(p, i)].Add(1)
			}
		})
		for t := range capacity {
			capacity[t] = int(counts[t].Load())
		}
	}
	g.resizeTiles(capacity)

	parallelFor(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			g.tiles[g.pointBin(p, i)].PushBack(i)
		}
	})

	// Slot order depends on goroutine scheduling; sorting makes the scan order
	// and therefore the floating-point sums reproducible.
	parallelFor(g.nTiles, workers, func(start, end int) {
		for t := start; t < end; t++ {
			slices.Sort(g.tiles[t].Values())
		}
	})

	return g.Dropped()
}

// Tile returns the buffer of tile id.
func (g *Grid) Tile(id int) *AppendBuffer[int] { return g.tiles[id] }

// NTiles returns the number of tiles actually allocated.
func (g *Grid) NTiles() int { return g.nTiles }

// NPerDim returns the number of bins along each dimension.
func (g *Grid) NPerDim() int { return g.nPerDim }

// TileSize returns the span of one bin along dim.
func (g *Grid) TileSize(dim int) float64 { return g.tileSize[dim] }

// MinMax returns the observed coordinate extent along dim.
func (g *Grid) MinMax(dim int) (lo, hi float64) { return g.minMax[dim][0], g.minMax[dim][1] }

// Dropped returns how many indices were rejected by full tiles.
func (g *Grid) Dropped() int {
	var total int
	for _, t := range g.tiles {
		total += t.Overflowed()
	}
	return total
}

// searchScratch holds per-worker buffers reused across neighbourhood queries.
type searchScratch struct {
	perDim [][]int
	box    []int
}

func newSearchScratch(dims int) *searchScratch {
	return &searchScratch{perDim: make([][]int, dims)}
}

// searchBox returns the tiles to scan for neighbours of point i within r,
// including the wrapped tiles of bounded domains. The result aliases s.
func (g *Grid) searchBox(p *PointSet, i int, r float64, s *searchScratch) []int {
	for dim := range g.dims {
		s.perDim[dim] = g.searchBins(s.perDim[dim], p.coords[dim][i], r, dim, p.domains[dim])
	}
	s.box = g.SearchBox(s.perDim, s.box)
	return s.box
}
