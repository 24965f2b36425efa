package clue

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"time"
)

// OverflowPolicy decides what happens when a grid tile fills up.
type OverflowPolicy string

const (
	// OverflowFail aborts MakeClusters with an *OverflowError.
	OverflowFail OverflowPolicy = "fail"
	// OverflowDrop keeps going without the dropped points in the grid and
	// reports their number in Result.Dropped. Dropped points are still
	// clustered but are invisible as neighbours, themselves included.
	OverflowDrop OverflowPolicy = "drop"
)

// Config controls CLUE clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Dc is the cutoff distance: neighbours closer than Dc contribute to a
	// point's density, and a point further than Dc from any denser point may
	// become a seed. Must be > 0. Default: 1.0.
	Dc float64

	// Rhoc is the density threshold. Points at or above it may become seeds;
	// isolated points below it are outliers. Must be >= 0. Default: 1.0.
	Rhoc float64

	// OutlierDeltaFactor scales Dc into the search radius for the nearest
	// denser point, which is also the distance beyond which a low-density
	// point is an outlier. Must be > 0. Default: 2.0.
	OutlierDeltaFactor float64

	// PointsPerTile is the average number of points per grid tile; the tile
	// count is the number of points divided by it. Must be >= 1. Default: 10.
	PointsPerTile int

	// Domains bounds each dimension. A bounded domain is periodic. nil means
	// every dimension is unbounded; otherwise it needs one entry per
	// dimension, each either EmptyDomain() or finite with Min < Max.
	Domains []Domain

	// Delta computes per-dimension coordinate differences. Default: DeltaPhi.
	Delta DeltaFunc

	// Workers is the number of goroutines used by the parallel phases.
	// 0 means runtime.NumCPU(). Must be >= 0.
	Workers int

	// TileCapacity is the number of slots reserved in every tile. 0 sizes
	// each tile exactly from a counting pass, which can never overflow.
	// Must be >= 0. Default: 0.
	TileCapacity int

	// OverflowPolicy applies when TileCapacity is too small for some tile.
	// Default: OverflowFail.
	OverflowPolicy OverflowPolicy

	// Logger receives phase timings at debug level and overflow warnings.
	// nil discards everything.
	Logger *slog.Logger
}

// Result contains the output of one clustering pass.
type Result struct {
	// ClusterIndex assigns each point to a cluster (0-indexed) or -1 for
	// outliers and points that no seed reaches.
	ClusterIndex []int

	// IsSeed marks the points that founded a cluster.
	IsSeed []bool

	// NClusters is the number of clusters, which equals the number of seeds.
	NClusters int

	// NTiles is the number of grid tiles used.
	NTiles int

	// Dropped is the number of points left out of the grid under
	// OverflowDrop. Always 0 otherwise.
	Dropped int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Dc:                 1.0,
		Rhoc:               1.0,
		OutlierDeltaFactor: 2.0,
		PointsPerTile:      10,
		Delta:              DeltaPhi,
		OverflowPolicy:     OverflowFail,
	}
}

// validateConfig checks that cfg fields are valid for dims dimensions and
// returns a descriptive error if not.
func validateConfig(cfg *Config, dims int) error {
	if dims < 1 {
		return fmt.Errorf("%w: dimensions must be >= 1, got %d", ErrInvalidConfig, dims)
	}
	if !(cfg.Dc > 0) || math.IsInf(cfg.Dc, 0) {
		return fmt.Errorf("%w: Dc must be finite and > 0, got %v", ErrInvalidConfig, cfg.Dc)
	}
	if !(cfg.Rhoc >= 0) || math.IsInf(cfg.Rhoc, 0) {
		return fmt.Errorf("%w: Rhoc must be finite and >= 0, got %v", ErrInvalidConfig, cfg.Rhoc)
	}
	if !(cfg.OutlierDeltaFactor > 0) || math.IsInf(cfg.OutlierDeltaFactor, 0) {
		return fmt.Errorf("%w: OutlierDeltaFactor must be finite and > 0, got %v", ErrInvalidConfig, cfg.OutlierDeltaFactor)
	}
	if cfg.PointsPerTile < 1 {
		return fmt.Errorf("%w: PointsPerTile must be >= 1, got %d", ErrInvalidConfig, cfg.PointsPerTile)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: Workers must be >= 0, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if cfg.TileCapacity < 0 {
		return fmt.Errorf("%w: TileCapacity must be >= 0, got %d", ErrInvalidConfig, cfg.TileCapacity)
	}
	switch cfg.OverflowPolicy {
	case OverflowFail, OverflowDrop:
	default:
		return fmt.Errorf("%w: OverflowPolicy must be %q or %q, got %q", ErrInvalidConfig, OverflowFail, OverflowDrop, cfg.OverflowPolicy)
	}
	if len(cfg.Domains) != dims {
		return fmt.Errorf("%w: %w: %d domains for %d dimensions", ErrInvalidConfig, ErrDimensionMismatch, len(cfg.Domains), dims)
	}
	for dim, d := range cfg.Domains {
		if d.Empty() {
			continue
		}
		if math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) || math.IsNaN(d.Min) || math.IsNaN(d.Max) || d.Min >= d.Max {
			return fmt.Errorf("%w: domain %d must be empty or finite with Min < Max, got [%v, %v]", ErrInvalidConfig, dim, d.Min, d.Max)
		}
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config, dims int) {
	if cfg.Domains == nil && dims > 0 {
		cfg.Domains = make([]Domain, dims)
		for dim := range cfg.Domains {
			cfg.Domains[dim] = EmptyDomain()
		}
	} else {
		cfg.Domains = slices.Clone(cfg.Domains)
	}
	if cfg.Delta == nil {
		cfg.Delta = DeltaPhi
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.OverflowPolicy == "" {
		cfg.OverflowPolicy = OverflowFail
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
}

// emptyResult returns a Result with zero-valued slices for n points.
// When n is 0, all slices are non-nil but empty.
func emptyResult(n int) *Result {
	return &Result{
		ClusterIndex: make([]int, n),
		IsSeed:       make([]bool, n),
	}
}

// Clusterer runs CLUE over a point set of fixed dimensionality. A Clusterer
// is not safe for concurrent use; separate Clusterers are independent.
type Clusterer struct {
	dims   int
	cfg    Config
	points *PointSet
	log    *slog.Logger
}

// New returns a Clusterer for dims-dimensional points. It returns an error
// wrapping ErrInvalidConfig if the config is invalid.
func New(dims int, cfg Config) (*Clusterer, error) {
	applyDefaults(&cfg, dims)
	if err := validateConfig(&cfg, dims); err != nil {
		return nil, err
	}
	return &Clusterer{
		dims:   dims,
		cfg:    cfg,
		points: newPointSet(cfg.Domains, cfg.Delta),
		log:    cfg.Logger.With("component", "clue", "dims", dims),
	}, nil
}

// Dims returns the dimensionality fixed at construction.
func (c *Clusterer) Dims() int { return c.dims }

// Config returns a copy of the effective configuration.
func (c *Clusterer) Config() Config {
	cfg := c.cfg
	cfg.Domains = slices.Clone(c.cfg.Domains)
	return cfg
}

// Points returns the point set with the outputs of the last pass.
func (c *Clusterer) Points() *PointSet { return c.points }

// SetPoints replaces the points to cluster. coordinates[dim][i] is coordinate
// dim of point i and weights[i] its weight. The inputs are copied. It reports
// empty == true, and stores nothing, when there are no points.
func (c *Clusterer) SetPoints(coordinates [][]float64, weights []float64) (empty bool, err error) {
	if err := validatePoints(c.dims, coordinates, weights); err != nil {
		return false, err
	}
	if len(weights) == 0 {
		c.points.clear()
		return true, nil
	}
	c.points.set(coordinates, weights)
	return false, nil
}

// ClearPoints drops the points and every output.
func (c *Clusterer) ClearPoints() {
	c.points.clear()
}

// MakeClusters runs the full pipeline with kernel k: grid construction,
// local density, nearest higher and cluster assignment. Each phase finishes
// before the next starts. Either every phase completes or an error is
// returned and no Result is produced.
func (c *Clusterer) MakeClusters(k Kernel) (*Result, error) {
	if k == nil {
		return nil, ErrNilKernel
	}
	n := c.points.N()
	if n == 0 {
		return emptyResult(0), nil
	}

	nTiles, err := CalculateNTiles(n, c.cfg.PointsPerTile)
	if err != nil {
		return nil, err
	}
	c.points.resetOutputs()

	start := time.Now()
	g := newGrid(c.dims, nTiles)
	dropped := g.build(c.points, c.cfg.TileCapacity, c.cfg.Workers)
	c.log.Debug("grid built",
		"points", n,
		"tiles", g.NTiles(),
		"per_dim", g.NPerDim(),
		"dropped", dropped,
		"elapsed", time.Since(start),
	)
	if dropped > 0 {
		if c.cfg.OverflowPolicy != OverflowDrop {
			return nil, &OverflowError{Dropped: dropped}
		}
		c.log.Warn("tiles overflowed; points dropped from grid",
			"dropped", dropped,
			"tile_capacity", c.cfg.TileCapacity,
		)
	}

	phase := time.Now()
	c.calculateLocalDensity(g, k)
	c.log.Debug("local density computed", "elapsed", time.Since(phase))

	phase = time.Now()
	c.calculateDistanceToHigher(g)
	c.log.Debug("nearest higher computed", "elapsed", time.Since(phase))

	phase = time.Now()
	nClusters := c.findAndAssignClusters()
	c.log.Debug("clusters assigned",
		"clusters", nClusters,
		"elapsed", time.Since(phase),
		"total", time.Since(start),
	)

	return &Result{
		ClusterIndex: slices.Clone(c.points.clusterIndex),
		IsSeed:       slices.Clone(c.points.isSeed),
		NClusters:    nClusters,
		NTiles:       g.NTiles(),
		Dropped:      dropped,
	}, nil
}
