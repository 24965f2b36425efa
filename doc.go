// Package clue implements CLUE (CLUstering of Energy), a density-based
// clustering algorithm built for very large point sets such as the hits
// recorded by a particle detector.
//
// CLUE runs in four phases. Points are binned into a regular grid of tiles
// so neighbour queries only scan nearby tiles. Each point then gets a local
// density rho, the kernel-weighted sum of the weights of its neighbours
// within the cutoff Dc. Next every point finds its nearest higher: the
// closest point within OutlierDeltaFactor*Dc that is denser than it. Finally
// points far from any denser point become seeds (if dense enough) or outliers
// (if not), every other point follows its nearest higher, and cluster ids
// flow from the seeds down the follower trees.
//
// The first three phases run in parallel over points; the grid is filled
// without locks through [AppendBuffer].
//
// Basic usage:
//
//	cfg := clue.DefaultConfig()
//	cfg.Dc, cfg.Rhoc = 20, 25
//	c, err := clue.New(2, cfg)
//	empty, err := c.SetPoints([][]float64{xs, ys}, weights)
//	result, err := c.MakeClusters(clue.FlatKernel{Value: 0.5})
//	// result.ClusterIndex[i] is the cluster of point i (-1 = outlier)
//	// result.IsSeed[i] marks the point that founded its cluster
//
// # Periodic coordinates
//
// A dimension with a bounded [Domain] is periodic: distances are measured
// around the wrap and neighbour searches near one bound also scan the tiles
// at the other bound. This suits angular coordinates:
//
//	cfg.Domains = []clue.Domain{clue.EmptyDomain(), {Min: -math.Pi, Max: math.Pi}}
//
// # Errors
//
// A PointsPerTile larger than the number of points yields a *TileCountError
// and, with a fixed TileCapacity, a full tile yields an *OverflowError unless
// OverflowPolicy is OverflowDrop. Both are returned before any density is
// computed.
package clue
