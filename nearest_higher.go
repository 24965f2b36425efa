package clue

import "math"

// calculateDistanceToHigher finds, for every point i, the closest point j
// within OutlierDeltaFactor*Dc that is denser than i. Equal densities are
// ordered by index (the higher index wins), which makes "denser" a strict
// total order and the nearest-higher links acyclic.
//
// delta[i] is the distance to that point and nearestHigher[i] its index; a
// point without one keeps +Inf and -1. rho must be complete before this runs.
func (c *Clusterer) calculateDistanceToHigher(g *Grid) {
	p := c.points
	dm := c.cfg.OutlierDeltaFactor * c.cfg.Dc

	parallelFor(p.N(), c.cfg.Workers, func(start, end int) {
		s := newSearchScratch(c.dims)
		for i := start; i < end; i++ {
			deltaI := math.Inf(1)
			nearestHigherI := -1
			rhoI := p.rho[i]

			for _, t := range g.searchBox(p, i, dm, s) {
				for _, j := range g.tiles[t].Values() {
					rhoJ := p.rho[j]
					foundHigher := rhoJ > rhoI || (rhoJ == rhoI && j > i)
					if !foundHigher {
						continue
					}
					if dist := p.Distance(i, j); dist <= dm && dist < deltaI {
						deltaI = dist
						nearestHigherI = j
					}
				}
			}

			p.deltaHigher[i] = deltaI
			p.nearestHigher[i] = nearestHigherI
		}
	})
}
