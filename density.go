package clue

// calculateLocalDensity sets rho[i] to the kernel-weighted sum of the weights
// of every point within Dc of i, i itself included. Points are processed in
// parallel; each worker only writes rho for its own range.
func (c *Clusterer) calculateLocalDensity(g *Grid, k Kernel) {
	p := c.points
	dc := c.cfg.Dc

	parallelFor(p.N(), c.cfg.Workers, func(start, end int) {
		s := newSearchScratch(c.dims)
		for i := start; i < end; i++ {
			var rho float64
			for _, t := range g.searchBox(p, i, dc, s) {
				for _, j := range g.tiles[t].Values() {
					dist := p.Distance(i, j)
					if dist <= dc {
						rho += k.Weight(dist, i, j) * p.weight[j]
					}
				}
			}
			p.rho[i] = rho
		}
	})
}
