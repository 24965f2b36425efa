package clue

// findAndAssignClusters classifies every point and propagates cluster ids.
//
// A point is a seed when delta > Dc and rho >= Rhoc; seeds get consecutive
// ids in index order. A point is an outlier when delta > OutlierDeltaFactor*Dc
// and rho < Rhoc. Every other point follows its nearest higher. Ids then flow
// from each seed down its follower tree with a depth-first walk.
//
// Followers whose chain of nearest highers ends at an outlier instead of a
// seed are never reached and stay at -1, even though they are not outliers
// themselves. It returns the number of clusters.
func (c *Clusterer) findAndAssignClusters() int {
	p := c.points
	dc, rhoc := c.cfg.Dc, c.cfg.Rhoc
	dm := c.cfg.OutlierDeltaFactor * dc

	nClusters := 0
	var stack []int
	for i := range p.N() {
		p.clusterIndex[i] = -1
		deltaI, rhoI := p.deltaHigher[i], p.rho[i]

		isSeed := deltaI > dc && rhoI >= rhoc
		isOutlier := deltaI > dm && rhoI < rhoc
		switch {
		case isSeed:
			p.isSeed[i] = true
			p.clusterIndex[i] = nClusters
			nClusters++
			stack = append(stack, i)
		case !isOutlier:
			if nh := p.nearestHigher[i]; nh >= 0 {
				p.followers[nh] = append(p.followers[nh], i)
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, f := range p.followers[i] {
			p.clusterIndex[f] = p.clusterIndex[i]
			stack = append(stack, f)
		}
	}

	return nClusters
}
