package clue

import (
	"slices"
)

// NClusters returns the number of clusters in a labeling: the largest
// cluster id plus one. Outliers (-1) are ignored.
func NClusters(clusterIndex []int) int {
	if len(clusterIndex) == 0 {
		return 0
	}
	return max(slices.Max(clusterIndex), -1) + 1
}

// ClusterPoints groups point indices by cluster id. Entry c lists, in
// increasing order, the points assigned to cluster c.
func ClusterPoints(clusterIndex []int) [][]int {
	clusters := make([][]int, NClusters(clusterIndex))
	for i, c := range clusterIndex {
		if c >= 0 {
			clusters[c] = append(clusters[c], i)
		}
	}
	return clusters
}

// ClusterSizes returns the number of points in each cluster.
func ClusterSizes(clusterIndex []int) []int {
	sizes := make([]int, NClusters(clusterIndex))
	for _, c := range clusterIndex {
		if c >= 0 {
			sizes[c]++
		}
	}
	return sizes
}

// ValidateResults reports whether two labelings describe the same clustering
// up to a renaming of cluster ids: same number of clusters and the same
// multiset of cluster sizes.
func ValidateResults(clusterIndex, truth []int) bool {
	if NClusters(clusterIndex) != NClusters(truth) {
		return false
	}
	a, b := ClusterSizes(clusterIndex), ClusterSizes(truth)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
