package clue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNClusters(t *testing.T) {
	assert.Equal(t, 0, NClusters(nil))
	assert.Equal(t, 0, NClusters([]int{-1, -1}))
	assert.Equal(t, 3, NClusters([]int{0, 2, -1, 1}))
}

func TestClusterPoints(t *testing.T) {
	got := ClusterPoints([]int{1, 0, -1, 1, 0, 2})
	assert.Equal(t, [][]int{{1, 4}, {0, 3}, {5}}, got)
}

func TestClusterSizes(t *testing.T) {
	assert.Equal(t, []int{2, 3, 1}, ClusterSizes([]int{1, 0, -1, 1, 0, 2, 1}))
	assert.Empty(t, ClusterSizes([]int{-1}))
}

func TestValidateResults(t *testing.T) {
	truth := []int{0, 0, 1, 1, 1, -1}

	assert.True(t, ValidateResults(truth, truth))
	assert.True(t, ValidateResults([]int{1, 1, 0, 0, 0, -1}, truth), "ids may be permuted")
	assert.False(t, ValidateResults([]int{0, 0, 1, 1, -1, -1}, truth), "sizes differ")
	assert.False(t, ValidateResults([]int{0, 0, 1, 1, 2, -1}, truth), "cluster count differs")
}
