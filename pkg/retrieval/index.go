package retrieval

import (
	"fmt"
	"sort"
)

// vectorIndex is a brute-force nearest-neighbor index over fixed-dimension
// vectors. Immutable once built; safe for concurrent reads.
type vectorIndex struct {
	dim     int
	vectors [][]float32
}

func newVectorIndex(vectors [][]float32) (*vectorIndex, error) {
	idx := &vectorIndex{}
	for i, vec := range vectors {
		if idx.dim == 0 {
			idx.dim = len(vec)
		}
		if len(vec) != idx.dim {
			return nil, fmt.Errorf("vector %d has dimension %d, index expects %d", i, len(vec), idx.dim)
		}
	}
	idx.vectors = vectors
	return idx, nil
}

type indexHit struct {
	position int
	distance float64
}

// search returns the k nearest vectors by squared L2 distance, closest
// first. Squared distance preserves the ranking of true L2 distance.
func (idx *vectorIndex) search(query []float32, k int) ([]indexHit, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query has dimension %d, index expects %d", len(query), idx.dim)
	}

	hits := make([]indexHit, len(idx.vectors))
	for i, vec := range idx.vectors {
		hits[i] = indexHit{position: i, distance: l2Squared(query, vec)}
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func l2Squared(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
