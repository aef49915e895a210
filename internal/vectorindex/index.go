package vectorindex

import (
	"math"
	"sort"
)

// Hit is a single nearest-neighbor match: the position of the stored vector
// and its inner-product score against the query.
type Hit struct {
	Label int
	Score float32
}

// flatIndex is a brute-force inner-product index over unit-normalized
// vectors. The corpus is small (tens to low hundreds of entries), so a linear
// scan per query is cheaper than maintaining any approximate structure.
type flatIndex struct {
	dim     int
	vectors [][]float32 // normalized copies, in insertion order
}

func newFlatIndex(dim int) *flatIndex {
	return &flatIndex{dim: dim}
}

// add appends a normalized copy of vec. The caller owns vec; the index never
// aliases it.
func (x *flatIndex) add(vec []float32) {
	x.vectors = append(x.vectors, Normalize(vec))
}

// search returns the k stored vectors with the highest inner product against
// query, in descending score order. Ties keep insertion order.
func (x *flatIndex) search(query []float32, k int) []Hit {
	if len(x.vectors) == 0 || k <= 0 {
		return nil
	}
	if k > len(x.vectors) {
		k = len(x.vectors)
	}

	hits := make([]Hit, len(x.vectors))
	for i, v := range x.vectors {
		hits[i] = Hit{Label: i, Score: dot(query, v)}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits[:k]
}

func (x *flatIndex) count() int { return len(x.vectors) }

// Normalize returns a unit-L2-norm copy of vec. A zero vector is returned
// unchanged (as a copy) since it has no direction.
func Normalize(vec []float32) []float32 {
	out := make([]float32, len(vec))
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
