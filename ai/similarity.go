package ai

import (
	"math"
	"sort"
)

// TopK is how many neighbours every ranking step keeps.
const TopK = 5

// Similarity is the cosine score of one matrix row against a query row.
type Similarity struct {
	Index int
	Score float64
}

// Cosine returns dot(a,b) / (|a|·|b|), or 0 when either vector has no weight.
// Missing trailing entries of the shorter vector count as zeros.
func Cosine(a, b []float64) float64 {
	n := min(len(a), len(b))
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	na, nb := squaredNorm(a), squaredNorm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	// sqrt of the product keeps self-similarity of count vectors at exactly 1.
	return dot / math.Sqrt(na*nb)
}

func squaredNorm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

// Rank scores every row of m, q included, against row q and sorts by score descending.
// The sort is stable: rows with equal scores keep catalog order.
func Rank(m Matrix, q int) []Similarity {
	if q < 0 || q >= len(m) {
		return nil
	}
	ranked := make([]Similarity, len(m))
	for i, row := range m {
		ranked[i] = Similarity{Index: i, Score: Cosine(m[q], row)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopN keeps the first n entries, or all of them when fewer.
func TopN(ranked []Similarity, n int) []Similarity {
	if len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// Without drops the entry of one row, wherever it ranked.
func Without(ranked []Similarity, index int) []Similarity {
	out := make([]Similarity, 0, len(ranked))
	for _, s := range ranked {
		if s.Index != index {
			out = append(out, s)
		}
	}
	return out
}
