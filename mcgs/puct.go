package mcgs

import "github.com/chewxy/math32"

// PriorSource supplies an optional P(s,a) multiplier for PUCT selection
// (spec §4.4.5's extension point). It is deliberately not parameterised over
// a board type: an edge is identified by its zero-based position i in the
// node's first-encountered edge order and the total edge count n, which is
// enough to express both a uniform prior and Dirichlet exploration noise
// without the Config that carries it needing to know B.
//
// A nil PriorSource is the base PUCT formula from spec §4.4.4: every edge
// gets an implicit constant prior of 1.0.
type PriorSource interface {
	Prior(i, n int) float32
}

// puctScore computes child.Q + c_puct * prior * sqrt(parentN) / (1 +
// edgeVisits), the selection score from spec §4.4.4.
func puctScore(parentN uint64, childQ float32, edgeVisits uint32, cPUCT, prior float32) float32 {
	exploration := cPUCT * prior * math32.Sqrt(float32(parentN)) / (1 + float32(edgeVisits))
	return childQ + exploration
}
