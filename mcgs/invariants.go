package mcgs

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Diagnose walks every node interned by e and checks the universally
// quantified invariants from spec §8: every visited node's N equals one
// plus the sum of its edge visits, and every node's Q stays within
// [-1, +1]. Every violation found is aggregated rather than reported as
// just the first one, since this is a debugging/test tool, not a hot path
// gate on Run()/Search().
func Diagnose[B comparable](e *Engine[B]) error {
	e.mu.Lock()
	nodes := make([]*Node[B], 0, len(e.nodes))
	for _, n := range e.nodes {
		nodes = append(nodes, n)
	}
	e.mu.Unlock()

	var result *multierror.Error
	for _, n := range nodes {
		n.mu.Lock()
		nVal, qVal := n.n, n.q
		var edgeSum uint64
		for _, v := range n.edgeVisits {
			edgeSum += uint64(v)
		}
		n.mu.Unlock()

		if nVal > 0 && nVal != 1+edgeSum {
			result = multierror.Append(result, errors.Errorf(
				"mcgs: node %v: N=%d != 1+sum(edge_visits)=%d", n.state.Board, nVal, 1+edgeSum))
		}
		if qVal < -1 || qVal > 1 {
			result = multierror.Append(result, errors.Errorf(
				"mcgs: node %v: Q=%f out of [-1, +1]", n.state.Board, qVal))
		}
	}
	return result.ErrorOrNil()
}
