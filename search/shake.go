// Package search implements the two local-search procedures of spec §4.5:
// Shake, used to escape the current basin, and the two Pareto Local Search
// variants (enumerate-and-accept VND, and weighted first-improvement
// descent) used to refine a shaken candidate before archive insertion.
package search

import (
	"math/rand"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/neighborhood"
)

// Shake applies k independent random moves drawn from the single
// neighborhood at position k-1 of order (1-based, matching spec §4.6's
// N_k notation) to the same solution in sequence, then repairs exactly
// once at the end. Intermediate states between moves are never repaired
// or re-evaluated, so all k moves compose against the same basin the
// spec's single-pass Shake describes, rather than being diluted by a
// repair after every individual move. If the final repair cannot recover
// a feasible, non-empty solution, the original s is returned unchanged —
// the whole shaken candidate is discarded rather than any one move within
// it.
func Shake(rng *rand.Rand, c *movns.Catalog, order []neighborhood.Neighborhood, k int, s *movns.Solution) *movns.Solution {
	idx := k - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(order) {
		idx = len(order) - 1
	}
	n := order[idx]

	current := s
	for i := 0; i < k; i++ {
		all := movns.VisitedFromSolution(current)
		mv, ok := n.SampleOne(rng, c, current, all)
		if !ok {
			continue
		}
		current = mv.Apply(c, current)
	}

	repaired, err := movns.Repair(c, current)
	if err != nil || repaired.IsEmpty() {
		return s
	}
	return repaired
}
