package search

import (
	"math/rand"
	"sort"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/neighborhood"
)

// SampleSimplex4 draws a uniform point from the 4-dimensional probability
// simplex via the stick-breaking construction: three uniform cut points on
// [0,1] divide the unit interval into four segments whose lengths sum to
// one by construction.
func SampleSimplex4(rng *rand.Rand) [4]float64 {
	cuts := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
	sort.Float64s(cuts)
	return [4]float64{
		cuts[0],
		cuts[1] - cuts[0],
		cuts[2] - cuts[1],
		1 - cuts[2],
	}
}

// scalarize computes Σ λᵢ fᵢ with maximized objectives (F1, F2) negated so
// that lower is always better, matching spec §4.5's weighted descent.
func scalarize(lambda [4]float64, f movns.ObjectiveVector) float64 {
	var total float64
	for i := 0; i < 4; i++ {
		v := f.Get(i)
		if movns.Maximized(i) {
			v = -v
		}
		total += lambda[i] * v
	}
	return total
}

// WeightedDescent performs first-improvement minimization of the
// scalarized objective over the fixed neighborhood order: the first
// improving move found (in enumeration order) is taken immediately and the
// walk restarts at the first neighborhood, terminating when a full pass
// finds no improving move.
func WeightedDescent(c *movns.Catalog, order []neighborhood.Neighborhood, lambda [4]float64, s *movns.Solution) *movns.Solution {
	current := s
	currentScore := scalarize(lambda, current.F)

	idx := 0
	for idx < len(order) {
		all := movns.VisitedFromSolution(current)
		improved := false
		for _, mv := range order[idx].Enumerate(c, current, all) {
			candidate := mv.Apply(c, current)
			repaired, err := movns.Repair(c, candidate)
			if err != nil || repaired.IsEmpty() {
				continue
			}
			score := scalarize(lambda, repaired.F)
			if score < currentScore {
				current = repaired
				currentScore = score
				improved = true
				break
			}
		}
		if improved {
			idx = 0
			continue
		}
		idx++
	}
	return current
}
