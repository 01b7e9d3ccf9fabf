// Package archive implements the elitist, bounded-capacity Pareto archive
// of spec §4.3: dominance-based rejection on insert, hyper-volume-
// contribution truncation when over capacity, and round-robin iteration
// for the driver's outer loop.
package archive

import "github.com/dmoura/movns"

// Dominates reports whether a dominates b: a is at least as good as b on
// every objective and strictly better on at least one, per spec §3. Equal
// vectors are mutually non-dominated.
func Dominates(a, b movns.ObjectiveVector) bool {
	strictlyBetter := false
	for i := 0; i < 4; i++ {
		av, bv := a.Get(i), b.Get(i)
		if movns.Maximized(i) {
			if av < bv {
				return false
			}
			if av > bv {
				strictlyBetter = true
			}
		} else {
			if av > bv {
				return false
			}
			if av < bv {
				strictlyBetter = true
			}
		}
	}
	return strictlyBetter
}
