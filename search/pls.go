package search

import (
	"github.com/dmoura/movns"
	"github.com/dmoura/movns/archive"
	"github.com/dmoura/movns/neighborhood"
)

// ParetoLocalSearch is the VND variant of spec §4.5: walk the fixed
// neighborhood order, enumerating the moves of the current neighborhood
// against the current solution, evaluating and repairing each, and keeping
// those non-dominated w.r.t. a local archive (a candidate whose objective
// vector equals a local member's is not accepted). The first accepted move is
// taken immediately and the walk restarts at the first neighborhood, re-
// enumerating against the now-updated solution — the remaining moves of
// the stale enumeration are never applied, since an enumeration taken
// against the old solution (e.g. N2/N3's day-length-changing moves) is no
// longer valid once an earlier move from the same batch has changed that
// day. The search terminates once the last neighborhood yields no
// acceptance, returning the most recently accepted solution (or s itself
// if nothing was ever accepted).
func ParetoLocalSearch(c *movns.Catalog, order []neighborhood.Neighborhood, s *movns.Solution) *movns.Solution {
	local := archive.New(len(order) * 8)
	local.TryInsert(s)
	current := s

	idx := 0
	for idx < len(order) {
		all := movns.VisitedFromSolution(current)
		accepted := false
		for _, mv := range order[idx].Enumerate(c, current, all) {
			candidate := mv.Apply(c, current)
			repaired, err := movns.Repair(c, candidate)
			if err != nil || repaired.IsEmpty() {
				continue
			}
			if hasObjectives(local, repaired.F) {
				continue // an objective vector already held adds nothing
			}
			if local.TryInsert(repaired) {
				current = repaired
				accepted = true
				break
			}
		}
		if accepted {
			idx = 0
			continue
		}
		idx++
	}
	return current
}

// hasObjectives reports whether any member of arc has objective vector f.
func hasObjectives(arc *archive.Archive, f movns.ObjectiveVector) bool {
	for _, m := range arc.Members() {
		if m.F == f {
			return true
		}
	}
	return false
}
