package archive

import (
	"log/slog"

	"github.com/dmoura/movns"
)

// Archive is the elitist, bounded-capacity set of mutually non-dominated
// solutions of spec §3/§4.3. It is owned by exactly one driver and is not
// safe for concurrent use.
type Archive struct {
	cap     int
	members []*movns.Solution
	next    int // round-robin cursor
	log     *slog.Logger
}

// New creates an empty archive with the given capacity.
func New(capacity int) *Archive {
	return &Archive{cap: capacity, log: slog.Default()}
}

// SetLogger overrides the archive's logger, defaulting to slog.Default().
func (a *Archive) SetLogger(l *slog.Logger) { a.log = l }

// Len returns the current member count.
func (a *Archive) Len() int { return len(a.members) }

// Cap returns the configured capacity.
func (a *Archive) Cap() int { return a.cap }

// Members returns the archive's current members. The returned slice aliases
// the archive's internal storage and must not be mutated by the caller.
func (a *Archive) Members() []*movns.Solution { return a.members }

// Snapshot returns an independent copy of the current member pointers (not
// deep copies of the solutions themselves, which are immutable once
// archived).
func (a *Archive) Snapshot() []*movns.Solution {
	out := make([]*movns.Solution, len(a.members))
	copy(out, a.members)
	return out
}

// ParetoRank returns the archive's members, which by invariant are already
// the full non-dominated front.
func (a *Archive) ParetoRank() []*movns.Solution { return a.Members() }

// TryInsert attempts to add s to the archive per spec §4.3: rejected if any
// existing member dominates s; otherwise every member s dominates is
// removed, s is inserted, and hvTruncate runs if over capacity. Returns
// true iff the archive's member set strictly changed.
func (a *Archive) TryInsert(s *movns.Solution) bool {
	for _, m := range a.members {
		if Dominates(m.F, s.F) {
			return false
		}
	}

	survivors := a.members[:0:0]
	for _, m := range a.members {
		if !Dominates(s.F, m.F) {
			survivors = append(survivors, m)
		}
	}
	survivors = append(survivors, s)
	a.members = survivors

	if len(a.members) > a.cap {
		a.hvTruncate()
		// Truncation removes exactly one member here; if that was s, the
		// member set is what it was before the call.
		for _, m := range a.members {
			if m == s {
				return true
			}
		}
		return false
	}
	return true
}

// referencePoint derives the fixed reference point for this archive's
// current members: the worst value per objective, widened 10% on
// minimization axes and narrowed 10% on maximization axes (see
// movns.FrontStats.ReferencePoint).
func (a *Archive) referencePoint() movns.ObjectiveVector {
	var stats movns.FrontStats
	for _, m := range a.members {
		stats.Observe(m.F)
	}
	return stats.ReferencePoint()
}

// hvTruncate removes the lowest hyper-volume-contribution member,
// repeatedly, until the archive is back at capacity. Ties are broken by
// lowest F2 then lowest F1, per spec §4.3.
func (a *Archive) hvTruncate() {
	ref := a.referencePoint()
	for len(a.members) > a.cap {
		fronts := make([]movns.ObjectiveVector, len(a.members))
		for i, m := range a.members {
			fronts[i] = m.F
		}
		contrib := Contributions(fronts, ref)

		worst := 0
		for i := 1; i < len(a.members); i++ {
			if contrib[i] < contrib[worst] ||
				(contrib[i] == contrib[worst] && tieBreakWorse(a.members[i].F, a.members[worst].F)) {
				worst = i
			}
		}

		a.log.Debug("archive: hv truncation removed member",
			"contribution", contrib[worst], "remaining", len(a.members)-1, "cap", a.cap)

		a.members = append(a.members[:worst], a.members[worst+1:]...)
	}
}

// tieBreakWorse reports whether a is the worse of the two tied candidates:
// lower F2 loses first, then lower F1.
func tieBreakWorse(a, b movns.ObjectiveVector) bool {
	if a.F2 != b.F2 {
		return a.F2 < b.F2
	}
	return a.F1 < b.F1
}

// RoundRobinNext returns the next member in insertion order, cycling, for
// the driver's "for R in A (round-robin one per outer step)" loop. It
// returns nil if the archive is empty.
func (a *Archive) RoundRobinNext() *movns.Solution {
	if len(a.members) == 0 {
		return nil
	}
	if a.next >= len(a.members) {
		a.next = 0
	}
	s := a.members[a.next]
	a.next++
	return s
}
