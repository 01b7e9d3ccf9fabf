// Package neighborhood implements the seven move operators N1-N7 of
// spec §4.5, modeled as a tagged variant sharing one interface, following
// the design note of spec §9. Each operator exposes SampleOne, used by
// Shake, and Enumerate, used by Pareto Local Search. Enumerate builds the
// full slice of moves up front; it does not yield them one at a time. A
// Move changes nothing until Apply is called, and evaluation and repair are
// left to the caller.
package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// Move is an opaque, self-applying edit to a Solution. Apply returns a new
// Solution; it never mutates its argument.
type Move interface {
	Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution
}

// Neighborhood is the common contract of N1-N7.
type Neighborhood interface {
	// Name identifies the neighborhood, e.g. "N1" or "internal-swap".
	Name() string

	// SampleOne draws one random move for Shake. ok is false if no move
	// is possible for the given solution (e.g. a day too short to swap).
	SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool)

	// Enumerate yields every move applicable to s, for Pareto Local
	// Search's exhaustive pass. The returned slice may be empty.
	Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move
}

// All returns the seven neighborhoods in the fixed order N1..N7 that the
// driver and Pareto Local Search iterate.
func All() []Neighborhood {
	return []Neighborhood{
		InternalSwap{},
		CrossDayMove{},
		InsertRemove{},
		Substitution{},
		Reversal{},
		ChangeHotel{},
		ChangeMode{},
	}
}

// unvisitedPOIs returns every POIIndex in the catalog not present in all.
func unvisitedPOIs(c *movns.Catalog, all movns.VisitedSet) []movns.POIIndex {
	out := make([]movns.POIIndex, 0, len(c.Attractions))
	for i := range c.Attractions {
		p := movns.POIIndex(i)
		if !all.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
