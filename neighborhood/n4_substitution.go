package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// Substitution is N4: replace the POI at position i,d by a random
// unvisited POI, recomputing the two legs adjacent to the replaced
// position.
type Substitution struct{}

func (Substitution) Name() string { return "N4" }

type substituteMove struct {
	day, i int
	poi    movns.POIIndex
}

func (m substituteMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	day := &out.Days[m.day]
	day.POIs[m.i] = m.poi
	fixLegInto(c, day, m.i)
	fixLegInto(c, day, m.i+1)
	return out
}

func (Substitution) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	days := eligibleDays(s, 1)
	if len(days) == 0 {
		return nil, false
	}
	unvisited := unvisitedPOIs(c, all)
	if len(unvisited) == 0 {
		return nil, false
	}
	d := days[rng.Intn(len(days))]
	i := rng.Intn(len(s.Days[d].POIs))
	poi := unvisited[rng.Intn(len(unvisited))]
	return substituteMove{day: d, i: i, poi: poi}, true
}

func (Substitution) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	unvisited := unvisitedPOIs(c, all)
	for d := 0; d < 2; d++ {
		for i := range s.Days[d].POIs {
			for _, poi := range unvisited {
				moves = append(moves, substituteMove{day: d, i: i, poi: poi})
			}
		}
	}
	return moves
}
