package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// InternalSwap is N1: pick one day, exchange the POIs at positions i and j
// (i<j), leaving modes attached to their original position.
type InternalSwap struct{}

func (InternalSwap) Name() string { return "N1" }

type swapMove struct {
	day, i, j int
}

func (m swapMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	poi := out.Days[m.day].POIs
	poi[m.i], poi[m.j] = poi[m.j], poi[m.i]
	return out
}

func (InternalSwap) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	days := eligibleDays(s, 2)
	if len(days) == 0 {
		return nil, false
	}
	d := days[rng.Intn(len(days))]
	n := len(s.Days[d].POIs)
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i {
		j = rng.Intn(n)
	}
	if j < i {
		i, j = j, i
	}
	return swapMove{day: d, i: i, j: j}, true
}

func (InternalSwap) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	for d := 0; d < 2; d++ {
		n := len(s.Days[d].POIs)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				moves = append(moves, swapMove{day: d, i: i, j: j})
			}
		}
	}
	return moves
}

// eligibleDays returns the indices of days with at least minLen POIs.
func eligibleDays(s *movns.Solution, minLen int) []int {
	var out []int
	for d := 0; d < 2; d++ {
		if len(s.Days[d].POIs) >= minLen {
			out = append(out, d)
		}
	}
	return out
}
