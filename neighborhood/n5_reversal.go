package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// Reversal is N5: pick one day and reverse the sub-sequence [i..j]. Travel
// matrices need not be symmetric, so every leg touching the reversed span
// is recomputed rather than carried over from the old order.
type Reversal struct{}

func (Reversal) Name() string { return "N5" }

type reversalMove struct {
	day, i, j int
}

func (m reversalMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	day := &out.Days[m.day]
	reverseRange(day.POIs, m.i, m.j)
	for idx := m.i; idx <= m.j+1; idx++ {
		fixLegInto(c, day, idx)
	}
	return out
}

func reverseRange[T any](s []T, i, j int) {
	for i < j {
		s[i], s[j] = s[j], s[i]
		i++
		j--
	}
}

func (Reversal) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
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
	return reversalMove{day: d, i: i, j: j}, true
}

func (Reversal) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	for d := 0; d < 2; d++ {
		n := len(s.Days[d].POIs)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				moves = append(moves, reversalMove{day: d, i: i, j: j})
			}
		}
	}
	return moves
}
