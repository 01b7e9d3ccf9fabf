package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// CrossDayMove is N2: move the POI at position i of day d to position j of
// day 1-d, recomputing the one leg that bridges the gap left by the
// removal and the two legs adjacent to the insertion using the fastest
// feasible mode (the original endpoints no longer exist once the POI moves).
type CrossDayMove struct{}

func (CrossDayMove) Name() string { return "N2" }

type crossDayMove struct {
	fromDay, i, toJ int
}

func (m crossDayMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	src := &out.Days[m.fromDay]
	dst := &out.Days[1-m.fromDay]

	if len(src.POIs) == 0 {
		return out
	}
	i := m.i
	if i >= len(src.POIs) {
		i = len(src.POIs) - 1
	}
	p := src.POIs[i]

	src.POIs = append(src.POIs[:i], src.POIs[i+1:]...)
	src.Modes = append(src.Modes[:i], src.Modes[i+1:]...)
	fixLegInto(c, src, i)

	j := m.toJ
	if j > len(dst.POIs) {
		j = len(dst.POIs)
	}
	dst.POIs = append(dst.POIs[:j], append([]movns.POIIndex{p}, dst.POIs[j:]...)...)
	dst.Modes = append(dst.Modes[:j], append([]movns.Mode{movns.Walk}, dst.Modes[j:]...)...)
	fixLegInto(c, dst, j)
	fixLegInto(c, dst, j+1)

	return out
}

// fixLegInto recomputes the mode of the leg arriving at position idx (or
// the final hotel leg if idx == len(POIs)) using the fastest feasible
// mode, since the move changed that leg's origin or destination.
func fixLegInto(c *movns.Catalog, day *movns.DayRoute, idx int) {
	if idx < 0 || idx >= len(day.Modes) {
		return
	}
	var from, to int
	if idx == 0 {
		from = c.HotelPlace(day.Hotel)
	} else {
		from = c.POIPlace(day.POIs[idx-1])
	}
	if idx == len(day.POIs) {
		to = c.HotelPlace(day.Hotel)
	} else {
		to = c.POIPlace(day.POIs[idx])
	}
	if m, _, ok := c.FastestFeasibleMode(from, to); ok {
		day.Modes[idx] = m
	}
}

func (CrossDayMove) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	days := eligibleDays(s, 1)
	if len(days) == 0 {
		return nil, false
	}
	d := days[rng.Intn(len(days))]
	i := rng.Intn(len(s.Days[d].POIs))
	j := rng.Intn(len(s.Days[1-d].POIs) + 1)
	return crossDayMove{fromDay: d, i: i, toJ: j}, true
}

func (CrossDayMove) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	for d := 0; d < 2; d++ {
		for i := range s.Days[d].POIs {
			for j := 0; j <= len(s.Days[1-d].POIs); j++ {
				moves = append(moves, crossDayMove{fromDay: d, i: i, toJ: j})
			}
		}
	}
	return moves
}
