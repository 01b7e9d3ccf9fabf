package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// ChangeMode is N7: pick one leg and set its mode to another feasible mode
// for the same origin/destination pair.
type ChangeMode struct{}

func (ChangeMode) Name() string { return "N7" }

type changeModeMove struct {
	day, legIdx int
	mode        movns.Mode
}

func legEndpoints(c *movns.Catalog, day *movns.DayRoute, idx int) (from, to int) {
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
	return from, to
}

var allModes = [...]movns.Mode{movns.Walk, movns.Subway, movns.Bus, movns.Car}

// feasibleModes returns every mode other than current that is feasible for
// (from,to), since a move to the same mode is a no-op.
func feasibleModes(c *movns.Catalog, from, to int, current movns.Mode) []movns.Mode {
	var out []movns.Mode
	for _, m := range allModes {
		if m == current {
			continue
		}
		if _, ok := c.Travel(from, to, m); ok {
			out = append(out, m)
		}
	}
	return out
}

func (m changeModeMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	out.Days[m.day].Modes[m.legIdx] = m.mode
	return out
}

func (ChangeMode) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	days := eligibleDays(s, 0)
	if len(days) == 0 {
		return nil, false
	}
	d := days[rng.Intn(len(days))]
	day := &s.Days[d]
	if len(day.Modes) == 0 {
		return nil, false
	}
	legIdx := rng.Intn(len(day.Modes))
	from, to := legEndpoints(c, day, legIdx)
	candidates := feasibleModes(c, from, to, day.Modes[legIdx])
	if len(candidates) == 0 {
		return nil, false
	}
	return changeModeMove{day: d, legIdx: legIdx, mode: candidates[rng.Intn(len(candidates))]}, true
}

func (ChangeMode) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	for d := 0; d < 2; d++ {
		day := &s.Days[d]
		for legIdx := range day.Modes {
			from, to := legEndpoints(c, day, legIdx)
			for _, mode := range feasibleModes(c, from, to, day.Modes[legIdx]) {
				moves = append(moves, changeModeMove{day: d, legIdx: legIdx, mode: mode})
			}
		}
	}
	return moves
}
