package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// ChangeHotel is N6: replace the shared hotel by another, keeping each
// hotel-adjacent leg's existing mode. Duration and cost are looked up
// against the new hotel place at evaluation time via that same mode,
// never re-derived to the fastest feasible one; a mode that is no longer
// feasible for the new hotel surfaces as an evaluation failure for Repair
// (or outright rejection) to handle, rather than being silently swapped.
type ChangeHotel struct{}

func (ChangeHotel) Name() string { return "N6" }

type changeHotelMove struct {
	hotel movns.HotelIndex
}

func (m changeHotelMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	for d := 0; d < 2; d++ {
		out.Days[d].Hotel = m.hotel
	}
	return out
}

func otherHotels(c *movns.Catalog, current movns.HotelIndex) []movns.HotelIndex {
	var out []movns.HotelIndex
	for h := range c.Hotels {
		hi := movns.HotelIndex(h)
		if hi != current {
			out = append(out, hi)
		}
	}
	return out
}

func (ChangeHotel) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	candidates := otherHotels(c, s.Hotel())
	if len(candidates) == 0 {
		return nil, false
	}
	return changeHotelMove{hotel: candidates[rng.Intn(len(candidates))]}, true
}

func (ChangeHotel) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	for _, h := range otherHotels(c, s.Hotel()) {
		moves = append(moves, changeHotelMove{hotel: h})
	}
	return moves
}
