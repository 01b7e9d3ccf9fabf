package neighborhood

import (
	"math/rand"

	"github.com/dmoura/movns"
)

// InsertRemove is N3: with equal probability, insert an unvisited POI at a
// random position in a random day, or remove the POI at a random position.
type InsertRemove struct{}

func (InsertRemove) Name() string { return "N3" }

type insertMove struct {
	day, pos int
	poi      movns.POIIndex
}

func (m insertMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	day := &out.Days[m.day]
	pos := m.pos
	if pos > len(day.POIs) {
		pos = len(day.POIs)
	}
	day.POIs = append(day.POIs[:pos], append([]movns.POIIndex{m.poi}, day.POIs[pos:]...)...)
	day.Modes = append(day.Modes[:pos], append([]movns.Mode{movns.Walk}, day.Modes[pos:]...)...)
	fixLegInto(c, day, pos)
	fixLegInto(c, day, pos+1)
	return out
}

type removeMove struct {
	day, pos int
}

func (m removeMove) Apply(c *movns.Catalog, s *movns.Solution) *movns.Solution {
	out := s.Clone()
	day := &out.Days[m.day]
	if len(day.POIs) == 0 {
		return out
	}
	pos := m.pos
	if pos >= len(day.POIs) {
		pos = len(day.POIs) - 1
	}
	day.POIs = append(day.POIs[:pos], day.POIs[pos+1:]...)
	day.Modes = append(day.Modes[:pos], day.Modes[pos+1:]...)
	fixLegInto(c, day, pos)
	return out
}

func (InsertRemove) SampleOne(rng *rand.Rand, c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) (Move, bool) {
	insert := rng.Float64() < 0.5

	if insert {
		unvisited := unvisitedPOIs(c, all)
		if len(unvisited) == 0 {
			insert = false
		} else {
			d := rng.Intn(2)
			pos := rng.Intn(len(s.Days[d].POIs) + 1)
			poi := unvisited[rng.Intn(len(unvisited))]
			return insertMove{day: d, pos: pos, poi: poi}, true
		}
	}

	days := eligibleDays(s, 1)
	if len(days) == 0 {
		return nil, false
	}
	d := days[rng.Intn(len(days))]
	pos := rng.Intn(len(s.Days[d].POIs))
	return removeMove{day: d, pos: pos}, true
}

func (InsertRemove) Enumerate(c *movns.Catalog, s *movns.Solution, all movns.VisitedSet) []Move {
	var moves []Move
	unvisited := unvisitedPOIs(c, all)
	for d := 0; d < 2; d++ {
		for pos := 0; pos <= len(s.Days[d].POIs); pos++ {
			for _, poi := range unvisited {
				moves = append(moves, insertMove{day: d, pos: pos, poi: poi})
			}
		}
		for pos := range s.Days[d].POIs {
			moves = append(moves, removeMove{day: d, pos: pos})
		}
	}
	return moves
}
