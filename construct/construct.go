// Package construct builds the initial archive seeds of spec §4.4: five
// deterministic heuristic greedy constructors plus Bernoulli random-feasible
// sampling, each producing a repaired, evaluated Solution.
package construct

import (
	"math/rand"
	"sort"

	"github.com/dmoura/movns"
)

// SeedReport summarizes one Seed call's outcome: how many candidate
// solutions were attempted, how many evaluated feasible without repair
// emptying them, and how many were dropped because evaluation failed or the
// result was the empty solution, per spec §4.8's per-iteration diagnostics
// contract.
type SeedReport struct {
	Attempted     int
	Feasible      int
	RepairedEmpty int
}

func emptySolution(hotel movns.HotelIndex) *movns.Solution {
	return &movns.Solution{
		Days: [2]movns.DayRoute{
			{Hotel: hotel, Modes: make([]movns.Mode, 1)},
			{Hotel: hotel, Modes: make([]movns.Mode, 1)},
		},
	}
}

// tryAppend attempts to append poi to the end of sol.Days[d] using the
// fastest feasible mode for both the arriving leg and the new trailing leg
// back to the hotel. It mutates sol only on success.
func tryAppend(c *movns.Catalog, sol *movns.Solution, d int, poi movns.POIIndex) bool {
	day := &sol.Days[d]
	from := c.HotelPlace(day.Hotel)
	if len(day.POIs) > 0 {
		from = c.POIPlace(day.POIs[len(day.POIs)-1])
	}
	to := c.POIPlace(poi)

	arriveMode, _, ok := c.FastestFeasibleMode(from, to)
	if !ok {
		return false
	}
	homeMode, _, ok := c.FastestFeasibleMode(to, c.HotelPlace(day.Hotel))
	if !ok {
		return false
	}

	trial := sol.Clone()
	trialDay := &trial.Days[d]
	trialDay.POIs = append(trialDay.POIs, poi)
	trialDay.Modes = append(trialDay.Modes[:len(trialDay.Modes)-1], arriveMode, homeMode)

	if _, err := movns.Evaluate(c, trial); err != nil {
		return false
	}
	*sol = *trial
	return true
}

// finalize evaluates sol, recording the outcome in report; it returns nil
// if evaluation fails or the solution is empty.
func finalize(c *movns.Catalog, sol *movns.Solution, report *SeedReport) *movns.Solution {
	report.Attempted++
	f, err := movns.Evaluate(c, sol)
	if err != nil {
		report.RepairedEmpty++
		return nil
	}
	sol.F = f
	if sol.IsEmpty() {
		report.RepairedEmpty++
		return nil
	}
	report.Feasible++
	return sol
}

// minTravelToAny returns the shortest feasible travel duration from poi to
// any other attraction in the catalog, used by the balanced heuristic's
// ratio.
func minTravelToAny(c *movns.Catalog, poi movns.POIIndex) float64 {
	best := -1.0
	from := c.POIPlace(poi)
	for i := range c.Attractions {
		other := movns.POIIndex(i)
		if other == poi {
			continue
		}
		if _, entry, ok := c.FastestFeasibleMode(from, c.POIPlace(other)); ok {
			if best < 0 || entry.Duration < best {
				best = entry.Duration
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func sortedByKey(n int, key func(i int) float64, descending bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if descending {
			return key(idx[a]) > key(idx[b])
		}
		return key(idx[a]) < key(idx[b])
	})
	return idx
}

// greedyFill walks order, balancing insertions across the two days (always
// trying the currently-shorter day first), skipping any POI that fails to
// append to either day and continuing to the next candidate.
func greedyFill(c *movns.Catalog, hotel movns.HotelIndex, order []movns.POIIndex) *movns.Solution {
	sol := emptySolution(hotel)
	for _, poi := range order {
		d := 0
		if len(sol.Days[0].POIs) > len(sol.Days[1].POIs) {
			d = 1
		}
		if tryAppend(c, sol, d, poi) {
			continue
		}
		tryAppend(c, sol, 1-d, poi)
	}
	return sol
}

// MaxAttractions is the max-attractions greedy constructor: insert by
// descending rating, skipping any POI that does not fit, until no further
// POI fits either day's time window.
func MaxAttractions(c *movns.Catalog, hotel movns.HotelIndex) *movns.Solution {
	order := sortedByKey(len(c.Attractions), func(i int) float64 { return c.Attractions[i].Rating }, true)
	pois := make([]movns.POIIndex, len(order))
	for i, v := range order {
		pois[i] = movns.POIIndex(v)
	}
	return greedyFill(c, hotel, pois)
}

// MaxRatingGreedy walks attractions by descending rating, filling day 0
// until its first infeasible append, then filling day 1 the same way; it
// does not skip past a failure within a day, unlike MaxAttractions.
func MaxRatingGreedy(c *movns.Catalog, hotel movns.HotelIndex) *movns.Solution {
	order := sortedByKey(len(c.Attractions), func(i int) float64 { return c.Attractions[i].Rating }, true)
	sol := emptySolution(hotel)
	pos := 0
	for d := 0; d < 2; d++ {
		for pos < len(order) {
			if !tryAppend(c, sol, d, movns.POIIndex(order[pos])) {
				break
			}
			pos++
		}
	}
	return sol
}

// MinCostGreedy walks attractions by ascending entrance cost, skipping any
// above theta, filling both days via greedyFill.
func MinCostGreedy(c *movns.Catalog, hotel movns.HotelIndex, theta float64) *movns.Solution {
	order := sortedByKey(len(c.Attractions), func(i int) float64 { return c.Attractions[i].Cost }, false)
	var pois []movns.POIIndex
	for _, i := range order {
		if c.Attractions[i].Cost > theta {
			continue
		}
		pois = append(pois, movns.POIIndex(i))
	}
	return greedyFill(c, hotel, pois)
}

// MinTravelTimeGreedy builds each day as a nearest-neighbor chain from the
// hotel: repeatedly append the unused POI with the least travel time from
// the day's current last point, until no remaining POI fits.
func MinTravelTimeGreedy(c *movns.Catalog, hotel movns.HotelIndex) *movns.Solution {
	sol := emptySolution(hotel)
	used := movns.NewVisitedSet(len(c.Attractions))

	for d := 0; d < 2; d++ {
		for {
			day := &sol.Days[d]
			from := c.HotelPlace(day.Hotel)
			if len(day.POIs) > 0 {
				from = c.POIPlace(day.POIs[len(day.POIs)-1])
			}
			best := -1
			bestDur := -1.0
			for i := range c.Attractions {
				p := movns.POIIndex(i)
				if used.Contains(p) {
					continue
				}
				if _, entry, ok := c.FastestFeasibleMode(from, c.POIPlace(p)); ok {
					if bestDur < 0 || entry.Duration < bestDur {
						best, bestDur = i, entry.Duration
					}
				}
			}
			if best < 0 {
				break
			}
			p := movns.POIIndex(best)
			if !tryAppend(c, sol, d, p) {
				used.Set(p) // nearest candidate doesn't fit the day window; try the next nearest
				continue
			}
			used.Set(p)
		}
	}
	return sol
}

// Balanced inserts attractions by descending ratio of rating to
// (visit time + shortest travel time to any other attraction), via
// greedyFill.
func Balanced(c *movns.Catalog, hotel movns.HotelIndex) *movns.Solution {
	ratio := func(i int) float64 {
		a := &c.Attractions[i]
		denom := float64(a.VisitMinutes) + minTravelToAny(c, movns.POIIndex(i))
		if denom <= 0 {
			return 0
		}
		return a.Rating / denom
	}
	order := sortedByKey(len(c.Attractions), ratio, true)
	pois := make([]movns.POIIndex, len(order))
	for i, v := range order {
		pois[i] = movns.POIIndex(v)
	}
	return greedyFill(c, hotel, pois)
}

// RandomFeasible samples each attraction independently with probability p,
// shuffles the sample, fills day 0 then overflows into day 1, then repairs
// and dedups via movns.Repair.
func RandomFeasible(c *movns.Catalog, hotel movns.HotelIndex, rng *rand.Rand, p float64) (*movns.Solution, error) {
	var sample []movns.POIIndex
	for i := range c.Attractions {
		if rng.Float64() < p {
			sample = append(sample, movns.POIIndex(i))
		}
	}
	rng.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })

	sol := emptySolution(hotel)
	d := 0
	for _, poi := range sample {
		if d == 0 && tryAppend(c, sol, 0, poi) {
			continue
		}
		d = 1 // day 0 is full; the rest of the sample goes to day 1
		day := &sol.Days[d]
		from := c.HotelPlace(day.Hotel)
		if len(day.POIs) > 0 {
			from = c.POIPlace(day.POIs[len(day.POIs)-1])
		}
		arriveMode, _, _ := c.FastestFeasibleMode(from, c.POIPlace(poi))
		homeMode, _, _ := c.FastestFeasibleMode(c.POIPlace(poi), c.HotelPlace(day.Hotel))
		day.POIs = append(day.POIs, poi)
		day.Modes = append(day.Modes[:len(day.Modes)-1], arriveMode, homeMode)
	}

	return movns.Repair(c, sol)
}

// Seed produces `count` initial archive candidates: the five deterministic
// heuristics (if count allows), then random-feasible seeds for the
// remainder, per spec §4.4's "total seeds equal the configured initial-
// archive size" rule.
func Seed(c *movns.Catalog, hotel movns.HotelIndex, count int, rng *rand.Rand, costThreshold float64) ([]*movns.Solution, SeedReport) {
	var report SeedReport
	var out []*movns.Solution

	deterministic := []func() *movns.Solution{
		func() *movns.Solution { return MaxAttractions(c, hotel) },
		func() *movns.Solution { return MaxRatingGreedy(c, hotel) },
		func() *movns.Solution { return MinCostGreedy(c, hotel, costThreshold) },
		func() *movns.Solution { return MinTravelTimeGreedy(c, hotel) },
		func() *movns.Solution { return Balanced(c, hotel) },
	}

	for _, build := range deterministic {
		if len(out) >= count {
			break
		}
		if s := finalize(c, build(), &report); s != nil {
			out = append(out, s)
		}
	}

	maxAttempts := count * 20
	for len(out) < count && report.Attempted < maxAttempts {
		sol, err := RandomFeasible(c, hotel, rng, 0.3)
		report.Attempted++
		if err != nil {
			report.RepairedEmpty++
			continue
		}
		if sol.IsEmpty() {
			report.RepairedEmpty++
			continue
		}
		report.Feasible++
		out = append(out, sol)
	}

	return out, report
}
