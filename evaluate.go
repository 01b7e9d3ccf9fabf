package movns

// scheduleDay simulates the clock for one day starting at 08:00 (480
// minutes), returning the ending clock value and the first feasibility
// error encountered, if any. It never mutates day.
func scheduleDay(c *Catalog, day *DayRoute) (clock float64, err error) {
	clock = 480
	prev := c.HotelPlace(day.Hotel)
	for i, p := range day.POIs {
		mode := day.Modes[i]
		entry, ok := c.Travel(prev, c.POIPlace(p), mode)
		if !ok {
			return clock, newError("Evaluate", InvalidMode, nil)
		}
		clock += entry.Duration
		a := c.Attraction(p)
		if clock < float64(a.Open) {
			clock = float64(a.Open) // wait at the door
		}
		if clock+float64(a.VisitMinutes) > float64(a.Close) {
			return clock, newError("Evaluate", InfeasibleOpening, nil)
		}
		clock += float64(a.VisitMinutes)
		prev = c.POIPlace(p)
	}
	if len(day.POIs) > 0 {
		lastMode := day.Modes[len(day.Modes)-1]
		entry, ok := c.Travel(prev, c.HotelPlace(day.Hotel), lastMode)
		if !ok {
			return clock, newError("Evaluate", InvalidMode, nil)
		}
		clock += entry.Duration
	}
	if clock > 1200 {
		return clock, newError("Evaluate", InfeasibleTime, nil)
	}
	return clock, nil
}

// checkDuplicates reports the first attraction id that appears in more than
// one position across both days.
func checkDuplicates(s *Solution) error {
	seen := NewVisitedSet(0)
	for d := 0; d < 2; d++ {
		for _, p := range s.Days[d].POIs {
			if seen.Contains(p) {
				return newError("Evaluate", DuplicatePoi, nil)
			}
			seen.Set(p)
		}
	}
	return nil
}

// Evaluate is the pure feasibility-and-scoring function described in
// spec §4.1: it computes the objective vector and reports the first
// feasibility violation encountered, in the order duplicate check, then
// per-day schedule simulation. Evaluate never mutates s and has no side
// effects.
func Evaluate(c *Catalog, s *Solution) (ObjectiveVector, error) {
	if err := checkDuplicates(s); err != nil {
		return ObjectiveVector{}, err
	}

	var f ObjectiveVector
	for d := 0; d < 2; d++ {
		day := &s.Days[d]
		if len(day.Modes) != day.NumLegs() {
			return ObjectiveVector{}, newError("Evaluate", InvalidMode, nil)
		}
		clock, err := scheduleDay(c, day)
		_ = clock
		if err != nil {
			return ObjectiveVector{}, err
		}

		prev := c.HotelPlace(day.Hotel)
		for i, p := range day.POIs {
			entry, _ := c.Travel(prev, c.POIPlace(p), day.Modes[i])
			f.F3 += entry.Duration
			f.F4 += entry.Cost
			a := c.Attraction(p)
			f.F3 += float64(a.VisitMinutes)
			f.F4 += a.Cost
			f.F1++
			f.F2 += a.Rating
			prev = c.POIPlace(p)
		}
		if len(day.POIs) > 0 {
			lastEntry, _ := c.Travel(prev, c.HotelPlace(day.Hotel), day.Modes[len(day.Modes)-1])
			f.F3 += lastEntry.Duration
			f.F4 += lastEntry.Cost
		}
	}

	return f, nil
}
