package movns

// Repair brings a possibly-infeasible solution back into the invariants of
// spec §4.2: (a) dedup attractions keeping the first occurrence across both
// days in order, (b) for each day, greedily drop the last attraction until
// the day's schedule simulation reports no error (day window, opening hours,
// or an infeasible leg mode), (c) re-evaluate. Repair never reorders POIs
// and never changes a leg's mode; it only truncates.
//
// If the repaired solution still fails to evaluate (e.g. a day whose Modes
// length does not match its legs) or becomes the empty solution, the caller is
// expected to skip the candidate per spec §4.8; Repair itself always
// returns the best truncation it could produce plus the final evaluation
// error, if any.
func Repair(c *Catalog, s *Solution) (*Solution, error) {
	out := dedupFirstOccurrence(s)

	for d := 0; d < 2; d++ {
		day := &out.Days[d]
		for {
			_, err := scheduleDay(c, day)
			if err == nil {
				break
			}
			if len(day.POIs) == 0 {
				break // nothing left to drop; leaves the day infeasible or empty
			}
			day.POIs = day.POIs[:len(day.POIs)-1]
			day.Modes = day.Modes[:len(day.Modes)-1]
		}
	}

	f, err := Evaluate(c, out)
	out.F = f
	return out, err
}

// dedupFirstOccurrence returns a clone of s with every attraction after its
// first occurrence (scanning day 0 then day 1, in order) removed, along
// with the leg that arrives at it, so the remaining Modes slice stays in
// sync with POIs.
func dedupFirstOccurrence(s *Solution) *Solution {
	out := s.Clone()
	seen := NewVisitedSet(0)
	for d := 0; d < 2; d++ {
		day := &out.Days[d]
		keptPOIs := day.POIs[:0:0]
		keptModes := make([]Mode, 0, len(day.Modes))

		for i, p := range day.POIs {
			if seen.Contains(p) {
				continue
			}
			seen.Set(p)
			keptPOIs = append(keptPOIs, p)
			keptModes = append(keptModes, day.Modes[i])
		}
		keptModes = append(keptModes, day.Modes[len(day.Modes)-1]) // final leg back to hotel
		day.POIs = keptPOIs
		day.Modes = keptModes
	}
	return out
}
