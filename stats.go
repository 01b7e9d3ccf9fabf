package movns

import "math"

// ObjectiveStats is an online (Welford) statistics accumulator for one
// objective axis, adapted from the population-fitness accumulator used
// throughout the evolutionary-search examples in the pack: the same
// incremental max/min/mean/variance recurrence, applied per-objective
// instead of to a single scalar fitness.
type ObjectiveStats struct {
	max, min float64
	mean     float64
	sumsq    float64
	len      float64
}

// Insert folds x into the running statistics and returns the updated
// value; ObjectiveStats is used by value, like its teacher counterpart.
func (s ObjectiveStats) Insert(x float64) ObjectiveStats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}
	delta := x - s.mean
	newlen := s.len + 1
	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newlen
	s.sumsq += delta * delta * (s.len / newlen)
	s.len = newlen
	return s
}

// Max returns the largest value folded in so far.
func (s ObjectiveStats) Max() float64 { return s.max }

// Min returns the smallest value folded in so far.
func (s ObjectiveStats) Min() float64 { return s.min }

// Mean returns the running average.
func (s ObjectiveStats) Mean() float64 { return s.mean }

// Variance returns the population variance.
func (s ObjectiveStats) Variance() float64 { return s.sumsq / s.len }

// Len returns the number of values folded in.
func (s ObjectiveStats) Len() int { return int(s.len) }

// FrontStats holds one ObjectiveStats per objective axis, used to derive
// hyper-volume reference points from an observed set of solutions.
type FrontStats [4]ObjectiveStats

// Observe folds every objective of f into the matching axis.
func (fs *FrontStats) Observe(f ObjectiveVector) {
	for i := 0; i < 4; i++ {
		fs[i] = fs[i].Insert(f.Get(i))
	}
}

// ReferencePoint returns the worst value per objective observed so far,
// extended by slack: a 10% widening on minimization axes (F3, F4) and a
// 10% narrowing on maximization axes (F1, F2), per spec §4.3 and §4.7.
func (fs FrontStats) ReferencePoint() ObjectiveVector {
	var r ObjectiveVector
	worst := func(i int) float64 {
		if Maximized(i) {
			return fs[i].Min()
		}
		return fs[i].Max()
	}
	slack := func(i int, w float64) float64 {
		if Maximized(i) {
			return w - 0.10*math.Abs(w)
		}
		return w + 0.10*math.Abs(w)
	}
	r.F1 = slack(0, worst(0))
	r.F2 = slack(1, worst(1))
	r.F3 = slack(2, worst(2))
	r.F4 = slack(3, worst(3))
	return r
}
