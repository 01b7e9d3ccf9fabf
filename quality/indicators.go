// Package quality implements the convergence and diversity indicators of
// spec §4.7: exact hyper-volume (delegated to the archive package's
// decomposition), spread, additive epsilon, and IGD, plus the ring-buffer
// monitor that turns them into the driver's stall signals.
package quality

import (
	"math"

	"github.com/dmoura/movns"
)

// transform maps an objective vector into minimization space, matching the
// archive package's hyper-volume convention so distances and epsilon
// comparisons are computed on the same footing.
func transform(f movns.ObjectiveVector) [4]float64 {
	return [4]float64{-f.F1, -f.F2, f.F3, f.F4}
}

// Spread computes the normalized average pairwise gap on a non-dominated
// front: every objective is scaled to [0,1] by the front's own observed
// range before Euclidean distances between every pair of members are
// averaged. A front of fewer than two members has no spread to measure and
// returns 0.
func Spread(front []movns.ObjectiveVector) float64 {
	if len(front) < 2 {
		return 0
	}

	var lo, hi [4]float64
	for i := 0; i < 4; i++ {
		lo[i], hi[i] = front[0].Get(i), front[0].Get(i)
	}
	for _, f := range front[1:] {
		for i := 0; i < 4; i++ {
			v := f.Get(i)
			if v < lo[i] {
				lo[i] = v
			}
			if v > hi[i] {
				hi[i] = v
			}
		}
	}

	normalize := func(f movns.ObjectiveVector) [4]float64 {
		var out [4]float64
		for i := 0; i < 4; i++ {
			span := hi[i] - lo[i]
			if span <= 0 {
				out[i] = 0
				continue
			}
			out[i] = (f.Get(i) - lo[i]) / span
		}
		return out
	}

	var total float64
	var pairs int
	for i := 0; i < len(front); i++ {
		a := normalize(front[i])
		for j := i + 1; j < len(front); j++ {
			b := normalize(front[j])
			var sumSq float64
			for k := 0; k < 4; k++ {
				d := a[k] - b[k]
				sumSq += d * d
			}
			total += math.Sqrt(sumSq)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

// Epsilon computes the additive epsilon indicator ε(at, atMinus10) of
// spec §4.7: the largest, over every point b in the older front, of the
// smallest, over every point a in the newer front, of the worst
// per-objective gap needed to make a at least as good as b (all objectives
// compared in minimization space).
func Epsilon(at, atMinus10 []movns.ObjectiveVector) float64 {
	if len(at) == 0 || len(atMinus10) == 0 {
		return 0
	}
	var worst float64
	first := true
	for _, b := range atMinus10 {
		tb := transform(b)
		best := 0.0
		bestSet := false
		for _, a := range at {
			ta := transform(a)
			var maxGap float64
			for i := 0; i < 4; i++ {
				gap := ta[i] - tb[i]
				if i == 0 || gap > maxGap {
					maxGap = gap
				}
			}
			if !bestSet || maxGap < best {
				best, bestSet = maxGap, true
			}
		}
		if first || best > worst {
			worst, first = best, false
		}
	}
	return worst
}

// IGD computes the inverted generational distance from a reference front
// to the given front: the mean, over every point in reference, of the
// Euclidean distance (in minimization space) to the nearest point in
// front.
func IGD(front, reference []movns.ObjectiveVector) float64 {
	if len(reference) == 0 || len(front) == 0 {
		return 0
	}
	var total float64
	for _, r := range reference {
		tr := transform(r)
		best := -1.0
		for _, f := range front {
			tf := transform(f)
			var sumSq float64
			for i := 0; i < 4; i++ {
				d := tr[i] - tf[i]
				sumSq += d * d
			}
			dist := math.Sqrt(sumSq)
			if best < 0 || dist < best {
				best = dist
			}
		}
		total += best
	}
	return total / float64(len(reference))
}
