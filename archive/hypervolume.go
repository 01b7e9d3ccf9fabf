package archive

import (
	"sort"

	"github.com/dmoura/movns"
)

// transform maps an objective vector into minimization space: maximized
// objectives (F1, F2) are negated so that, for every axis, smaller is
// better and the reference point (the run's worst corner) has the largest
// value on every axis.
func transform(f movns.ObjectiveVector) [4]float64 {
	return [4]float64{-f.F1, -f.F2, f.F3, f.F4}
}

// Hypervolume computes the exact dominated hyper-volume of front relative
// to ref, per spec §4.7: maximized objectives negated, using a recursive
// slicing decomposition (the HSO family of exact algorithms) that is exact
// for the module's fixed four objectives.
func Hypervolume(front []movns.ObjectiveVector, ref movns.ObjectiveVector) float64 {
	if len(front) == 0 {
		return 0
	}
	points := make([][]float64, len(front))
	for i, f := range front {
		t := transform(f)
		points[i] = t[:]
	}
	r := transform(ref)
	return hypervolumeMin(points, r[:])
}

// Contributions returns, for each member of front, its exclusive
// hyper-volume contribution (HV(front) - HV(front without that member)),
// used by hyper-volume truncation to find the least valuable member.
func Contributions(front []movns.ObjectiveVector, ref movns.ObjectiveVector) []float64 {
	total := Hypervolume(front, ref)
	out := make([]float64, len(front))
	rest := make([]movns.ObjectiveVector, 0, len(front)-1)
	for i := range front {
		rest = rest[:0]
		rest = append(rest, front[:i]...)
		rest = append(rest, front[i+1:]...)
		out[i] = total - Hypervolume(rest, ref)
	}
	return out
}

// hypervolumeMin computes the dominated hyper-volume of a minimization
// point set against ref, where every coordinate of every point is assumed
// <= the matching coordinate of ref.
func hypervolumeMin(points [][]float64, ref []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	d := len(ref)
	if d == 1 {
		best := points[0][0]
		for _, p := range points[1:] {
			if p[0] < best {
				best = p[0]
			}
		}
		if ref[0] <= best {
			return 0
		}
		return ref[0] - best
	}

	// Sweep the last dimension from its best (smallest) value up to ref.
	// The band between two consecutive coordinates is covered by every
	// point seen so far (their boxes all extend past that band), so its
	// width is the (d-1)-dimensional hyper-volume of the front
	// accumulated up to, but not including, the point that opens the
	// next band.
	sorted := make([][]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][d-1] < sorted[j][d-1] })

	var volume float64
	var front [][]float64
	prevCoord := sorted[0][d-1]

	for i, p := range sorted {
		if i > 0 {
			height := p[d-1] - prevCoord
			if height > 0 && len(front) > 0 {
				volume += height * hypervolumeMin(front, ref[:d-1])
			}
		}
		prevCoord = p[d-1]
		front = insertNonDominated(front, p[:d-1])
	}

	if height := ref[d-1] - prevCoord; height > 0 && len(front) > 0 {
		volume += height * hypervolumeMin(front, ref[:d-1])
	}
	return volume
}

// insertNonDominated adds p to front, dropping any existing member p
// strictly dominates, and skipping p itself if an existing member already
// dominates or equals it.
func insertNonDominated(front [][]float64, p []float64) [][]float64 {
	kept := front[:0]
	subsumed := false
	for _, q := range front {
		if dominatesMin(p, q) {
			continue
		}
		kept = append(kept, q)
		if !dominatesMin(p, q) && dominatesOrEqualMin(q, p) {
			subsumed = true
		}
	}
	if !subsumed {
		kept = append(kept, p)
	}
	return kept
}

func dominatesMin(a, b []float64) bool {
	strict := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strict = true
		}
	}
	return strict
}

func dominatesOrEqualMin(a, b []float64) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}
