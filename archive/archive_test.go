package archive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/archive"
)

func sol(f movns.ObjectiveVector) *movns.Solution {
	return &movns.Solution{F: f}
}

func TestDominates(t *testing.T) {
	a := movns.ObjectiveVector{F1: 3, F2: 10, F3: 100, F4: 20}
	b := movns.ObjectiveVector{F1: 2, F2: 10, F3: 100, F4: 20}
	require.True(t, archive.Dominates(a, b))
	require.False(t, archive.Dominates(b, a))

	// equal vectors are mutually non-dominated
	c := a
	require.False(t, archive.Dominates(a, c))
	require.False(t, archive.Dominates(c, a))
}

func TestTryInsertRejectsDominated(t *testing.T) {
	arc := archive.New(60)
	best := sol(movns.ObjectiveVector{F1: 5, F2: 20, F3: 100, F4: 10})
	worse := sol(movns.ObjectiveVector{F1: 4, F2: 20, F3: 100, F4: 10})

	require.True(t, arc.TryInsert(best))
	require.False(t, arc.TryInsert(worse))
	require.Equal(t, 1, arc.Len())
}

func TestTryInsertRemovesDominatedMembers(t *testing.T) {
	arc := archive.New(60)
	weak := sol(movns.ObjectiveVector{F1: 2, F2: 5, F3: 200, F4: 50})
	strong := sol(movns.ObjectiveVector{F1: 5, F2: 20, F3: 100, F4: 10})

	require.True(t, arc.TryInsert(weak))
	require.True(t, arc.TryInsert(strong))
	require.Equal(t, 1, arc.Len())
	require.Same(t, strong, arc.Members()[0])
}

func TestTryInsertKeepsMutuallyNonDominated(t *testing.T) {
	arc := archive.New(60)
	a := sol(movns.ObjectiveVector{F1: 5, F2: 10, F3: 100, F4: 50})
	b := sol(movns.ObjectiveVector{F1: 2, F2: 30, F3: 80, F4: 10})

	require.True(t, arc.TryInsert(a))
	require.True(t, arc.TryInsert(b))
	require.Equal(t, 2, arc.Len())
}

func TestHVTruncateRespectsCapacity(t *testing.T) {
	arc := archive.New(3)
	for i := 0; i < 10; i++ {
		s := sol(movns.ObjectiveVector{
			F1: float64(i + 1),
			F2: float64(10 - i),
			F3: 100 - float64(i),
			F4: 50 + float64(i),
		})
		arc.TryInsert(s)
	}
	require.LessOrEqual(t, arc.Len(), 3)
}

func TestRoundRobinCycles(t *testing.T) {
	arc := archive.New(60)
	a := sol(movns.ObjectiveVector{F1: 1, F2: 1, F3: 1, F4: 1})
	b := sol(movns.ObjectiveVector{F1: 2, F2: 2, F3: 2, F4: 2})
	arc.TryInsert(a)
	arc.TryInsert(b)

	seen := map[*movns.Solution]int{}
	for i := 0; i < 4; i++ {
		seen[arc.RoundRobinNext()]++
	}
	require.Equal(t, 2, seen[a])
	require.Equal(t, 2, seen[b])
}

func TestHypervolumePositiveForNonEmptyFront(t *testing.T) {
	front := []movns.ObjectiveVector{
		{F1: 2, F2: 8, F3: 50, F4: 20},
	}
	ref := movns.ObjectiveVector{F1: 0, F2: 0, F3: 100, F4: 100}
	hv := archive.Hypervolume(front, ref)
	require.Greater(t, hv, 0.0)

	// a single box: (2-0)*(8-0)*(100-50)*(100-20)
	require.InDelta(t, 2.0*8.0*50.0*80.0, hv, 1e-6)
}

func TestHypervolumeMonotonicUnderInsertion(t *testing.T) {
	ref := movns.ObjectiveVector{F1: 0, F2: 0, F3: 100, F4: 100}
	front1 := []movns.ObjectiveVector{{F1: 2, F2: 8, F3: 50, F4: 20}}
	front2 := append(append([]movns.ObjectiveVector{}, front1...),
		movns.ObjectiveVector{F1: 4, F2: 4, F3: 60, F4: 40})

	require.GreaterOrEqual(t, archive.Hypervolume(front2, ref), archive.Hypervolume(front1, ref))
}
