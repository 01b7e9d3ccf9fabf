package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/engine"
)

func testCatalog(t *testing.T) *movns.Catalog {
	t.Helper()
	attractions := []movns.Attraction{
		{ID: "a0", VisitMinutes: 60, Open: 0, Close: 24 * 60, Rating: 4.5, Cost: 10},
		{ID: "a1", VisitMinutes: 45, Open: 0, Close: 24 * 60, Rating: 3.0, Cost: 5},
		{ID: "a2", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 5.0, Cost: 20},
		{ID: "a3", VisitMinutes: 90, Open: 0, Close: 24 * 60, Rating: 2.0, Cost: 0},
		{ID: "a4", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 4.0, Cost: 15},
		{ID: "a5", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 1.0, Cost: 8},
	}
	hotels := []movns.Hotel{{ID: "h0"}, {ID: "h1"}}
	n := len(hotels) + len(attractions)

	var matrices [4]*movns.TravelMatrix
	for m := range matrices {
		mat := movns.NewTravelMatrix(n)
		for from := 0; from < n; from++ {
			for to := 0; to < n; to++ {
				if from == to {
					continue
				}
				mat.Set(from, to, movns.TravelEntry{Duration: float64(15 + m*5), Cost: float64(m)})
			}
		}
		matrices[m] = mat
	}

	cat, err := movns.NewCatalog(attractions, hotels, matrices, nil)
	require.NoError(t, err)
	return cat
}

func TestDriverRunProducesNonEmptyArchive(t *testing.T) {
	c := testCatalog(t)
	cfg := movns.DefaultConfig()
	cfg.InitialSolutions = 4
	cfg.MaxTime = 200 * time.Millisecond
	cfg.IdleLimit = 3
	cfg.Seed = 7
	cfg.HasSeed = true

	d, err := engine.New(cfg, c, 0)
	require.NoError(t, err)

	result, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Greater(t, result.Archive.Len(), 0)
	require.Greater(t, result.OuterLoops, 0)
}

func TestDriverRunRespectsCancellation(t *testing.T) {
	c := testCatalog(t)
	cfg := movns.DefaultConfig()
	cfg.InitialSolutions = 4
	cfg.MaxTime = 10 * time.Second
	cfg.IdleLimit = 1000
	cfg.Seed = 1
	cfg.HasSeed = true

	d, err := engine.New(cfg, c, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := d.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "context_cancelled", result.StoppedReason)
}

func TestDriverRunFailsOnInvalidConfig(t *testing.T) {
	c := testCatalog(t)
	cfg := movns.DefaultConfig()
	cfg.InitialSolutions = 0

	_, err := engine.New(cfg, c, 0)
	require.Error(t, err)
}
