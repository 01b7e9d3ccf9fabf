package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/neighborhood"
	"github.com/dmoura/movns/search"
)

func testCatalog(t *testing.T) *movns.Catalog {
	t.Helper()
	attractions := []movns.Attraction{
		{ID: "a0", VisitMinutes: 60, Open: 0, Close: 24 * 60, Rating: 4.5, Cost: 10},
		{ID: "a1", VisitMinutes: 45, Open: 0, Close: 24 * 60, Rating: 3.0, Cost: 5},
		{ID: "a2", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 5.0, Cost: 20},
		{ID: "a3", VisitMinutes: 90, Open: 0, Close: 24 * 60, Rating: 2.0, Cost: 0},
		{ID: "a4", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 4.0, Cost: 15},
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

func seedSolution(t *testing.T, c *movns.Catalog) *movns.Solution {
	t.Helper()
	s := &movns.Solution{
		Days: [2]movns.DayRoute{
			{Hotel: 0, POIs: []movns.POIIndex{0, 1}, Modes: []movns.Mode{movns.Walk, movns.Walk, movns.Walk}},
			{Hotel: 0, POIs: []movns.POIIndex{2}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
		},
	}
	f, err := movns.Evaluate(c, s)
	require.NoError(t, err)
	s.F = f
	return s
}

func TestShakeProducesFeasibleResult(t *testing.T) {
	c := testCatalog(t)
	s := seedSolution(t, c)
	rng := rand.New(rand.NewSource(1))
	order := neighborhood.All()

	out := search.Shake(rng, c, order, 1, s)
	_, err := movns.Evaluate(c, out)
	require.NoError(t, err)
}

func TestShakeWithFourMovesProducesFeasibleResult(t *testing.T) {
	c := testCatalog(t)
	s := seedSolution(t, c)
	rng := rand.New(rand.NewSource(3))
	order := neighborhood.All()

	out := search.Shake(rng, c, order, 4, s)
	_, err := movns.Evaluate(c, out)
	require.NoError(t, err)
}

func TestParetoLocalSearchReturnsFeasibleResult(t *testing.T) {
	c := testCatalog(t)
	s := seedSolution(t, c)
	order := neighborhood.All()

	out := search.ParetoLocalSearch(c, order, s)
	_, err := movns.Evaluate(c, out)
	require.NoError(t, err)
}

func TestSampleSimplex4SumsToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		lambda := search.SampleSimplex4(rng)
		var sum float64
		for _, v := range lambda {
			require.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestWeightedDescentTerminatesWithFeasibleResult(t *testing.T) {
	c := testCatalog(t)
	s := seedSolution(t, c)
	order := neighborhood.All()
	lambda := [4]float64{0.25, 0.25, 0.25, 0.25}

	out := search.WeightedDescent(c, order, lambda, s)
	_, err := movns.Evaluate(c, out)
	require.NoError(t, err)
}
