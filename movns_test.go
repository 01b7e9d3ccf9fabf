package movns_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmoura/movns"
)

func testCatalog(t *testing.T) *movns.Catalog {
	t.Helper()
	attractions := []movns.Attraction{
		{ID: "a0", VisitMinutes: 60, Open: 0, Close: 24 * 60, Rating: 4.5, Cost: 10},
		{ID: "a1", VisitMinutes: 45, Open: 9 * 60, Close: 17 * 60, Rating: 3.0, Cost: 5},
		{ID: "a2", VisitMinutes: 30, Open: 0, Close: 24 * 60, Rating: 5.0, Cost: 20},
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
				mat.Set(from, to, movns.TravelEntry{Duration: 20, Cost: 2})
			}
		}
		matrices[m] = mat
	}

	cat, err := movns.NewCatalog(attractions, hotels, matrices, nil)
	require.NoError(t, err)
	return cat
}

func TestNewCatalogRejectsEmptyAttractions(t *testing.T) {
	var matrices [4]*movns.TravelMatrix
	for m := range matrices {
		matrices[m] = movns.NewTravelMatrix(2)
	}
	_, err := movns.NewCatalog(nil, []movns.Hotel{{ID: "h0"}}, matrices, nil)
	require.Error(t, err)
	var merr *movns.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, movns.DataError, merr.Kind)
}

func TestNewCatalogRejectsNonPositiveVisitDuration(t *testing.T) {
	attractions := []movns.Attraction{{ID: "a0", VisitMinutes: 0}}
	var matrices [4]*movns.TravelMatrix
	for m := range matrices {
		matrices[m] = movns.NewTravelMatrix(2)
	}
	_, err := movns.NewCatalog(attractions, []movns.Hotel{{ID: "h0"}}, matrices, nil)
	require.Error(t, err)
}

func TestNewCatalogAllowsNilWalkMatrixWithFallback(t *testing.T) {
	attractions := []movns.Attraction{{ID: "a0", VisitMinutes: 30}}
	var matrices [4]*movns.TravelMatrix
	for m := movns.Subway; int(m) <= int(movns.Car); m++ {
		matrices[m] = movns.NewTravelMatrix(2)
	}
	fallback := func(_ []float64, from, to int) (movns.TravelEntry, bool) {
		return movns.TravelEntry{Duration: 5, Cost: 0}, true
	}
	cat, err := movns.NewCatalog(attractions, []movns.Hotel{{ID: "h0"}}, matrices, fallback)
	require.NoError(t, err)
	entry, ok := cat.Travel(0, 1, movns.Walk)
	require.True(t, ok)
	require.Equal(t, 5.0, entry.Duration)
}

func TestFastestFeasibleModePicksLowestDuration(t *testing.T) {
	c := testCatalog(t)
	mat := c.Matrix(movns.Car)
	mat.Set(0, 2, movns.TravelEntry{Duration: 1, Cost: 0})
	mode, entry, ok := c.FastestFeasibleMode(0, 2)
	require.True(t, ok)
	require.Equal(t, movns.Car, mode)
	require.Equal(t, 1.0, entry.Duration)
}

func TestVisitedSetTracksMembership(t *testing.T) {
	v := movns.NewVisitedSet(8)
	require.False(t, v.Contains(3))
	v.Set(3)
	require.True(t, v.Contains(3))
	require.Equal(t, 1, v.Count())
	v.Remove(3)
	require.False(t, v.Contains(3))
}

func TestEvaluateEmptySolutionHasZeroObjectives(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		{Hotel: 0, Modes: []movns.Mode{movns.Walk}},
		{Hotel: 0, Modes: []movns.Mode{movns.Walk}},
	}}
	f, err := movns.Evaluate(c, s)
	require.NoError(t, err)
	require.Equal(t, movns.ObjectiveVector{}, f)
}

func TestEvaluateAccumulatesAcrossBothDays(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		{Hotel: 0, POIs: []movns.POIIndex{0}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
		{Hotel: 0, POIs: []movns.POIIndex{2}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
	}}
	f, err := movns.Evaluate(c, s)
	require.NoError(t, err)
	require.Equal(t, 2.0, f.F1)
	require.Equal(t, 9.5, f.F2)
}

func TestEvaluateRejectsDuplicatePOIAcrossDays(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		{Hotel: 0, POIs: []movns.POIIndex{0}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
		{Hotel: 0, POIs: []movns.POIIndex{0}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
	}}
	_, err := movns.Evaluate(c, s)
	require.Error(t, err)
	var merr *movns.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, movns.DuplicatePoi, merr.Kind)
}

func TestEvaluateRejectsOpeningHoursViolation(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		// a1 opens at 9:00; arriving straight from the hotel at 8:00+20m
		// lands before opening, so it waits until 9:00, and its closing
		// time is moved to 9:10 below, before the 45m visit can finish.
		{Hotel: 0, POIs: []movns.POIIndex{1}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
		{Hotel: 0, Modes: []movns.Mode{movns.Walk}},
	}}
	day := &s.Days[0]
	c.Attraction(day.POIs[0]).Close = 9*60 + 10 // closes minutes after opening; 45m visit can't fit
	_, err := movns.Evaluate(c, s)
	require.Error(t, err)
	var merr *movns.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, movns.InfeasibleOpening, merr.Kind)
}

func TestRepairTruncatesInfeasibleTail(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		{Hotel: 0, POIs: []movns.POIIndex{0, 1, 2}, Modes: []movns.Mode{movns.Walk, movns.Walk, movns.Walk, movns.Walk}},
		{Hotel: 0, Modes: []movns.Mode{movns.Walk}},
	}}
	c.Attraction(1).Close = 9*60 + 10
	out, err := movns.Repair(c, s)
	require.NoError(t, err)
	for _, p := range out.Days[0].POIs {
		require.NotEqual(t, movns.POIIndex(1), p)
	}
}

func TestRepairDedupsKeepingFirstOccurrence(t *testing.T) {
	c := testCatalog(t)
	s := &movns.Solution{Days: [2]movns.DayRoute{
		{Hotel: 0, POIs: []movns.POIIndex{0}, Modes: []movns.Mode{movns.Walk, movns.Walk}},
		{Hotel: 0, POIs: []movns.POIIndex{0, 2}, Modes: []movns.Mode{movns.Walk, movns.Walk, movns.Walk}},
	}}
	out, err := movns.Repair(c, s)
	require.NoError(t, err)
	require.Equal(t, []movns.POIIndex{0}, out.Days[0].POIs)
	require.Equal(t, []movns.POIIndex{2}, out.Days[1].POIs)
}

func TestObjectiveStatsTracksMinMaxMean(t *testing.T) {
	var s movns.ObjectiveStats
	for _, v := range []float64{1, 2, 3, 4} {
		s = s.Insert(v)
	}
	require.Equal(t, 1.0, s.Min())
	require.Equal(t, 4.0, s.Max())
	require.Equal(t, 2.5, s.Mean())
	require.Equal(t, 4, s.Len())
}

func TestFrontStatsReferencePointWidensMinAxesAndNarrowsMaxAxes(t *testing.T) {
	var fs movns.FrontStats
	fs.Observe(movns.ObjectiveVector{F1: 10, F2: 20, F3: 100, F4: 50})
	fs.Observe(movns.ObjectiveVector{F1: 2, F2: 5, F3: 10, F4: 5})
	ref := fs.ReferencePoint()
	require.Less(t, ref.F1, 2.0)
	require.Less(t, ref.F2, 5.0)
	require.Greater(t, ref.F3, 100.0)
	require.Greater(t, ref.F4, 50.0)
}

func TestConfigValidateRejectsNonPositiveFields(t *testing.T) {
	cfg := movns.DefaultConfig()
	cfg.InitialSolutions = 0
	require.Error(t, cfg.Validate())

	cfg = movns.DefaultConfig()
	cfg.MaxTime = 0
	require.Error(t, cfg.Validate())
}

func TestConfigFromJSONLayersOverDefaults(t *testing.T) {
	doc := `{"initial_solutions": 5, "local_search_mode": "weighted", "seed": 99}`
	cfg, err := movns.FromJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.InitialSolutions)
	require.Equal(t, movns.Weighted, cfg.LocalSearchMode)
	require.Equal(t, int64(99), cfg.Seed)
	require.True(t, cfg.HasSeed)
	require.Equal(t, movns.DefaultConfig().ArchiveMax, cfg.ArchiveMax)
}

func TestConfigFromJSONRejectsUnknownField(t *testing.T) {
	_, err := movns.FromJSON(strings.NewReader(`{"not_a_field": 1}`))
	require.Error(t, err)
}

func TestConfigFromJSONRejectsInvalidValues(t *testing.T) {
	_, err := movns.FromJSON(strings.NewReader(`{"initial_solutions": 0}`))
	require.Error(t, err)
}

func TestLocalSearchModeString(t *testing.T) {
	require.Equal(t, "pareto", movns.Pareto.String())
	require.Equal(t, "weighted", movns.Weighted.String())
}

func TestConfigDefaultMaxTimeIsPositive(t *testing.T) {
	require.Greater(t, movns.DefaultConfig().MaxTime, time.Duration(0))
}
