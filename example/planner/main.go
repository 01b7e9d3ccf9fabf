// Command planner runs the MOVNS driver over a synthetic two-day itinerary
// catalog and prints the resulting Pareto archive.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/engine"
)

var (
	NumPOIs         = pflag.IntP("pois", "n", 14, "number of synthetic attractions to generate")
	Seed            = pflag.Int64P("seed", "s", 42, "random seed for both catalog generation and the search")
	MaxTime         = pflag.DurationP("max-time", "t", 10*time.Second, "outer-loop time budget")
	IdleLimit       = pflag.Int("idle-limit", 30, "consecutive outer loops without hypervolume growth before stopping")
	LocalSearchMode = pflag.String("local-search", "pareto", "local search procedure: pareto or weighted")
	LogLevel        = pflag.String("log-level", "info", "log level: debug, info, warn, error")
	LogJSON         = pflag.Bool("log-json", false, "use json logs instead of colorized text")
	Help            = pflag.BoolP("help", "h", false, "show this help text")
)

func main() {
	pflag.Parse()
	if *Help {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *LogLevel)
		os.Exit(2)
	}

	var logger *slog.Logger
	if *LogJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	} else {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("planner failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	catGen := rand.New(rand.NewSource(*Seed))
	catalog, err := syntheticCatalog(catGen, *NumPOIs)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	cfg := movns.DefaultConfig()
	cfg.MaxTime = *MaxTime
	cfg.IdleLimit = *IdleLimit
	cfg.Seed = *Seed
	cfg.HasSeed = true
	if *LocalSearchMode == "weighted" {
		cfg.LocalSearchMode = movns.Weighted
	}

	drv, err := engine.New(cfg, catalog, 0)
	if err != nil {
		return fmt.Errorf("configure driver: %w", err)
	}
	drv.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting search", "pois", *NumPOIs, "max_time", cfg.MaxTime, "local_search", cfg.LocalSearchMode)
	result, err := drv.Run(ctx)
	if err != nil {
		return fmt.Errorf("run search: %w", err)
	}

	logger.Info("search finished",
		"reason", result.StoppedReason,
		"outer_loops", result.OuterLoops,
		"archive_size", result.Archive.Len(),
		"seeds_attempted", result.SeedReport.Attempted,
		"seeds_feasible", result.SeedReport.Feasible,
	)

	printFront(result.Archive.Members())
	return nil
}

func printFront(members []*movns.Solution) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].F.F2 > members[j].F.F2
	})
	fmt.Printf("%-4s %8s %8s %10s %10s\n", "#", "count", "rating", "minutes", "cost")
	for i, m := range members {
		fmt.Printf("%-4d %8.0f %8.1f %10.1f %10.2f\n", i, m.F.F1, m.F.F2, m.F.F3, m.F.F4)
	}
}

// syntheticCatalog scatters numPOIs attractions and two hotels over a
// 10x10 km square, deriving all four travel matrices from straight-line
// distance at a per-mode speed, so the demo needs no external dataset.
func syntheticCatalog(rng *rand.Rand, numPOIs int) (*movns.Catalog, error) {
	if numPOIs <= 0 {
		numPOIs = 1
	}

	hotels := []movns.Hotel{
		{ID: "h0", Name: "Riverside Inn", Lat: 0, Lon: 0},
		{ID: "h1", Name: "Old Town Suites", Lat: 4, Lon: 3},
	}

	attractions := make([]movns.Attraction, numPOIs)
	for i := range attractions {
		attractions[i] = movns.Attraction{
			ID:           fmt.Sprintf("a%d", i),
			Name:         fmt.Sprintf("Attraction %d", i),
			Lat:          rng.Float64() * 10,
			Lon:          rng.Float64() * 10,
			VisitMinutes: 20 + rng.Intn(100),
			Open:         8 * 60,
			Close:        20 * 60,
			Cost:         math.Round(rng.Float64() * 40),
			Rating:       1 + rng.Float64()*4,
		}
	}

	places := make([][2]float64, len(hotels)+len(attractions))
	for i, h := range hotels {
		places[i] = [2]float64{h.Lat, h.Lon}
	}
	for i, a := range attractions {
		places[len(hotels)+i] = [2]float64{a.Lat, a.Lon}
	}

	speeds := [4]float64{movns.Walk: 5, movns.Subway: 35, movns.Bus: 18, movns.Car: 30}
	costPerKm := [4]float64{movns.Walk: 0, movns.Subway: 0.15, movns.Bus: 0.1, movns.Car: 0.5}

	var matrices [4]*movns.TravelMatrix
	n := len(places)
	for m := 0; m < 4; m++ {
		mat := movns.NewTravelMatrix(n)
		for from := 0; from < n; from++ {
			for to := 0; to < n; to++ {
				if from == to {
					continue
				}
				km := haversineFlat(places[from], places[to])
				mat.Set(from, to, movns.TravelEntry{
					Duration: km / speeds[m] * 60,
					Cost:     km * costPerKm[m],
				})
			}
		}
		matrices[m] = mat
	}

	return movns.NewCatalog(attractions, hotels, matrices, nil)
}

// haversineFlat approximates distance in kilometers on the small planar
// grid used by syntheticCatalog; a full haversine is unnecessary at this
// scale.
func haversineFlat(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}
