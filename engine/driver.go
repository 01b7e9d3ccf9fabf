// Package engine wires the MOVNS driver of spec §4.6: seed the archive via
// the construct package, then repeatedly shake, refine, and try to insert
// one round-robin archive member per outer loop until the termination
// precedence of §4.6 (time budget > idle-loop count > epsilon-convergence
// > iteration cap) fires.
package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dmoura/movns"
	"github.com/dmoura/movns/archive"
	"github.com/dmoura/movns/construct"
	"github.com/dmoura/movns/neighborhood"
	"github.com/dmoura/movns/quality"
	"github.com/dmoura/movns/search"
)

// Result is what Driver.Run returns: the final archive plus run-level
// counters useful for reporting.
type Result struct {
	Archive       *archive.Archive
	OuterLoops    int
	SeedReport    construct.SeedReport
	StoppedReason string
}

// Driver owns the single-threaded run state of spec §5: one Catalog
// (read-only, shareable across concurrently-running Drivers), one *rand.Rand,
// one archive, one quality monitor. Not safe for concurrent use.
type Driver struct {
	cfg     movns.Config
	catalog *movns.Catalog
	hotel   movns.HotelIndex
	rng     *rand.Rand
	log     *slog.Logger

	archive *archive.Archive
	monitor *quality.Monitor
	order   []neighborhood.Neighborhood
}

// New builds a Driver, validating cfg. Run uses the catalog's mean entrance
// cost as θ for the min-cost-greedy constructor (spec §4.4).
func New(cfg movns.Config, catalog *movns.Catalog, hotel movns.HotelIndex) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = time.Now().UnixNano()
	}

	d := &Driver{
		cfg:     cfg,
		catalog: catalog,
		hotel:   hotel,
		rng:     rand.New(rand.NewSource(seed)),
		log:     slog.Default(),
		archive: archive.New(cfg.ArchiveMax),
		monitor: quality.NewMonitor(cfg),
		order:   neighborhood.All(),
	}
	d.archive.SetLogger(d.log)
	return d, nil
}

// SetLogger overrides the driver's logger, defaulting to slog.Default().
func (d *Driver) SetLogger(l *slog.Logger) {
	d.log = l
	d.archive.SetLogger(l)
}

func meanCost(c *movns.Catalog) float64 {
	if len(c.Attractions) == 0 {
		return 0
	}
	var sum float64
	for i := range c.Attractions {
		sum += c.Attractions[i].Cost
	}
	return sum / float64(len(c.Attractions))
}

// selfHV computes the dominated hyper-volume of front against a reference
// point derived from front's own worst-plus-slack values, used for the
// driver's idle-loop bookkeeping: QualityMonitor's ring-buffer-derived
// reference point is undefined before the first snapshot window closes,
// but the "last_HV / idle_loops" comparison of spec §4.6 needs a value
// from the very first outer loop.
func selfHV(front []movns.ObjectiveVector) float64 {
	var stats movns.FrontStats
	for _, f := range front {
		stats.Observe(f)
	}
	return archive.Hypervolume(front, stats.ReferencePoint())
}

func frontOf(arc *archive.Archive) []movns.ObjectiveVector {
	members := arc.Members()
	out := make([]movns.ObjectiveVector, len(members))
	for i, m := range members {
		out[i] = m.F
	}
	return out
}

// Run executes the outer loop of spec §4.6 until termination, returning the
// final archive. The clock and ctx are polled cooperatively at each
// outer-loop boundary and before each shake/insert step, per the
// supplemental note of §4.6; ctx is never awaited mid-step.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	seeds, seedReport := construct.Seed(d.catalog, d.hotel, d.cfg.InitialSolutions, d.rng, meanCost(d.catalog))
	for _, s := range seeds {
		d.archive.TryInsert(s)
	}
	if d.archive.Len() == 0 {
		return Result{Archive: d.archive, SeedReport: seedReport}, movns.NewError("Driver.Run", movns.EmptyArchive, nil)
	}

	lastHV := selfHV(frontOf(d.archive))
	idleLoops := 0
	outerLoops := 0
	forceN5 := false
	reason := "time_budget"

	start := time.Now()
	for time.Since(start) < d.cfg.MaxTime && idleLoops < d.cfg.IdleLimit {
		if d.cfg.MaxIterations > 0 && outerLoops >= d.cfg.MaxIterations {
			reason = "iteration_cap"
			break
		}
		select {
		case <-ctx.Done():
			reason = "context_cancelled"
			outerLoops++
			goto done
		default:
		}

		outerLoops++
		member := d.archive.RoundRobinNext()
		if member == nil {
			reason = "empty_archive"
			break
		}

		k := 1
		for k <= d.cfg.KMax && time.Since(start) < d.cfg.MaxTime && ctx.Err() == nil {
			kk := k
			if forceN5 {
				kk = 5
				forceN5 = false
			}
			shaken := search.Shake(d.rng, d.catalog, d.order, kk, member)

			var refined *movns.Solution
			if d.cfg.LocalSearchMode == movns.Weighted {
				lambda := search.SampleSimplex4(d.rng)
				refined = search.WeightedDescent(d.catalog, d.order, lambda, shaken)
			} else {
				refined = search.ParetoLocalSearch(d.catalog, d.order, shaken)
			}

			if d.archive.TryInsert(refined) {
				k = 1
			} else {
				k++
			}
		}

		hvNow := selfHV(frontOf(d.archive))
		if hvNow > lastHV+d.cfg.ConvergenceSlack {
			idleLoops = 0
			lastHV = hvNow
		} else {
			idleLoops++
		}

		tick := d.monitor.Tick(d.archive)
		if tick.SpreadStuck {
			forceN5 = true
			d.log.Debug("engine: spread-stuck signal, forcing next shake to N5", "spread", tick.Spread)
		}
		if tick.EpsilonConverge {
			reason = "epsilon_converged"
			goto done
		}
	}
	if idleLoops >= d.cfg.IdleLimit {
		reason = "idle_limit"
	}

done:
	return Result{
		Archive:       d.archive,
		OuterLoops:    outerLoops,
		SeedReport:    seedReport,
		StoppedReason: reason,
	}, nil
}
