package quality

import (
	"github.com/dmoura/movns"
	"github.com/dmoura/movns/archive"
)

// Snapshot is one archive's objective vectors captured at a point in the
// outer loop, independent of the *movns.Solution pointers that produced
// it.
type Snapshot []movns.ObjectiveVector

func snapshotFrom(members []*movns.Solution) Snapshot {
	out := make(Snapshot, len(members))
	for i, m := range members {
		out[i] = m.F
	}
	return out
}

// Tick is the per-outer-loop result of Monitor.Tick: the current front's
// indicator values plus whether either stall signal of spec §4.7 just
// fired.
type Tick struct {
	HV              float64
	Spread          float64
	IGD             float64
	Epsilon         float64 // only meaningful when EpsilonComputed is true
	EpsilonComputed bool
	SpreadStuck     bool
	EpsilonConverge bool
}

// Monitor holds the ring buffer of archive snapshots (length 3, refreshed
// every WindowLen outer loops) and the consecutive-count state behind the
// two stall signals of spec §4.7.
type Monitor struct {
	SpreadThreshold float64
	SpreadWindow    int
	EpsilonThresh   float64
	EpsilonWindows  int
	WindowLen       int

	loop            int
	ring            []Snapshot
	spreadStuckRun  int
	epsilonBelowRun int
	referenceFront  []movns.ObjectiveVector // externally supplied; nil means derive from snapshots
}

// NewMonitor builds a Monitor from the run's Config, defaulting
// WindowLen to cfg.EpsilonWindowLen (the "every 10 outer loops" cadence of
// spec §4.7).
func NewMonitor(cfg movns.Config) *Monitor {
	return &Monitor{
		SpreadThreshold: cfg.SpreadThreshold,
		SpreadWindow:    cfg.SpreadWindow,
		EpsilonThresh:   cfg.EpsilonThreshold,
		EpsilonWindows:  cfg.EpsilonWindows,
		WindowLen:       cfg.EpsilonWindowLen,
	}
}

// SetReferenceFront overrides the IGD reference front with an externally
// supplied one; without a call to this, unionFront derives it from the
// union of the snapshots currently held in the ring buffer (the last three).
func (m *Monitor) SetReferenceFront(front []movns.ObjectiveVector) {
	m.referenceFront = front
}

// referencePoint derives the HV reference point from the union of every
// snapshot in the ring buffer: the worst observed value per objective,
// widened 10% on minimization axes and narrowed 10% on maximization axes,
// per spec §4.7.
func (m *Monitor) referencePoint() movns.ObjectiveVector {
	var stats movns.FrontStats
	for _, snap := range m.ring {
		for _, f := range snap {
			stats.Observe(f)
		}
	}
	return stats.ReferencePoint()
}

func (m *Monitor) unionFront() []movns.ObjectiveVector {
	if m.referenceFront != nil {
		return m.referenceFront
	}
	var out []movns.ObjectiveVector
	for _, snap := range m.ring {
		out = append(out, snap...)
	}
	return out
}

// Tick advances the outer-loop counter by one and evaluates the current
// archive, per spec §4.6's "QualityMonitor.tick(A)" call at the end of
// every outer loop.
func (m *Monitor) Tick(arc *archive.Archive) Tick {
	m.loop++
	front := snapshotFrom(arc.Members())

	var out Tick
	out.Spread = Spread(front)
	if out.Spread > m.SpreadThreshold {
		m.spreadStuckRun++
	} else {
		m.spreadStuckRun = 0
	}
	out.SpreadStuck = m.spreadStuckRun >= m.SpreadWindow

	if m.WindowLen > 0 && m.loop%m.WindowLen == 0 {
		m.ring = append(m.ring, front)
		if len(m.ring) > 3 {
			m.ring = m.ring[len(m.ring)-3:]
		}
		if len(m.ring) >= 2 {
			prev := m.ring[len(m.ring)-2]
			out.Epsilon = Epsilon(front, prev)
			out.EpsilonComputed = true
			if out.Epsilon < m.EpsilonThresh {
				m.epsilonBelowRun++
			} else {
				m.epsilonBelowRun = 0
			}
		}
	}
	out.EpsilonConverge = m.epsilonBelowRun >= m.EpsilonWindows

	if len(m.ring) > 0 {
		out.HV = archive.Hypervolume(front, m.referencePoint())
		out.IGD = IGD(front, m.unionFront())
	}

	return out
}
