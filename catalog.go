package movns

import (
	"math"

	"github.com/kelindar/bitmap"
)

// TravelEntry is one (origin,destination) lookup result for a single mode:
// duration in minutes and monetary cost. A zero-value TravelEntry with
// Duration<=0 is interpreted as infeasible, per the data model's "positive-
// finite" rule, except for Walk where callers may fall back to a straight-
// line estimate (see Catalog.WalkFallback).
type TravelEntry struct {
	Duration float64
	Cost     float64
}

// feasible reports whether this entry represents a usable leg.
func (e TravelEntry) feasible() bool {
	return e.Duration > 0 && !math.IsInf(e.Duration, 0) && !math.IsNaN(e.Duration)
}

// TravelMatrix is one mode's dense (origin-id, destination-id) -> entry
// table, keyed by combined catalog index. Origins and destinations may be
// either POIIndex or HotelIndex values; the Catalog assigns hotels and
// attractions disjoint ranges of a single "place" index space so one matrix
// type serves both hotel<->POI and POI<->POI legs.
type TravelMatrix struct {
	n       int
	entries []TravelEntry // n*n, row-major
}

// NewTravelMatrix allocates an n*n matrix with every entry infeasible.
func NewTravelMatrix(n int) *TravelMatrix {
	return &TravelMatrix{n: n, entries: make([]TravelEntry, n*n)}
}

// Set records the entry for the ordered pair (from,to).
func (m *TravelMatrix) Set(from, to int, e TravelEntry) {
	m.entries[from*m.n+to] = e
}

// Get returns the entry for the ordered pair (from,to) and whether it is
// feasible.
func (m *TravelMatrix) Get(from, to int) (TravelEntry, bool) {
	e := m.entries[from*m.n+to]
	return e, e.feasible()
}

// Catalog is the immutable, read-only Problem Data: the dense attraction
// and hotel arrays plus the four travel matrices, one per Mode. All
// lookups address places by a single combined index: hotels occupy
// [0,numHotels) and attractions occupy [numHotels,numHotels+numPOIs), so
// that a leg's endpoints can be resolved against any of the four matrices
// without a type switch.
type Catalog struct {
	Attractions []Attraction
	Hotels      []Hotel
	matrices    [numModes]*TravelMatrix

	// WalkFallback, if non-nil, is consulted whenever the walk matrix has
	// no feasible entry for a pair; it returns a straight-line-distance
	// estimate. A nil WalkFallback means missing walk entries stay
	// infeasible, per the base contract of spec.md §6.
	WalkFallback func(place []float64, from, to int) (TravelEntry, bool)
}

// NumPlaces returns the combined hotel+attraction index space size.
func (c *Catalog) NumPlaces() int {
	return len(c.Hotels) + len(c.Attractions)
}

// HotelPlace converts a HotelIndex to its combined place index.
func (c *Catalog) HotelPlace(h HotelIndex) int { return int(h) }

// POIPlace converts a POIIndex to its combined place index.
func (c *Catalog) POIPlace(p POIIndex) int { return len(c.Hotels) + int(p) }

// Attraction returns the attraction at index p.
func (c *Catalog) Attraction(p POIIndex) *Attraction { return &c.Attractions[p] }

// HotelAt returns the hotel at index h.
func (c *Catalog) HotelAt(h HotelIndex) *Hotel { return &c.Hotels[h] }

// Matrix returns the travel matrix for mode m.
func (c *Catalog) Matrix(m Mode) *TravelMatrix { return c.matrices[m] }

// Travel resolves the travel entry for the ordered pair (from,to) under
// mode m, consulting WalkFallback for mode Walk when the matrix has no
// feasible entry.
func (c *Catalog) Travel(from, to int, m Mode) (TravelEntry, bool) {
	mat := c.matrices[m]
	if mat != nil {
		if e, ok := mat.Get(from, to); ok {
			return e, true
		}
	}
	if m == Walk && c.WalkFallback != nil {
		return c.WalkFallback(nil, from, to)
	}
	return TravelEntry{}, false
}

// FastestFeasibleMode returns the mode with the lowest travel duration
// among those feasible for (from,to), used by constructors to pick a
// default leg mode. ok is false if no mode is feasible.
func (c *Catalog) FastestFeasibleMode(from, to int) (mode Mode, entry TravelEntry, ok bool) {
	best := math.Inf(1)
	for m := Mode(0); m < numModes; m++ {
		if e, feasible := c.Travel(from, to, m); feasible && e.Duration < best {
			best = e.Duration
			mode, entry, ok = m, e, true
		}
	}
	return
}

// NewCatalog builds a Catalog from the given attractions, hotels, and one
// matrix per mode (matrices[Walk] may be nil only if walkFallback is
// supplied), validating the fatal DataError conditions eagerly: zero
// attractions, a missing required matrix, or a non-positive visit
// duration.
func NewCatalog(attractions []Attraction, hotels []Hotel, matrices [4]*TravelMatrix, walkFallback func([]float64, int, int) (TravelEntry, bool)) (*Catalog, error) {
	if len(attractions) == 0 {
		return nil, newError("NewCatalog", DataError, nil)
	}
	for i := range attractions {
		if attractions[i].VisitMinutes <= 0 {
			return nil, newError("NewCatalog", DataError, nil)
		}
	}
	for m := Mode(0); m < numModes; m++ {
		if matrices[m] == nil && !(m == Walk && walkFallback != nil) {
			return nil, newError("NewCatalog", DataError, nil)
		}
	}
	c := &Catalog{
		Attractions:  attractions,
		Hotels:       hotels,
		WalkFallback: walkFallback,
	}
	copy(c.matrices[:], matrices[:])
	return c, nil
}

// VisitedSet is a dense bitset over POIIndex, backed by kelindar/bitmap,
// used to test attraction membership across both days in O(1) instead of
// scanning the route slices. Neighborhoods N3/N4 use it to sample an
// "unvisited" POI; Repair uses it to dedup.
type VisitedSet struct {
	bm bitmap.Bitmap
}

// NewVisitedSet returns an empty set sized for a catalog with n
// attractions.
func NewVisitedSet(n int) VisitedSet {
	if n <= 0 {
		return VisitedSet{}
	}
	return VisitedSet{bm: make(bitmap.Bitmap, (n>>6)+1)}
}

// Set marks p as visited.
func (v *VisitedSet) Set(p POIIndex) { v.bm.Set(uint32(p)) }

// Remove clears p.
func (v *VisitedSet) Remove(p POIIndex) { v.bm.Remove(uint32(p)) }

// Contains reports whether p is marked.
func (v VisitedSet) Contains(p POIIndex) bool { return v.bm.Contains(uint32(p)) }

// Count returns the number of marked indices.
func (v VisitedSet) Count() int { return v.bm.Count() }

// VisitedFromSolution builds a VisitedSet containing every POI appearing in
// either day of s.
func VisitedFromSolution(s *Solution) VisitedSet {
	v := NewVisitedSet(0)
	for d := 0; d < 2; d++ {
		for _, p := range s.Days[d].POIs {
			v.Set(p)
		}
	}
	return v
}
