// Package movns implements the core data model, feasibility evaluator, and
// feasibility repair for a multi-objective variable neighborhood search
// (MOVNS) planner over two-day tourist itineraries.
//
// A solution is two ordered routes through a shared hotel, scored on four
// objectives: attraction count and total rating (maximized), and total time
// and total cost (minimized). Package movns owns the pure, side-effect-free
// parts of that model: the catalog of attractions/hotels/travel matrices,
// the Solution and Leg types, Evaluate, and Repair.
//
// The archive, the seven neighborhood operators, the constructors, the
// local-search procedures, the quality indicators, and the outer driver
// loop are provided by the sibling packages movns/archive,
// movns/neighborhood, movns/construct, movns/search, movns/quality, and
// movns/engine, each of which depends on this package rather than the
// reverse.
package movns
