package striation

import (
	"sort"

	"github.com/tue-alga/topotide/mscomplex"
)

// Item is one candidate channel in a Striation: the MS half-edge through
// which a basin merges into its higher-persistence neighbor (the same
// witness edge simplify.Simplifier cancels), together with the persistence
// value that orders it.
type Item struct {
	Edge        mscomplex.HalfEdge
	Persistence float64
}

// Striation orders the saddle/extremum channels of an MsComplex by a
// sand-volume criterion, so that the highest-importance channels (by
// whichever OrderStrategy built the Striation) come first.
//
// There is no surviving C++ source for this type; it is authored, following
// the arena/slice idiom the rest of this module uses.
type Striation struct {
	items []Item
}

// ItemCount returns the number of items.
func (s *Striation) ItemCount() int { return len(s.items) }

// Item returns the i-th item, in striation order.
func (s *Striation) Item(i int) Item { return s.items[i] }

// OrderStrategy orders the cancellable channels of an MsComplex into a
// Striation. The striation path's "hybrid" ordering is left as a
// named-strategy slot rather than a single hardcoded rule, since the
// heuristic it names isn't pinned down any more precisely than its name.
type OrderStrategy interface {
	Order(m *mscomplex.MsComplex) []Item
}

// candidateItems collects one Item per MS-face that has a merge witness
// (every face except the single globally-surviving one), the same universe
// simplify.Simplifier draws its cancellation candidates from.
func candidateItems(m *mscomplex.MsComplex) []Item {
	var items []Item
	for i := 0; i < m.FaceCount(); i++ {
		e := m.Face(i).MergeEdge()
		if !e.IsValid() {
			continue
		}
		items = append(items, Item{Edge: e, Persistence: m.Face(i).Persistence()})
	}
	return items
}

// HighestPersistenceFirst orders channels by descending persistence: the
// natural reading of a sand-volume criterion, since the highest-persistence
// basin also holds the most sand above any given elevation.
type HighestPersistenceFirst struct{}

// Order implements OrderStrategy.
func (HighestPersistenceFirst) Order(m *mscomplex.MsComplex) []Item {
	items := candidateItems(m)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Persistence > items[j].Persistence
	})
	return items
}

// Hybrid orders channels the same way HighestPersistenceFirst does, but
// breaks ties in persistence by ascending DCEL path length, favoring
// shorter, more direct channels when two candidates carry comparable sand
// volume. Gated behind --hybridStriation at the CLI.
type Hybrid struct{}

// Order implements OrderStrategy.
func (Hybrid) Order(m *mscomplex.MsComplex) []Item {
	items := candidateItems(m)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Persistence != items[j].Persistence {
			return items[i].Persistence > items[j].Persistence
		}
		return len(items[i].Edge.DcelPath()) < len(items[j].Edge.DcelPath())
	})
	return items
}

// Creator builds a Striation from an MsComplex using a chosen OrderStrategy.
type Creator struct {
	strategy OrderStrategy
}

// NewCreator returns a Creator using the given ordering strategy.
func NewCreator(strategy OrderStrategy) *Creator {
	return &Creator{strategy: strategy}
}

// Create builds the Striation of m.
func (c *Creator) Create(m *mscomplex.MsComplex) *Striation {
	return &Striation{items: c.strategy.Order(m)}
}
