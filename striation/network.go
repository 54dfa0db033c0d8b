package striation

import "github.com/tue-alga/topotide/mscomplex"

// Network is a selection of source-to-sink channels at a chosen δ: the
// striation-path analogue of a simplified MsComplex, built by NetworkCreator
// instead of by cancellation.
type Network struct {
	paths [][]mscomplex.HalfEdge
}

// Paths returns every selected source-to-sink path.
func (n *Network) Paths() [][]mscomplex.HalfEdge { return n.paths }

// NetworkCreator selects, from a slice of CandidatePaths already sorted in
// striation order, every path whose δ is at least the requested threshold.
//
// Not present in original_source/ under any name; authored as the
// selection step between SortedPathsCreator and the striation-path graph
// projection (GraphCreator in this package).
type NetworkCreator struct{}

// NewNetworkCreator returns a NetworkCreator.
func NewNetworkCreator() *NetworkCreator { return &NetworkCreator{} }

// Create selects every candidate path at or above delta, reporting progress
// across the candidate list.
func (c *NetworkCreator) Create(paths []CandidatePath, delta float64, progress func(int)) *Network {
	signal := func(p int) {
		if progress != nil {
			progress(p)
		}
	}
	signal(0)

	n := &Network{}
	total := len(paths)
	for i, p := range paths {
		if total > 0 {
			signal(100 * i / total)
		}
		if p.Delta < delta {
			continue
		}
		n.paths = append(n.paths, p.Path)
	}

	signal(100)
	return n
}
