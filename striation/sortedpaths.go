package striation

import (
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/mscomplex"
)

// CandidatePath is one full source-to-sink channel built around a single
// Striation item: the lowest-path-tree route from the source to the item's
// channel, the channel itself, and the lowest-path-tree route onward to the
// sink.
type CandidatePath struct {
	Path       []mscomplex.HalfEdge
	Delta      float64
	SandVolume float64
}

// SortedPathsCreator turns a Striation into a slice of full source-to-sink
// CandidatePaths, in the Striation's own order, each tagged with its sand
// volume so a NetworkCreator can select among them by δ without recomputing
// the volume integral on every probe.
//
// No C++ source defines this type; it composes LowestPathTree (grounded on
// original_source/src/lowestpathtree.cpp) with SandCache.
type SortedPathsCreator struct {
	tree          *LowestPathTree
	cache         *SandCache
	bidirectional bool
}

// NewSortedPathsCreator returns a creator that builds full paths using tree
// and memoizes sand-volume probes in cache. When bidirectional is set, a
// channel's sand volume also counts the twin half-edge's incident face, the
// CLI's `-b`/`--bidirectional` behavior (original_source/src/gui/rivercli.cpp
// gates this flag to the striation algorithm, but does not define the sand
// function itself — no networkcreator.cpp/.h survives in the reference
// sources — so the two-sided volume this computes is an authored reading of
// "bidirectional", not a grounded translation).
func NewSortedPathsCreator(tree *LowestPathTree, cache *SandCache, bidirectional bool) *SortedPathsCreator {
	return &SortedPathsCreator{tree: tree, cache: cache, bidirectional: bidirectional}
}

// Create builds one CandidatePath per item of st, in striation order.
func (c *SortedPathsCreator) Create(st *Striation) []CandidatePath {
	paths := make([]CandidatePath, 0, st.ItemCount())
	for i := 0; i < st.ItemCount(); i++ {
		item := st.Item(i)

		toSource := c.tree.PathToSource(item.Edge.Origin())
		toSink := c.tree.PathToSink(item.Edge.Destination())

		full := make([]mscomplex.HalfEdge, 0, len(toSource)+1+len(toSink))
		for j := len(toSource) - 1; j >= 0; j-- {
			full = append(full, toSource[j].Twin())
		}
		full = append(full, item.Edge)
		full = append(full, toSink...)

		bidirectional := c.bidirectional
		volume := c.cache.Get(i, item.Persistence, func() float64 {
			return sandVolumeOf(item, bidirectional)
		})

		paths = append(paths, CandidatePath{Path: full, Delta: item.Persistence, SandVolume: volume})
	}
	return paths
}

// sandVolumeOf approximates the sand volume carried by a channel as the
// volume-above-threshold of the MS-face the channel drains, evaluated at
// the saddle's own elevation. This is an authored choice once channels
// (not bare faces) are the unit of selection, since nothing in the
// reference sources pins the exact formula down. When bidirectional is
// set, the twin half-edge's incident face contributes its own volume too.
func sandVolumeOf(item Item, bidirectional bool) float64 {
	face := item.Edge.IncidentFace()
	volume := face.VolumeAbove().Eval(float64(item.Edge.Origin().P().H))
	if bidirectional {
		twinFace := item.Edge.Twin().IncidentFace()
		volume += twinFace.VolumeAbove().Eval(float64(item.Edge.Destination().P().H))
	}
	return volume
}

// polylineOf mirrors network.polylineOf: the points traced by e's stored
// DCEL path, origin first.
func polylineOf(e mscomplex.HalfEdge) []geom.Point {
	dp := e.DcelPath()
	if len(dp) == 0 {
		return []geom.Point{e.Origin().P(), e.Destination().P()}
	}
	path := make([]geom.Point, 0, len(dp)+1)
	path = append(path, dp[0].Origin().P())
	for _, step := range dp {
		path = append(path, step.Destination().P())
	}
	return path
}
