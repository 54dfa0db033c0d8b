package striation

import (
	"sort"

	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/mscomplex"
	"github.com/tue-alga/topotide/unionfind"
)

// LowestPathTree is a spanning forest of an MsComplex rooted jointly at a
// source and a sink vertex, built so that every saddle prefers its least
// steep outgoing neighbor. It supports O(path length) reconstruction of the
// path from any vertex back to the source or the sink.
//
// Grounded on original_source/src/lowestpathtree.cpp: the steepness
// ordering, the tie-break on raw height, and the union-find cycle guard are
// taken from there verbatim; only the pointer bookkeeping is translated from
// per-vertex fields into parallel slices indexed by the (already dense)
// MsComplex vertex id.
type LowestPathTree struct {
	ms     *mscomplex.MsComplex
	source mscomplex.Vertex
	sink   mscomplex.Vertex

	// toSource[v] / toSink[v] hold the id of the half-edge to follow from v
	// to make one step closer to the source/sink, or -1 if v is the
	// root of that side (or unreached).
	toSource []int
	toSink   []int
}

// NewLowestPathTree builds the tree for the given MsComplex, rooted at
// source and sink.
func NewLowestPathTree(m *mscomplex.MsComplex, source, sink mscomplex.Vertex, units geom.Units) *LowestPathTree {
	t := &LowestPathTree{
		ms:       m,
		source:   source,
		sink:     sink,
		toSource: make([]int, m.VertexCount()),
		toSink:   make([]int, m.VertexCount()),
	}
	for i := range t.toSource {
		t.toSource[i] = -1
		t.toSink[i] = -1
	}

	// Collect every saddle reachable from source, in an arbitrary BFS order,
	// and mark every edge not (yet) part of the tree.
	inTree := make([]bool, m.HalfEdgeCount())
	var saddles []mscomplex.Vertex
	visited := make([]bool, m.VertexCount())
	visited[source.ID()] = true
	queue := []mscomplex.Vertex{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range v.AllOutgoing() {
			w := e.Destination()
			if visited[w.ID()] {
				continue
			}
			visited[w.ID()] = true
			if w.Kind() == dcel.Saddle {
				saddles = append(saddles, w)
			}
			queue = append(queue, w)
		}
	}

	// Sort saddles from low to high, matching the original's
	// elevation-ascending processing order.
	sort.Slice(saddles, func(i, j int) bool {
		return saddles[i].P().Less(saddles[j].P())
	})

	uf := unionfind.New(m.VertexCount())

	for _, s := range saddles {
		neighbors := s.AllOutgoing()
		sort.Slice(neighbors, func(i, j int) bool {
			p1 := neighbors[i].Destination().P()
			p2 := neighbors[j].Destination().P()
			steep1 := float64(p1.H) / units.Length(p1, s.P())
			steep2 := float64(p2.H) / units.Length(p2, s.P())
			if steep1 != steep2 {
				return steep1 < steep2
			}
			return p1.H < p2.H
		})

		for _, e := range neighbors {
			if uf.Find(e.Origin().ID()) == uf.Find(e.Destination().ID()) {
				continue
			}
			inTree[e.ID()] = true
			inTree[e.Twin().ID()] = true
			uf.Merge(e.Origin().ID(), e.Destination().ID())
		}
	}

	bfsDirections(m, source, inTree, t.toSource)
	bfsDirections(m, sink, inTree, t.toSink)

	return t
}

// bfsDirections walks the tree edges (inTree) reachable from root and, for
// every vertex reached by following edge e from its parent, records
// e.Twin() as the step back toward root.
func bfsDirections(m *mscomplex.MsComplex, root mscomplex.Vertex, inTree []bool, dir []int) {
	visited := make([]bool, m.VertexCount())
	visited[root.ID()] = true
	queue := []mscomplex.Vertex{root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range v.AllOutgoing() {
			if !inTree[e.ID()] {
				continue
			}
			w := e.Destination()
			if visited[w.ID()] {
				continue
			}
			visited[w.ID()] = true
			dir[w.ID()] = e.Twin().ID()
			queue = append(queue, w)
		}
	}
}

// PathToSource returns the sequence of half-edges from v to the tree's
// source, in traversal order.
func (t *LowestPathTree) PathToSource(v mscomplex.Vertex) []mscomplex.HalfEdge {
	return t.walk(v, t.toSource, t.source)
}

// PathToSink returns the sequence of half-edges from v to the tree's sink,
// in traversal order.
func (t *LowestPathTree) PathToSink(v mscomplex.Vertex) []mscomplex.HalfEdge {
	return t.walk(v, t.toSink, t.sink)
}

func (t *LowestPathTree) walk(v mscomplex.Vertex, dir []int, root mscomplex.Vertex) []mscomplex.HalfEdge {
	var path []mscomplex.HalfEdge
	for v.ID() != root.ID() {
		id := dir[v.ID()]
		if id < 0 {
			// unreachable: the MsComplex is assumed connected, so this
			// indicates a disconnected source/sink pairing.
			return path
		}
		e := t.ms.HalfEdge(id)
		path = append(path, e)
		v = e.Destination()
	}
	return path
}
