package striation

import (
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/mscomplex"
	"github.com/tue-alga/topotide/network"
)

// GraphCreator converts a Network into a NetworkGraph: it marks every
// MS-half-edge used by some path in the Network, then DFS-walks the marked
// subgraph from the source, collapsing "boring" degree-2-like vertices into
// a single NetworkGraph edge when simplify is set.
//
// Grounded on original_source/src/networkgraphcreator.cpp: isBoring,
// nextInterestingVertex and otherMarkedOutgoingEdge are translated from
// there nearly line for line, including the exact "one marked in/out with
// distinct twins, or two marked twin-pairs" boring test.
type GraphCreator struct {
	ms       *mscomplex.MsComplex
	net      *Network
	simplify bool
	marked   []bool
}

// NewGraphCreator returns a creator for the given MsComplex and Network.
func NewGraphCreator(ms *mscomplex.MsComplex, net *Network, simplify bool) *GraphCreator {
	return &GraphCreator{ms: ms, net: net, simplify: simplify, marked: make([]bool, ms.HalfEdgeCount())}
}

// Create builds the NetworkGraph.
func (c *GraphCreator) Create(progress func(int)) *network.NetworkGraph {
	signal := func(p int) {
		if progress != nil {
			progress(p)
		}
	}
	signal(0)

	g := network.New()
	if len(c.net.paths) == 0 {
		signal(100)
		return g
	}

	for _, path := range c.net.paths {
		for _, e := range path {
			c.marked[e.ID()] = true
		}
	}

	source := c.net.paths[0][0].Origin()

	visited := make([]bool, c.ms.VertexCount())
	graphVertices := make([]int, c.ms.VertexCount())
	for i := range graphVertices {
		graphVertices[i] = -1
	}

	visited[source.ID()] = true
	graphVertices[source.ID()] = g.AddVertex(source.P())

	stack := []mscomplex.Vertex{source}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, outgoing := range v.AllOutgoing() {
			if !c.marked[outgoing.ID()] {
				continue
			}

			vGraph := graphVertices[v.ID()]
			edges := c.nextInterestingVertex(outgoing)
			vNew := edges[len(edges)-1].Destination()

			vNewGraph := graphVertices[vNew.ID()]
			if vNewGraph == -1 {
				vNewGraph = g.AddVertex(vNew.P())
				graphVertices[vNew.ID()] = vNewGraph
			}

			path := collapsedPolyline(edges)
			delta := edges[len(edges)-1].Delta()
			g.AddEdge(vGraph, vNewGraph, path, delta)

			if !visited[vNew.ID()] {
				visited[vNew.ID()] = true
				stack = append(stack, vNew)
			}
		}
	}

	signal(100)
	return g
}

// nextInterestingVertex walks forward from edge, through any run of boring
// vertices, collecting every MS half-edge traversed, and returns once it
// reaches an interesting vertex (or a dead end).
func (c *GraphCreator) nextInterestingVertex(edge mscomplex.HalfEdge) []mscomplex.HalfEdge {
	result := []mscomplex.HalfEdge{edge}
	for c.isBoring(edge.Destination()) {
		edge = c.otherMarkedOutgoingEdge(edge.Twin())
		result = append(result, edge)
	}
	return result
}

// isBoring reports whether v has exactly one marked incoming and one marked
// outgoing edge that are not twins, or two marked twin-pairs: in both cases
// v carries no branching information and can be collapsed away.
func (c *GraphCreator) isBoring(v mscomplex.Vertex) bool {
	if !c.simplify {
		return false
	}

	var in, out []mscomplex.HalfEdge
	for _, e := range v.AllOutgoing() {
		if c.marked[e.ID()] {
			out = append(out, e)
		}
		if c.marked[e.Twin().ID()] {
			in = append(in, e.Twin())
		}
	}

	return (len(in) == 1 && len(out) == 1 && !c.marked[in[0].Twin().ID()]) ||
		(len(in) == 2 && len(out) == 2 &&
			c.marked[in[0].Twin().ID()] && c.marked[in[1].Twin().ID()])
}

// otherMarkedOutgoingEdge returns a marked outgoing edge of e.Origin() other
// than e, or an invalid handle if none exists.
func (c *GraphCreator) otherMarkedOutgoingEdge(e mscomplex.HalfEdge) mscomplex.HalfEdge {
	var result mscomplex.HalfEdge
	for _, other := range e.Origin().AllOutgoing() {
		if other.ID() != e.ID() && c.marked[other.ID()] {
			result = other
		}
	}
	return result
}

// collapsedPolyline concatenates the DCEL polylines of a run of MS
// half-edges into one continuous point sequence.
func collapsedPolyline(edges []mscomplex.HalfEdge) []geom.Point {
	var path []geom.Point
	for i, e := range edges {
		p := polylineOf(e)
		if i == 0 {
			path = append(path, p...)
			continue
		}
		path = append(path, p[1:]...)
	}
	return path
}
