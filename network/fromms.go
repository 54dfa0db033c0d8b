package network

import (
	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/mscomplex"
)

// FromMsComplex converts an MsComplex into a NetworkGraph: one vertex per
// MS-vertex, and one edge per MS half-edge originating at a saddle (the
// other, minimum-originating direction of each pair is skipped, so every
// edge is emitted exactly once). The edge's path is the DCEL steepest-
// descent polyline stored on the half-edge, and its δ-value is the
// half-edge's stored persistence-derived delta.
func FromMsComplex(m *mscomplex.MsComplex, progress func(int)) *NetworkGraph {
	signal := func(p int) {
		if progress != nil {
			progress(p)
		}
	}
	signal(0)

	g := New()
	for i := 0; i < m.VertexCount(); i++ {
		g.AddVertex(m.Vertex(i).P())
	}

	n := m.HalfEdgeCount()
	for i := 0; i < n; i++ {
		if n > 0 {
			signal(100 * i / n)
		}

		e := m.HalfEdge(i)
		if e.Origin().Kind() != dcel.Saddle {
			continue
		}

		path := polylineOf(e)
		g.AddEdge(e.Origin().ID(), e.Destination().ID(), path, e.Delta())
	}

	signal(100)
	return g
}

// polylineOf returns the sequence of points traced by e's stored DCEL path:
// the origin of its first step, followed by the destination of every step.
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
