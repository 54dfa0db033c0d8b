// Package network represents the final, exportable product of the
// pipeline: a flat directed graph of channel vertices and δ-tagged edges,
// the δ-filter operation used to obtain coarser views of it, and the
// link-sequence view used for output.
package network

import "github.com/tue-alga/topotide/geom"

// Vertex is a vertex in a NetworkGraph.
type Vertex struct {
	ID            int
	P             geom.Point
	IncidentEdges []int
}

// Edge is a directed edge in a NetworkGraph, carrying the DCEL polyline it
// traces and its δ-value (an importance/persistence measure).
type Edge struct {
	ID       int
	From, To int
	Path     []geom.Point
	Delta    float64
}

// NetworkGraph is a directed graph of channel vertices and δ-tagged edges,
// the representative network this pipeline ultimately produces.
type NetworkGraph struct {
	verts []Vertex
	edges []Edge
}

// New returns an empty graph.
func New() *NetworkGraph {
	return &NetworkGraph{}
}

// VertexCount returns the number of vertices.
func (g *NetworkGraph) VertexCount() int { return len(g.verts) }

// Vertex returns the i-th vertex.
func (g *NetworkGraph) Vertex(i int) Vertex { return g.verts[i] }

// AddVertex adds a new vertex at p and returns its id.
func (g *NetworkGraph) AddVertex(p geom.Point) int {
	id := len(g.verts)
	g.verts = append(g.verts, Vertex{ID: id, P: p})
	return id
}

// EdgeCount returns the number of edges.
func (g *NetworkGraph) EdgeCount() int { return len(g.edges) }

// Edge returns the i-th edge.
func (g *NetworkGraph) Edge(i int) Edge { return g.edges[i] }

// AddEdge adds a directed edge from `from` to `to` tracing path, with the
// given δ-value, and returns its id.
func (g *NetworkGraph) AddEdge(from, to int, path []geom.Point, delta float64) int {
	id := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to, Path: path, Delta: delta})
	g.verts[from].IncidentEdges = append(g.verts[from].IncidentEdges, id)
	g.verts[to].IncidentEdges = append(g.verts[to].IncidentEdges, id)
	return id
}

// ScaleDeltas multiplies every edge's δ-value by scale, in place. Used to
// convert the MsComplex's raw internal persistence units (pixel² ×
// elevation-step) into real volume units (m³) before writing a graph file.
func (g *NetworkGraph) ScaleDeltas(scale float64) {
	for i := range g.edges {
		g.edges[i].Delta *= scale
	}
}

// FilterOnDelta removes every edge whose δ-value is below threshold.
//
// Vertex.IncidentEdges entries are not repaired to reflect the new edge
// positions: a vertex's incident list may end up referencing an edge id
// that no longer matches that edge's new position in Edge(i). This mirrors
// the original C++ NetworkGraph::filterOnDelta, which does the same
// positional erase without touching the vertex lists; callers that need a
// consistent incidence structure after filtering should rebuild one from
// EdgeCount()/Edge(i) rather than trusting IncidentEdges.
func (g *NetworkGraph) FilterOnDelta(threshold float64) {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Delta >= threshold {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}
