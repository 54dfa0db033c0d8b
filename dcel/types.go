// Package dcel implements InputDcel: a triangulated half-edge mesh over a
// heightmap's pixel grid, restricted to a boundary's interior, with the
// per-vertex and per-edge metadata (vertex classification, steepest-descent
// edges, monkey-saddle splitting, per-triangle sand volume) the rest of the
// pipeline builds on.
//
// Entities live in three arenas (vertices, half-edges, triangles) and are
// referred to by dense integer index rather than pointer: this removes the
// ownership cycles a pointer-based mesh would otherwise have, while keeping
// O(1) navigation.
package dcel

import "github.com/tue-alga/topotide/geom"

// VertexType classifies a DCEL vertex by its number of down-wedges.
type VertexType int

const (
	// Minimum has zero down-wedges: every outgoing edge ascends.
	Minimum VertexType = iota
	// Regular has exactly one down-wedge.
	Regular
	// Saddle has exactly two down-wedges.
	Saddle
	// Maximum has a single down-wedge that wraps the vertex's entire
	// rotation: every neighbor is reached by a descending step, so it is a
	// local peak with no ascending edge at all.
	Maximum
)

func (t VertexType) String() string {
	switch t {
	case Minimum:
		return "minimum"
	case Regular:
		return "regular"
	case Saddle:
		return "saddle"
	case Maximum:
		return "maximum"
	default:
		return "unknown"
	}
}

// Sentinel elevation values used for boundary vertices: the source path is
// pinned below every real elevation, the sink path above every real
// elevation, and top/bottom get a constant below every real elevation but
// distinguishable from the source's value. Real elevations from a HeightMap
// always lie in [0, 0xFFFFFF], so these are safely outside that range on
// both ends.
const (
	NegInf      = -1 << 62
	PosInf      = 1<<62 - 1
	LowSentinel = -1
)

// Vertex is a handle to a vertex in a DCEL. It has value semantics: two
// handles are equal iff their indices are equal.
type Vertex struct {
	dcel *InputDcel
	idx  int
}

// ID returns the vertex's arena index.
func (v Vertex) ID() int { return v.idx }

// IsValid reports whether the handle refers to an actual vertex.
func (v Vertex) IsValid() bool { return v.dcel != nil && v.idx >= 0 }

// Equal reports whether two vertex handles refer to the same vertex.
func (v Vertex) Equal(o Vertex) bool { return v.dcel == o.dcel && v.idx == o.idx }

type vertexRecord struct {
	p    geom.Point
	typ  VertexType
	out  []int // outgoing half-edges, in cyclic rotation order
	descentEdge int // steepest-descent outgoing half-edge, or -1 for minima
	msVertex    int // index into MsComplex, or -1
}

// HalfEdge is a handle to a directed half-edge.
type HalfEdge struct {
	dcel *InputDcel
	idx  int
}

// ID returns the half-edge's arena index.
func (e HalfEdge) ID() int { return e.idx }

// IsValid reports whether the handle refers to an actual half-edge.
func (e HalfEdge) IsValid() bool { return e.dcel != nil && e.idx >= 0 }

type halfEdgeRecord struct {
	origin int
	dest   int // destination vertex, known at creation regardless of twin
	twin   int // -1 if this edge borders no other triangle (true mesh boundary)
	next   int // next half-edge around the incident triangle, -1 for bridges
	face   int // incident triangle index, -1 for mesh-boundary/bridge edges

	steepest      bool
	wedgeSteepest bool
	isBridge      bool // synthetic edge created by monkey-saddle splitting
	bridgeDown    bool // for bridges only: whether this direction counts as descending

	incidentMsFace int // -1 or MS-face id
	msHalfEdge     int // -1 or MS-half-edge id
}

// Face is a handle to a triangle.
type Face struct {
	dcel *InputDcel
	idx  int
}

// ID returns the triangle's arena index.
func (f Face) ID() int { return f.idx }

// IsValid reports whether the handle refers to an actual triangle.
func (f Face) IsValid() bool { return f.dcel != nil && f.idx >= 0 }

type faceRecord struct {
	edges [3]int // the three half-edges bounding this triangle, in order
}

// InputDcel is the triangulated half-edge mesh built by Build: one vertex
// per enclosed heightmap pixel, two triangles per enclosed unit grid square.
type InputDcel struct {
	verts []vertexRecord
	edges []halfEdgeRecord
	faces []faceRecord
}

// VertexCount returns the number of vertices in the mesh.
func (d *InputDcel) VertexCount() int { return len(d.verts) }

// HalfEdgeCount returns the number of half-edges in the mesh (including
// synthetic bridges created by monkey-saddle splitting).
func (d *InputDcel) HalfEdgeCount() int { return len(d.edges) }

// FaceCount returns the number of triangles in the mesh.
func (d *InputDcel) FaceCount() int { return len(d.faces) }

// Vertex returns a handle to the i-th vertex.
func (d *InputDcel) Vertex(i int) Vertex { return Vertex{dcel: d, idx: i} }

// HalfEdge returns a handle to the i-th half-edge.
func (d *InputDcel) HalfEdge(i int) HalfEdge { return HalfEdge{dcel: d, idx: i} }

// Face returns a handle to the i-th triangle.
func (d *InputDcel) Face(i int) Face { return Face{dcel: d, idx: i} }

// P returns the vertex's position.
func (v Vertex) P() geom.Point { return v.dcel.verts[v.idx].p }

// Type returns the vertex's classification.
func (v Vertex) Type() VertexType { return v.dcel.verts[v.idx].typ }

// Outgoing returns the vertex's outgoing half-edges in cyclic rotation
// order.
func (v Vertex) Outgoing() []HalfEdge {
	rec := v.dcel.verts[v.idx].out
	out := make([]HalfEdge, len(rec))
	for i, e := range rec {
		out[i] = HalfEdge{dcel: v.dcel, idx: e}
	}
	return out
}

// Degree returns the number of outgoing edges (equivalently, neighbors).
func (v Vertex) Degree() int { return len(v.dcel.verts[v.idx].out) }

// SteepestDescentEdge returns the vertex's unique steepest-descent outgoing
// half-edge, or an invalid handle if v is a minimum.
func (v Vertex) SteepestDescentEdge() HalfEdge {
	idx := v.dcel.verts[v.idx].descentEdge
	if idx < 0 {
		return HalfEdge{dcel: v.dcel, idx: -1}
	}
	return HalfEdge{dcel: v.dcel, idx: idx}
}

// MsVertex returns the index of the MS-complex vertex this DCEL vertex maps
// to, or -1 if it has not been assigned one (i.e. it is neither a minimum
// nor a saddle).
func (v Vertex) MsVertex() int { return v.dcel.verts[v.idx].msVertex }

// SetMsVertex records the MS-complex vertex this DCEL vertex maps to.
func (v Vertex) SetMsVertex(id int) { v.dcel.verts[v.idx].msVertex = id }

// Origin returns the half-edge's origin vertex.
func (e HalfEdge) Origin() Vertex { return Vertex{dcel: e.dcel, idx: e.dcel.edges[e.idx].origin} }

// Destination returns the half-edge's destination vertex.
func (e HalfEdge) Destination() Vertex { return Vertex{dcel: e.dcel, idx: e.dcel.edges[e.idx].dest} }

// Twin returns the half-edge's reverse edge, or an invalid handle if e lies
// on the true mesh boundary with no edge running the other way.
func (e HalfEdge) Twin() HalfEdge {
	t := e.dcel.edges[e.idx].twin
	return HalfEdge{dcel: e.dcel, idx: t}
}

// Next returns the next half-edge around e's incident triangle. Invalid for
// bridge edges, which belong to no triangle.
func (e HalfEdge) Next() HalfEdge {
	n := e.dcel.edges[e.idx].next
	return HalfEdge{dcel: e.dcel, idx: n}
}

// IncidentFace returns e's incident triangle, or an invalid handle if e is a
// mesh-boundary or bridge edge, or itself invalid.
func (e HalfEdge) IncidentFace() Face {
	if e.idx < 0 {
		return Face{dcel: e.dcel, idx: -1}
	}
	f := e.dcel.edges[e.idx].face
	return Face{dcel: e.dcel, idx: f}
}

// OppositeFace returns the triangle on the other side of e (i.e. e.Twin()'s
// incident face), or an invalid handle if there is none (e.g. e lies on the
// true mesh boundary and has no twin).
func (e HalfEdge) OppositeFace() Face {
	return e.Twin().IncidentFace()
}

// Steepest reports whether e is the unique steepest-descent edge out of its
// origin.
func (e HalfEdge) Steepest() bool { return e.dcel.edges[e.idx].steepest }

// WedgeSteepest reports whether e is the locally steepest edge within its
// down-wedge.
func (e HalfEdge) WedgeSteepest() bool { return e.dcel.edges[e.idx].wedgeSteepest }

// IsBridge reports whether e is a synthetic edge introduced by monkey-saddle
// splitting (shares its origin's and destination's coordinates with a real
// point, carries no triangle, and is classified by fiat rather than by
// gradient).
func (e HalfEdge) IsBridge() bool { return e.dcel.edges[e.idx].isBridge }

// IncidentMsFace returns the MS-face id this half-edge borders, or -1.
func (e HalfEdge) IncidentMsFace() int { return e.dcel.edges[e.idx].incidentMsFace }

// SetIncidentMsFace records the MS-face id this half-edge borders.
func (e HalfEdge) SetIncidentMsFace(id int) { e.dcel.edges[e.idx].incidentMsFace = id }

// MsHalfEdge returns the MS-complex half-edge id this edge's steepest-descent
// path is recorded on, or -1.
func (e HalfEdge) MsHalfEdge() int { return e.dcel.edges[e.idx].msHalfEdge }

// SetMsHalfEdge records the MS-complex half-edge id for this edge.
func (e HalfEdge) SetMsHalfEdge(id int) { e.dcel.edges[e.idx].msHalfEdge = id }

// Equal reports whether two half-edge handles refer to the same half-edge.
func (e HalfEdge) Equal(o HalfEdge) bool { return e.dcel == o.dcel && e.idx == o.idx }

// Triangle returns the three vertices bounding f, in winding order.
func (f Face) Triangle() [3]Vertex {
	var out [3]Vertex
	for i, eidx := range f.dcel.faces[f.idx].edges {
		out[i] = HalfEdge{dcel: f.dcel, idx: eidx}.Origin()
	}
	return out
}

// BoundaryEdges returns the three half-edges bounding f, in winding order.
func (f Face) BoundaryEdges() [3]HalfEdge {
	var out [3]HalfEdge
	for i, eidx := range f.dcel.faces[f.idx].edges {
		out[i] = HalfEdge{dcel: f.dcel, idx: eidx}
	}
	return out
}

// Equal reports whether two face handles refer to the same triangle.
func (f Face) Equal(o Face) bool { return f.dcel == o.dcel && f.idx == o.idx }
