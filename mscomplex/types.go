// Package mscomplex builds the Morse-Smale complex of a triangulated
// heightmap: one vertex per minimum and saddle of the underlying InputDcel,
// one edge per maximal steepest-descent path between them, and one face per
// region of uniform flow direction (a "basin"), each carrying the set of
// triangles it covers, its local maximum, the minimum its runoff ultimately
// reaches, and a sand function giving the volume of terrain above any given
// elevation.
package mscomplex

import (
	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/piecewise"
)

// Vertex is a handle to an MS-complex vertex (always a minimum or a saddle
// of the underlying InputDcel).
type Vertex struct {
	ms  *MsComplex
	idx int
}

// ID returns the vertex's arena index.
func (v Vertex) ID() int { return v.idx }

// IsValid reports whether the handle refers to an actual vertex.
func (v Vertex) IsValid() bool { return v.ms != nil && v.idx >= 0 }

// Equal reports whether two vertex handles refer to the same vertex.
func (v Vertex) Equal(o Vertex) bool { return v.ms == o.ms && v.idx == o.idx }

type vertexRecord struct {
	p          geom.Point
	kind       dcel.VertexType
	dcelVertex dcel.Vertex
	outgoing   int
}

// HalfEdge is a handle to a directed MS-complex edge, always running between
// a minimum and a saddle.
type HalfEdge struct {
	ms  *MsComplex
	idx int
}

// ID returns the half-edge's arena index.
func (e HalfEdge) ID() int { return e.idx }

// IsValid reports whether the handle refers to an actual half-edge.
func (e HalfEdge) IsValid() bool { return e.ms != nil && e.idx >= 0 }

type halfEdgeRecord struct {
	origin, dest int
	twin, next   int
	face         int
	dcelPath     []dcel.HalfEdge // the steepest-descent path this edge represents, running in the s->m direction

	cancelled bool    // set by a Simplifier when this edge has been contracted away
	delta     float64 // the persistence value at which this edge is contracted
}

// Face is a handle to an MS-face: a basin of uniform flow, bounded by a
// cycle of minimum/saddle edges.
type Face struct {
	ms  *MsComplex
	idx int
}

// ID returns the face's arena index.
func (f Face) ID() int { return f.idx }

// IsValid reports whether the handle refers to an actual face.
func (f Face) IsValid() bool { return f.ms != nil && f.idx >= 0 }

type faceRecord struct {
	boundary         int
	triangles        []dcel.Face
	maximum          dcel.Vertex
	persistence      float64
	lowestPathVertex int // MS-vertex id of the minimum the face's maximum ultimately drains to, or -1
	volumeAbove      piecewise.Function
	mergeEdge        int // MS half-edge id through which this face was absorbed into its survivor, or -1
}

// MsComplex is the Morse-Smale complex built from an InputDcel by a Creator.
type MsComplex struct {
	verts []vertexRecord
	edges []halfEdgeRecord
	faces []faceRecord
}

// VertexCount returns the number of vertices (minima + saddles).
func (m *MsComplex) VertexCount() int { return len(m.verts) }

// HalfEdgeCount returns the number of half-edges.
func (m *MsComplex) HalfEdgeCount() int { return len(m.edges) }

// FaceCount returns the number of faces.
func (m *MsComplex) FaceCount() int { return len(m.faces) }

// Vertex returns a handle to the i-th vertex.
func (m *MsComplex) Vertex(i int) Vertex { return Vertex{ms: m, idx: i} }

// HalfEdge returns a handle to the i-th half-edge.
func (m *MsComplex) HalfEdge(i int) HalfEdge { return HalfEdge{ms: m, idx: i} }

// Face returns a handle to the i-th face.
func (m *MsComplex) Face(i int) Face { return Face{ms: m, idx: i} }

// Source returns the MS-vertex sitting on the DCEL's source sentinel (the
// global minimum every flow path eventually reaches), identified by its
// pinned-below-every-elevation height. Panics if no such vertex exists,
// since every InputDcel built with a boundary carries exactly one.
func (m *MsComplex) Source() Vertex {
	for i, v := range m.verts {
		if v.p.H == dcel.NegInf {
			return Vertex{ms: m, idx: i}
		}
	}
	panic("mscomplex: no source vertex")
}

// Sink returns the MS-vertex sitting on the DCEL's sink sentinel (the
// global maximum), identified by its pinned-above-every-elevation height.
func (m *MsComplex) Sink() Vertex {
	for i, v := range m.verts {
		if v.p.H == dcel.PosInf {
			return Vertex{ms: m, idx: i}
		}
	}
	panic("mscomplex: no sink vertex")
}

func (m *MsComplex) addVertex(p geom.Point, kind dcel.VertexType, dv dcel.Vertex) Vertex {
	idx := len(m.verts)
	m.verts = append(m.verts, vertexRecord{p: p, kind: kind, dcelVertex: dv, outgoing: -1})
	return Vertex{ms: m, idx: idx}
}

// addEdge creates a mutual pair of half-edges between from and to, returning
// the from->to direction. Next pointers are left unset (-1) for the caller
// to thread.
func (m *MsComplex) addEdge(from, to Vertex) HalfEdge {
	fwd := len(m.edges)
	bwd := fwd + 1
	m.edges = append(m.edges,
		halfEdgeRecord{origin: from.idx, dest: to.idx, twin: bwd, next: -1, face: -1},
		halfEdgeRecord{origin: to.idx, dest: from.idx, twin: fwd, next: -1, face: -1},
	)
	return HalfEdge{ms: m, idx: fwd}
}

// P returns the vertex's position (shared with its underlying DCEL vertex).
func (v Vertex) P() geom.Point { return v.ms.verts[v.idx].p }

// Kind returns Minimum or Saddle.
func (v Vertex) Kind() dcel.VertexType { return v.ms.verts[v.idx].kind }

// DcelVertex returns the InputDcel vertex this MS-vertex was created from.
func (v Vertex) DcelVertex() dcel.Vertex { return v.ms.verts[v.idx].dcelVertex }

// Outgoing returns one of v's outgoing half-edges (the canonical start of
// its rotation), or an invalid handle if none has been assigned yet.
func (v Vertex) Outgoing() HalfEdge {
	idx := v.ms.verts[v.idx].outgoing
	return HalfEdge{ms: v.ms, idx: idx}
}

// SetOutgoing records v's canonical outgoing half-edge.
func (v Vertex) SetOutgoing(e HalfEdge) { v.ms.verts[v.idx].outgoing = e.idx }

// AllOutgoing returns every outgoing half-edge of v, in rotation order,
// found by repeatedly following NextOutgoing from v's canonical outgoing
// edge until it returns to the start.
func (v Vertex) AllOutgoing() []HalfEdge {
	start := v.Outgoing()
	if !start.IsValid() {
		return nil
	}
	out := []HalfEdge{start}
	for e := start.NextOutgoing(); e.idx != start.idx; e = e.NextOutgoing() {
		out = append(out, e)
	}
	return out
}

// Origin returns e's origin vertex.
func (e HalfEdge) Origin() Vertex { return Vertex{ms: e.ms, idx: e.ms.edges[e.idx].origin} }

// Destination returns e's destination vertex.
func (e HalfEdge) Destination() Vertex { return Vertex{ms: e.ms, idx: e.ms.edges[e.idx].dest} }

// Twin returns e's reverse edge.
func (e HalfEdge) Twin() HalfEdge { return HalfEdge{ms: e.ms, idx: e.ms.edges[e.idx].twin} }

// Next returns the next half-edge around e's incident face.
func (e HalfEdge) Next() HalfEdge { return HalfEdge{ms: e.ms, idx: e.ms.edges[e.idx].next} }

// SetNext records the next half-edge around e's incident face.
func (e HalfEdge) SetNext(n HalfEdge) { e.ms.edges[e.idx].next = n.idx }

// NextOutgoing returns the next outgoing half-edge around e's origin,
// following the standard half-edge rotation formula e.Twin().Next().
func (e HalfEdge) NextOutgoing() HalfEdge { return e.Twin().Next() }

// IncidentFace returns e's incident face, or an invalid handle before
// addFaces has run.
func (e HalfEdge) IncidentFace() Face { return Face{ms: e.ms, idx: e.ms.edges[e.idx].face} }

// OppositeFace returns the face on the other side of e.
func (e HalfEdge) OppositeFace() Face { return e.Twin().IncidentFace() }

// DcelPath returns the InputDcel steepest-descent path this half-edge
// represents (set on the saddle->minimum direction only).
func (e HalfEdge) DcelPath() []dcel.HalfEdge { return e.ms.edges[e.idx].dcelPath }

// SetDcelPath records the InputDcel path this half-edge represents.
func (e HalfEdge) SetDcelPath(p []dcel.HalfEdge) { e.ms.edges[e.idx].dcelPath = p }

// Equal reports whether two half-edge handles refer to the same half-edge.
func (e HalfEdge) Equal(o HalfEdge) bool { return e.ms == o.ms && e.idx == o.idx }

// Cancelled reports whether a Simplifier has contracted this edge away.
func (e HalfEdge) Cancelled() bool { return e.ms.edges[e.idx].cancelled }

// SetCancelled marks e (and only e, not its twin) as contracted away.
func (e HalfEdge) SetCancelled(c bool) { e.ms.edges[e.idx].cancelled = c }

// Delta returns the persistence value at which this edge is contracted by
// simplification, i.e. the δ-value reported on the corresponding NetworkGraph
// edge.
func (e HalfEdge) Delta() float64 { return e.ms.edges[e.idx].delta }

// SetDelta records e's δ-value.
func (e HalfEdge) SetDelta(delta float64) { e.ms.edges[e.idx].delta = delta }

// Boundary returns one half-edge on f's boundary cycle.
func (f Face) Boundary() HalfEdge { return HalfEdge{ms: f.ms, idx: f.ms.faces[f.idx].boundary} }

// Triangles returns the InputDcel triangles this MS-face covers.
func (f Face) Triangles() []dcel.Face { return f.ms.faces[f.idx].triangles }

// Maximum returns the InputDcel vertex of f's local maximum.
func (f Face) Maximum() dcel.Vertex { return f.ms.faces[f.idx].maximum }

// Persistence returns f's persistence value: the elevation drop between its
// maximum and the saddle at which it merges into a higher-maximum face, or 0
// if f never merges (the single globally-persistent face).
func (f Face) Persistence() float64 { return f.ms.faces[f.idx].persistence }

// LowestPathVertex returns the MS-vertex id of the minimum that f's maximum
// ultimately drains to via steepest descent.
func (f Face) LowestPathVertex() int { return f.ms.faces[f.idx].lowestPathVertex }

// VolumeAbove returns f's sand function: the volume of terrain in f lying
// above a given elevation, as a function of that elevation.
func (f Face) VolumeAbove() piecewise.Function { return f.ms.faces[f.idx].volumeAbove }

// Equal reports whether two face handles refer to the same face.
func (f Face) Equal(o Face) bool { return f.ms == o.ms && f.idx == o.idx }

// MergeEdge returns the MS half-edge through which f was absorbed into its
// surviving neighbor during persistence computation, or an invalid handle if
// f is the one face that never merges.
func (f Face) MergeEdge() HalfEdge {
	idx := f.ms.faces[f.idx].mergeEdge
	return HalfEdge{ms: f.ms, idx: idx}
}

// Clone returns a deep copy of m, safe to mutate independently (e.g. by a
// Simplifier, which operates on a logical clone rather than the original
// complex).
func (m *MsComplex) Clone() *MsComplex {
	out := &MsComplex{
		verts: make([]vertexRecord, len(m.verts)),
		edges: make([]halfEdgeRecord, len(m.edges)),
		faces: make([]faceRecord, len(m.faces)),
	}
	copy(out.verts, m.verts)
	copy(out.edges, m.edges)
	copy(out.faces, m.faces)
	return out
}

// Compact rebuilds dense vertex, half-edge and face arrays: vertices with no
// remaining (uncancelled) incident edge, half-edges marked cancelled, and
// faces no longer referenced by any remaining half-edge are dropped, and
// every surviving index is renumbered to be contiguous from zero. It is
// called after a Simplifier has finished marking contracted edges.
func (m *MsComplex) Compact() {
	keepEdge := make([]bool, len(m.edges))
	for i, e := range m.edges {
		keepEdge[i] = !e.cancelled
	}

	vertexHasEdge := make([]bool, len(m.verts))
	for i, e := range m.edges {
		if keepEdge[i] {
			vertexHasEdge[e.origin] = true
			vertexHasEdge[e.dest] = true
		}
	}

	newVertexID := make([]int, len(m.verts))
	var verts []vertexRecord
	for i, keep := range vertexHasEdge {
		if !keep {
			newVertexID[i] = -1
			continue
		}
		newVertexID[i] = len(verts)
		verts = append(verts, m.verts[i])
	}

	newEdgeID := make([]int, len(m.edges))
	var edges []halfEdgeRecord
	for i, keep := range keepEdge {
		if !keep {
			newEdgeID[i] = -1
			continue
		}
		newEdgeID[i] = len(edges)
		edges = append(edges, m.edges[i])
	}

	faceUsed := make([]bool, len(m.faces))
	for i, e := range m.edges {
		if keepEdge[i] {
			faceUsed[e.face] = true
		}
	}
	newFaceID := make([]int, len(m.faces))
	var faces []faceRecord
	for i, used := range faceUsed {
		if !used {
			newFaceID[i] = -1
			continue
		}
		newFaceID[i] = len(faces)
		faces = append(faces, m.faces[i])
	}

	for i := range verts {
		verts[i].outgoing = -1
	}
	for i := range edges {
		edges[i].origin = newVertexID[edges[i].origin]
		edges[i].dest = newVertexID[edges[i].dest]
		if verts[edges[i].origin].outgoing < 0 {
			verts[edges[i].origin].outgoing = i
		}
		edges[i].twin = newEdgeID[edges[i].twin]
		if edges[i].next >= 0 {
			edges[i].next = newEdgeID[edges[i].next]
		}
		edges[i].face = newFaceID[edges[i].face]
	}
	for i := range faces {
		faces[i].boundary = newEdgeID[faces[i].boundary]
		if faces[i].mergeEdge >= 0 {
			faces[i].mergeEdge = newEdgeID[faces[i].mergeEdge]
		}
	}

	m.verts = verts
	m.edges = edges
	m.faces = faces
}
