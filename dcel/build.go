package dcel

import (
	"math"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
)

// Build triangulates the interior of b within m: every unit grid square with
// all four corners inside the boundary is split along its NW-SE diagonal
// into two triangles, giving a manifold mesh whose vertices are exactly the
// enclosed pixels.
//
// Vertices on b's source/sink/top/bottom paths get the sentinel elevations
// described on NegInf, PosInf and LowSentinel rather than their real heightmap
// value, so that descent always flows from source to sink regardless of the
// underlying terrain.
func Build(m *heightmap.HeightMap, b heightmap.Boundary, u geom.Units) *InputDcel {
	inc := newInclusionTest(b)

	d := &InputDcel{}
	vertexIndex := make(map[heightmap.Coordinate]int, m.Width()*m.Height())

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := heightmap.Coordinate{X: x, Y: y}
			if !inc.included(c) {
				continue
			}
			h := boundaryHeight(c, b, m)
			vertexIndex[c] = len(d.verts)
			d.verts = append(d.verts, vertexRecord{
				p:           geom.Point{X: x, Y: y, H: h},
				descentEdge: -1,
				msVertex:    -1,
			})
		}
	}

	type halfEdgeKey struct{ from, to int }
	edgeIndex := make(map[halfEdgeKey]int)

	addHalfEdge := func(from, to int) int {
		idx := len(d.edges)
		d.edges = append(d.edges, halfEdgeRecord{
			origin:         from,
			dest:           to,
			twin:           -1,
			next:           -1,
			face:           -1,
			incidentMsFace: -1,
			msHalfEdge:     -1,
		})
		edgeIndex[halfEdgeKey{from, to}] = idx
		return idx
	}

	addTriangle := func(a, b, c int) {
		e0 := addHalfEdge(a, b)
		e1 := addHalfEdge(b, c)
		e2 := addHalfEdge(c, a)
		d.edges[e0].next = e1
		d.edges[e1].next = e2
		d.edges[e2].next = e0
		fidx := len(d.faces)
		d.faces = append(d.faces, faceRecord{edges: [3]int{e0, e1, e2}})
		d.edges[e0].face = fidx
		d.edges[e1].face = fidx
		d.edges[e2].face = fidx
	}

	for y := 0; y < m.Height()-1; y++ {
		for x := 0; x < m.Width()-1; x++ {
			nw := heightmap.Coordinate{X: x, Y: y}
			ne := heightmap.Coordinate{X: x + 1, Y: y}
			sw := heightmap.Coordinate{X: x, Y: y + 1}
			se := heightmap.Coordinate{X: x + 1, Y: y + 1}
			if !inc.included(nw) || !inc.included(ne) || !inc.included(sw) || !inc.included(se) {
				continue
			}
			iNW, iNE, iSW, iSE := vertexIndex[nw], vertexIndex[ne], vertexIndex[sw], vertexIndex[se]
			addTriangle(iNW, iNE, iSE)
			addTriangle(iNW, iSE, iSW)
		}
	}

	// Link twins: every directed half-edge (from,to) pairs with (to,from) if
	// the latter exists; edges with no such partner lie on the true mesh
	// boundary and keep twin == -1.
	for key, idx := range edgeIndex {
		rev := halfEdgeKey{key.to, key.from}
		if other, ok := edgeIndex[rev]; ok {
			d.edges[idx].twin = other
		}
	}

	buildOutgoingOrder(d)
	return d
}

// buildOutgoingOrder populates each vertex's cyclic rotation order by
// sorting its incident half-edges by the geometric angle of their direction.
// This sidesteps walking the mesh via twin/next (which a pointer-based DCEL
// would use) since every vertex here carries real 2D coordinates to sort by
// directly — monkey-saddle splitting later splices new vertices' orders
// explicitly rather than re-deriving them this way.
func buildOutgoingOrder(d *InputDcel) {
	byVertex := make([][]int, len(d.verts))
	for i, e := range d.edges {
		byVertex[e.origin] = append(byVertex[e.origin], i)
	}
	for v, edges := range byVertex {
		angle := func(e int) float64 {
			o := d.verts[d.edges[e].origin].p
			dp := d.verts[d.edges[e].dest].p
			return math.Atan2(float64(dp.Y-o.Y), float64(dp.X-o.X))
		}
		sortByAngle(edges, angle)
		d.verts[v].out = edges
	}
}

func sortByAngle(edges []int, angle func(int) float64) {
	for i := 1; i < len(edges); i++ {
		j := i
		for j > 0 && angle(edges[j-1]) > angle(edges[j]) {
			edges[j-1], edges[j] = edges[j], edges[j-1]
			j--
		}
	}
}

func boundaryHeight(c heightmap.Coordinate, b heightmap.Boundary, m *heightmap.HeightMap) int {
	if onPath(c, b.Source) {
		return NegInf
	}
	if onPath(c, b.Sink) {
		return PosInf
	}
	if onPath(c, b.Top) || onPath(c, b.Bottom) {
		return LowSentinel
	}
	return m.ElevationAt(c.X, c.Y)
}

func onPath(c heightmap.Coordinate, p heightmap.Path) bool {
	for _, q := range p.Points {
		if q == c {
			return true
		}
	}
	return false
}

// inclusionTest decides which grid points lie within a boundary's enclosed
// region: either directly on one of its four paths, or strictly inside the
// closed polygon those paths trace out together.
//
// This is an implementation choice, not a spec invariant: the boundary's
// interior is defined informally as "the area the four paths enclose", and a
// shifted-center even-odd point-in-polygon test is a standard, simple way to
// evaluate that for the rectilinear polygons boundaries describe in
// practice.
type inclusionTest struct {
	onBoundary map[heightmap.Coordinate]bool
	polygon    []heightmap.Coordinate
}

func newInclusionTest(b heightmap.Boundary) inclusionTest {
	onBoundary := make(map[heightmap.Coordinate]bool)
	for _, p := range []heightmap.Path{b.Source, b.Top, b.Sink, b.Bottom} {
		for _, c := range p.Points {
			onBoundary[c] = true
		}
	}

	// source.Start -> source.End -> (bottom) -> sink.End -> (reverse sink)
	// -> sink.Start -> (reverse top) -> source.Start, one closed loop.
	var polygon []heightmap.Coordinate
	polygon = append(polygon, b.Source.Points...)
	polygon = append(polygon, b.Bottom.Points...)
	polygon = append(polygon, reversed(b.Sink.Points)...)
	polygon = append(polygon, reversed(b.Top.Points)...)

	return inclusionTest{onBoundary: onBoundary, polygon: polygon}
}

func reversed(cs []heightmap.Coordinate) []heightmap.Coordinate {
	out := make([]heightmap.Coordinate, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

func (t inclusionTest) included(c heightmap.Coordinate) bool {
	if t.onBoundary[c] {
		return true
	}
	return t.pointInPolygon(float64(c.X)+0.5, float64(c.Y)+0.5)
}

func (t inclusionTest) pointInPolygon(x, y float64) bool {
	inside := false
	n := len(t.polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := t.polygon[i], t.polygon[j]
		yi, yj := float64(pi.Y), float64(pj.Y)
		if (yi > y) != (yj > y) {
			xi, xj := float64(pi.X), float64(pj.X)
			xIntersect := xi + (y-yi)/(yj-yi)*(xj-xi)
			if x < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
