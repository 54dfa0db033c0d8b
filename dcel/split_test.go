package dcel

import (
	"testing"

	"github.com/tue-alga/topotide/geom"
)

// starDcel builds a hub-and-spoke mesh: vertex 0 at the center, with the
// given heights for its n spokes (no triangles, no twins — just enough
// structure for wedge classification and splitting to operate on).
func starDcel(centerH int, spokeHeights []int) *InputDcel {
	d := &InputDcel{}
	d.verts = append(d.verts, vertexRecord{
		p:           geom.Point{X: 0, Y: 0, H: centerH},
		descentEdge: -1, msVertex: -1,
	})
	var out []int
	for i, h := range spokeHeights {
		vid := len(d.verts)
		d.verts = append(d.verts, vertexRecord{
			p:           geom.Point{X: 10 * (i + 1), Y: 10 * (i + 1), H: h},
			descentEdge: -1, msVertex: -1,
		})
		eid := len(d.edges)
		d.edges = append(d.edges, halfEdgeRecord{
			origin: 0, dest: vid, twin: -1, next: -1, face: -1,
			incidentMsFace: -1, msHalfEdge: -1,
		})
		out = append(out, eid)
	}
	d.verts[0].out = out
	return d
}

func TestMonkeySaddleSplitRemovesExcessDownWedges(t *testing.T) {
	// center height 5; spokes alternate low (down from center) and high
	// (up from center): 3 down-wedges, a genuine monkey saddle.
	d := starDcel(5, []int{1, 9, 2, 9, 3, 9})
	Classify(d, geom.DefaultUnits)

	if got := DownWedgeCount(d, 0, geom.DefaultUnits); got < 3 {
		t.Fatalf("test setup did not produce a monkey saddle: down-wedge count = %d", got)
	}

	MonkeySaddles(d, geom.DefaultUnits)

	for v := 0; v < d.VertexCount(); v++ {
		if n := DownWedgeCount(d, v, geom.DefaultUnits); n > 2 {
			t.Errorf("vertex %d has %d down-wedges after splitting, want <= 2", v, n)
		}
	}
}

func TestMonkeySaddleSplitProducesOneSaddlePerExtraDownWedge(t *testing.T) {
	// d=4 down-wedges needs d-2=2 splits, producing 2 new simple saddles
	// alongside the original (now also simple).
	d := starDcel(5, []int{1, 9, 2, 9, 3, 9, 4, 9})
	Classify(d, geom.DefaultUnits)
	before := d.VertexCount()

	MonkeySaddles(d, geom.DefaultUnits)

	wantNewVertices := 2
	if got := d.VertexCount() - before; got != wantNewVertices {
		t.Errorf("created %d new vertices, want %d", got, wantNewVertices)
	}
	// The spokes (vertices 1..before-1) have no outgoing edges of their own;
	// only the original saddle and the split-off vertices are saddles.
	saddles := []int{0}
	for v := before; v < d.VertexCount(); v++ {
		saddles = append(saddles, v)
	}
	for _, v := range saddles {
		if n := DownWedgeCount(d, v, geom.DefaultUnits); n != 2 {
			t.Errorf("vertex %d has %d down-wedges, want exactly 2 after splitting a degree-4 saddle", v, n)
		}
	}
}

func TestMonkeySaddleSplitSharesCoordinates(t *testing.T) {
	d := starDcel(5, []int{1, 9, 2, 9, 3, 9})
	Classify(d, geom.DefaultUnits)
	originalVertexCount := d.VertexCount()

	MonkeySaddles(d, geom.DefaultUnits)

	for v := originalVertexCount; v < d.VertexCount(); v++ {
		p := d.Vertex(v).P()
		if p.X != 0 || p.Y != 0 || p.H != 5 {
			t.Errorf("split vertex %d has coordinates %v, want the original saddle's (0,0,5)", v, p)
		}
	}
}

func TestSimpleSaddleIsUnaffected(t *testing.T) {
	d := starDcel(5, []int{1, 9, 2, 9}) // 2 down-wedges: already a simple saddle
	Classify(d, geom.DefaultUnits)
	before := d.VertexCount()

	MonkeySaddles(d, geom.DefaultUnits)

	if d.VertexCount() != before {
		t.Errorf("VertexCount() changed from %d to %d for an already-simple saddle", before, d.VertexCount())
	}
	if d.Vertex(0).Type() != Saddle {
		t.Errorf("Type() = %v, want Saddle", d.Vertex(0).Type())
	}
}
