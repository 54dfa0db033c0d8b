package dcel

import (
	"testing"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
)

func TestBuildTriangleCount(t *testing.T) {
	hm := heightmap.New(4, 3)
	for y := 0; y < hm.Height(); y++ {
		for x := 0; x < hm.Width(); x++ {
			hm.Set(x, y, x+y)
		}
	}
	d := Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)

	wantFaces := 2 * (hm.Width() - 1) * (hm.Height() - 1)
	if got := d.FaceCount(); got != wantFaces {
		t.Errorf("FaceCount() = %d, want %d", got, wantFaces)
	}
	if got := d.VertexCount(); got != hm.Width()*hm.Height() {
		t.Errorf("VertexCount() = %d, want %d", got, hm.Width()*hm.Height())
	}
}

func TestBuildEveryTriangleHasThreeDistinctVertices(t *testing.T) {
	hm := heightmap.New(3, 3)
	d := Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	for i := 0; i < d.FaceCount(); i++ {
		tri := d.Face(i).Triangle()
		if tri[0].ID() == tri[1].ID() || tri[1].ID() == tri[2].ID() || tri[0].ID() == tri[2].ID() {
			t.Errorf("face %d has repeated vertices: %v", i, tri)
		}
	}
}

func TestBuildTwinsAreMutual(t *testing.T) {
	hm := heightmap.New(3, 4)
	d := Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	for i := 0; i < d.HalfEdgeCount(); i++ {
		e := d.HalfEdge(i)
		twin := e.Twin()
		if !twin.IsValid() {
			continue
		}
		if !twin.Twin().Equal(e) {
			t.Errorf("half-edge %d's twin is not mutual", i)
		}
		if !twin.Origin().Equal(e.Destination()) || !twin.Destination().Equal(e.Origin()) {
			t.Errorf("half-edge %d's twin does not run the opposite direction", i)
		}
	}
}

func TestDefaultBoundarySentinelHeights(t *testing.T) {
	hm := heightmap.New(3, 3)
	d := Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	for i := 0; i < d.VertexCount(); i++ {
		v := d.Vertex(i)
		p := v.P()
		switch {
		case p.X == 0:
			if p.H != NegInf {
				t.Errorf("vertex %v on source should have H=NegInf, got %d", p, p.H)
			}
		case p.X == hm.Width()-1:
			if p.H != PosInf {
				t.Errorf("vertex %v on sink should have H=PosInf, got %d", p, p.H)
			}
		case p.Y == 0 || p.Y == hm.Height()-1:
			if p.H != LowSentinel {
				t.Errorf("vertex %v on top/bottom should have H=LowSentinel, got %d", p, p.H)
			}
		}
	}
}
