package network

import (
	"testing"

	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/mscomplex"
)

func flatPlateauWithOnePit() *heightmap.HeightMap {
	hm := heightmap.New(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			hm.Set(x, y, 10)
		}
	}
	hm.Set(2, 2, 0)
	return hm
}

// Scenario 1 of the testable properties: a flat plateau with one pit has a
// single minimum, so every emitted edge must carry the same δ-value as every
// other (there is exactly one basin, so persistence never merges anything
// away below it).
func TestFromMsComplexSingleBasin(t *testing.T) {
	hm := flatPlateauWithOnePit()
	d := dcel.Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	dcel.Classify(d, geom.DefaultUnits)
	dcel.MonkeySaddles(d, geom.DefaultUnits)
	m := mscomplex.NewCreator(d, geom.DefaultUnits, nil).Create()

	g := FromMsComplex(m, nil)

	if g.VertexCount() != m.VertexCount() {
		t.Errorf("VertexCount() = %d, want %d (one per MS-vertex)", g.VertexCount(), m.VertexCount())
	}

	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Delta != 0 {
			t.Errorf("edge %d has delta %v, want 0 (single-basin complex never merges)", i, g.Edge(i).Delta)
		}
		if len(g.Edge(i).Path) < 2 {
			t.Errorf("edge %d has a degenerate path of length %d", i, len(g.Edge(i).Path))
		}
	}
}
