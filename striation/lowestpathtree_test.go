package striation

import (
	"testing"

	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/mscomplex"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func twoPits(w, h int) *heightmap.HeightMap {
	hm := heightmap.New(w, h)
	c1x, c2x := w/3, 2*w/3
	cy := h / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d1 := (x-c1x)*(x-c1x) + (y-cy)*(y-cy)
			d2 := (x-c2x)*(x-c2x) + (y-cy)*(y-cy) + 1
			hm.Set(x, y, min(d1, d2))
		}
	}
	return hm
}

func buildComplex(t *testing.T, hm *heightmap.HeightMap) *mscomplex.MsComplex {
	t.Helper()
	d := dcel.Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	dcel.Classify(d, geom.DefaultUnits)
	dcel.MonkeySaddles(d, geom.DefaultUnits)
	mscomplex.Debug = true
	return mscomplex.NewCreator(d, geom.DefaultUnits, nil).Create()
}

func TestLowestPathTreeReachesSourceAndSink(t *testing.T) {
	m := buildComplex(t, twoPits(12, 7))
	source, sink := m.Source(), m.Sink()

	tree := NewLowestPathTree(m, source, sink, geom.DefaultUnits)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		toSource := tree.PathToSource(v)
		toSink := tree.PathToSink(v)

		cur := v
		for _, e := range toSource {
			if e.Origin().ID() != cur.ID() {
				t.Fatalf("path-to-source is not contiguous at vertex %d", cur.ID())
			}
			cur = e.Destination()
		}
		if v.ID() != source.ID() && cur.ID() != source.ID() {
			t.Errorf("vertex %d's path-to-source does not end at the source", v.ID())
		}

		cur = v
		for _, e := range toSink {
			if e.Origin().ID() != cur.ID() {
				t.Fatalf("path-to-sink is not contiguous at vertex %d", cur.ID())
			}
			cur = e.Destination()
		}
		if v.ID() != sink.ID() && cur.ID() != sink.ID() {
			t.Errorf("vertex %d's path-to-sink does not end at the sink", v.ID())
		}
	}
}

func TestLowestPathTreeSourceIsItsOwnRoot(t *testing.T) {
	m := buildComplex(t, twoPits(12, 7))
	source, sink := m.Source(), m.Sink()
	tree := NewLowestPathTree(m, source, sink, geom.DefaultUnits)

	if len(tree.PathToSource(source)) != 0 {
		t.Errorf("source's own path-to-source should be empty")
	}
	if len(tree.PathToSink(sink)) != 0 {
		t.Errorf("sink's own path-to-sink should be empty")
	}
}
