package dcel

import (
	"testing"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
)

func TestDescentPathReachesAMinimum(t *testing.T) {
	hm := heightmap.New(5, 5)
	for y := 0; y < hm.Height(); y++ {
		for x := 0; x < hm.Width(); x++ {
			hm.Set(x, y, (x-2)*(x-2)+(y-2)*(y-2)) // bowl, minimum at the center
		}
	}
	d := Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	Classify(d, geom.DefaultUnits)
	MonkeySaddles(d, geom.DefaultUnits)

	for i := 0; i < d.VertexCount(); i++ {
		path := DescentPath(d, d.Vertex(i))
		if len(path) == 0 {
			if d.Vertex(i).Type() != Minimum {
				t.Errorf("vertex %d has an empty descent path but is not a Minimum (%v)", i, d.Vertex(i).Type())
			}
			continue
		}
		last := path[len(path)-1].Destination()
		if last.Type() != Minimum {
			t.Errorf("descent path from vertex %d ends at a %v, not a Minimum", i, last.Type())
		}
		// Elevation strictly decreases along the path.
		prevH := d.Vertex(i).P().H
		for _, e := range path {
			h := e.Destination().P().H
			if e.IsBridge() {
				continue // bridges are classified by fiat, not by real elevation
			}
			if h >= prevH {
				t.Errorf("descent path from vertex %d does not strictly decrease in elevation", i)
			}
			prevH = h
		}
	}
}
