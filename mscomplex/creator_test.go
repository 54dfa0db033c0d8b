package mscomplex

import (
	"testing"

	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
)

func buildComplex(t *testing.T, hm *heightmap.HeightMap) (*dcel.InputDcel, *MsComplex) {
	t.Helper()
	d := dcel.Build(hm, hm.DefaultBoundary(), geom.DefaultUnits)
	dcel.Classify(d, geom.DefaultUnits)
	dcel.MonkeySaddles(d, geom.DefaultUnits)
	Debug = true
	m := NewCreator(d, geom.DefaultUnits, nil).Create()
	return d, m
}

func bowl(w, h int) *heightmap.HeightMap {
	hm := heightmap.New(w, h)
	cx, cy := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hm.Set(x, y, (x-cx)*(x-cx)+(y-cy)*(y-cy))
		}
	}
	return hm
}

func TestTriangleCountInvariant(t *testing.T) {
	d, m := buildComplex(t, bowl(6, 5))

	sum := 0
	for i := 0; i < m.FaceCount(); i++ {
		sum += len(m.Face(i).Triangles())
	}
	if sum != d.FaceCount() {
		t.Errorf("MS-face triangles sum to %d, want %d (total DCEL triangles)", sum, d.FaceCount())
	}

	// Every DCEL triangle must appear in exactly one MS-face.
	seen := make(map[int]int)
	for i := 0; i < m.FaceCount(); i++ {
		for _, tri := range m.Face(i).Triangles() {
			seen[tri.ID()]++
		}
	}
	for i := 0; i < d.FaceCount(); i++ {
		if seen[i] != 1 {
			t.Errorf("DCEL triangle %d appears in %d MS-faces, want exactly 1", i, seen[i])
		}
	}
}

func TestEulerInvariant(t *testing.T) {
	_, m := buildComplex(t, bowl(6, 5))

	v := m.VertexCount()
	e := m.HalfEdgeCount() / 2
	f := m.FaceCount()
	if got := v - e + f; got != 2 {
		t.Errorf("V - E + F = %d, want 2 (V=%d E=%d F=%d)", got, v, e, f)
	}
}

func TestSingleZeroPersistenceFace(t *testing.T) {
	_, m := buildComplex(t, bowl(6, 5))

	zeroCount := 0
	for i := 0; i < m.FaceCount(); i++ {
		if m.Face(i).Persistence() == 0 {
			zeroCount++
		}
	}
	if zeroCount != 1 {
		t.Errorf("%d faces have zero persistence, want exactly 1 (the globally surviving basin)", zeroCount)
	}
}

func TestEveryFaceHasAMaximumAndALowestPathVertex(t *testing.T) {
	_, m := buildComplex(t, bowl(6, 5))

	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		if !f.Maximum().IsValid() {
			t.Errorf("face %d has no maximum", i)
		}
		lpv := f.LowestPathVertex()
		if lpv < 0 || lpv >= m.VertexCount() {
			t.Errorf("face %d has invalid lowestPathVertex %d", i, lpv)
		}
		if m.Vertex(lpv).Kind() != dcel.Minimum {
			t.Errorf("face %d's lowestPathVertex %d is not a minimum", i, lpv)
		}
	}
}

// singleSaddleTwoPits is the literal DEM from the single-saddle testable
// scenario: rows of elevation 9 above and below a middle row 5 5 0 5 5,
// whose single elevation-0 cell sits between two elevation-5 cells that
// form the saddle candidates.
func singleSaddleTwoPits() *heightmap.HeightMap {
	return heightmap.FromGrid([][]int{
		{9, 9, 9, 9, 9},
		{5, 5, 0, 5, 5},
		{9, 9, 9, 9, 9},
	})
}

func TestSingleSaddleBetweenTwoPits(t *testing.T) {
	d, m := buildComplex(t, singleSaddleTwoPits())

	minima := 0
	for i := 0; i < d.VertexCount(); i++ {
		if d.Vertex(i).Type() == dcel.Minimum {
			minima++
		}
	}
	if minima != 2 {
		t.Errorf("minima = %d, want 2", minima)
	}

	saddles := 0
	for i := 0; i < d.VertexCount(); i++ {
		if d.Vertex(i).Type() == dcel.Saddle {
			saddles++
		}
	}
	if saddles < 1 {
		t.Fatalf("saddles = %d, want at least 1", saddles)
	}

	foundPersistence5 := false
	for i := 0; i < m.FaceCount(); i++ {
		if m.Face(i).Persistence() == 5 {
			foundPersistence5 = true
		}
	}
	if !foundPersistence5 {
		t.Errorf("no MS-face has persistence 5 (saddle height 5 cancelling the elevation-0 pit)")
	}
}

func TestVertexCountMatchesMinimaAndSaddles(t *testing.T) {
	d, m := buildComplex(t, bowl(6, 5))

	want := 0
	for i := 0; i < d.VertexCount(); i++ {
		typ := d.Vertex(i).Type()
		if typ == dcel.Minimum || typ == dcel.Saddle {
			want++
		}
	}
	if m.VertexCount() != want {
		t.Errorf("VertexCount() = %d, want %d (minima + saddles in the DCEL)", m.VertexCount(), want)
	}
}
