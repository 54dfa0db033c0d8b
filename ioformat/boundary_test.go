package ioformat

import (
	"strings"
	"testing"

	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/topoerr"
)

// smallHeightMap returns a 4x3 heightmap, just large enough to host a
// rectangular boundary with a couple of interior bends.
func smallHeightMap() *heightmap.HeightMap {
	return heightmap.New(4, 3)
}

func TestReadBoundaryParsesRectangle(t *testing.T) {
	hm := smallHeightMap()
	// source: left column (0,0)-(0,2); sink: right column (3,0)-(3,2);
	// top: (0,0)-(3,0); bottom: (0,2)-(3,2).
	input := `3 3 4 4
0 0 0 1 0 2
3 0 3 1 3 2
0 0 1 0 2 0 3 0
0 2 1 2 2 2 3 2
`
	b, err := ReadBoundary(strings.NewReader(input), hm)
	if err != nil {
		t.Fatalf("ReadBoundary: %v", err)
	}
	if b.Source.Start() != (heightmap.Coordinate{X: 0, Y: 0}) {
		t.Errorf("source start = %v, want (0,0)", b.Source.Start())
	}
	if b.Sink.End() != (heightmap.Coordinate{X: 3, Y: 2}) {
		t.Errorf("sink end = %v, want (3,2)", b.Sink.End())
	}
}

func TestReadBoundaryRejectsMismatchedTopStart(t *testing.T) {
	hm := smallHeightMap()
	input := `3 3 3 4
0 0 0 1 0 2
3 0 3 1 3 2
1 0 2 0 3 0
0 2 1 2 2 2 3 2
`
	if _, err := ReadBoundary(strings.NewReader(input), hm); err == nil {
		t.Fatal("expected an error when the top path doesn't start at the source's start")
	}
}

// The top path ends at (3,0) but the sink path starts at (3,1).
func TestReadBoundaryRejectsMismatchedTopEnd(t *testing.T) {
	hm := heightmap.New(4, 4)
	input := `4 4 4 4
0 0 0 1 0 2 0 3
3 1 3 2 3 3 2 3
0 0 1 0 2 0 3 0
0 3 1 3 2 3 3 3
`
	_, err := ReadBoundary(strings.NewReader(input), hm)
	if err == nil {
		t.Fatal("expected an error when the top path doesn't end at the sink's start")
	}
	ce, ok := err.(*topoerr.ConsistencyError)
	if !ok {
		t.Fatalf("error type = %T, want *topoerr.ConsistencyError", err)
	}
	want := "The end of the top is not equal to the start of the sink"
	if ce.Msg != want {
		t.Errorf("message = %q, want %q", ce.Msg, want)
	}
}

func TestReadBoundaryRejectsDiagonalStep(t *testing.T) {
	hm := smallHeightMap()
	input := `3 3 4 4
0 0 1 1 0 2
3 0 3 1 3 2
0 0 1 0 2 0 3 0
0 2 1 2 2 2 3 2
`
	_, err := ReadBoundary(strings.NewReader(input), hm)
	if err == nil {
		t.Fatal("expected an error for a diagonal step in the source path")
	}
	ce, ok := err.(*topoerr.ConsistencyError)
	if !ok {
		t.Fatalf("error type = %T, want *topoerr.ConsistencyError", err)
	}
	if !strings.HasPrefix(ce.Msg, "Illegal diagonal edge") {
		t.Errorf("message = %q, want prefix %q", ce.Msg, "Illegal diagonal edge")
	}
}

func TestReadBoundaryRemovesSpikes(t *testing.T) {
	hm := smallHeightMap()
	// source path has a spike at (0,1): 0,0 -> 0,1 -> 0,0 -> 0,1 -> 0,2
	input := `5 3 4 4
0 0 0 1 0 0 0 1 0 2
3 0 3 1 3 2
0 0 1 0 2 0 3 0
0 2 1 2 2 2 3 2
`
	b, err := ReadBoundary(strings.NewReader(input), hm)
	if err != nil {
		t.Fatalf("ReadBoundary: %v", err)
	}
	if len(b.Source.Points) != 3 {
		t.Errorf("source path length = %d, want 3 after spike removal", len(b.Source.Points))
	}
}

// TestReadPathRemovesSpikesLiteralExample exercises readPath directly with
// the exact point sequence [(0,0),(1,0),(0,0),(1,0),(2,0)], which should
// collapse to [(0,0),(1,0),(2,0)].
func TestReadPathRemovesSpikesLiteralExample(t *testing.T) {
	hm := heightmap.New(3, 1)
	tokens := strings.Fields("0 0 1 0 0 0 1 0 2 0")
	path, _, err := readPath(tokens, 0, 5, "source", hm)
	if err != nil {
		t.Fatalf("readPath: %v", err)
	}
	want := []heightmap.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if len(path.Points) != len(want) {
		t.Fatalf("path = %v, want %v", path.Points, want)
	}
	for i, c := range want {
		if path.Points[i] != c {
			t.Errorf("path.Points[%d] = %v, want %v", i, path.Points[i], c)
		}
	}
}

func TestCheckNoDoubleRejectsRevisitedInteriorPoint(t *testing.T) {
	path := heightmap.Path{Points: []heightmap.Coordinate{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0},
	}}
	if err := checkNoDouble(path); err == nil {
		t.Fatal("expected an error when an interior point is visited twice")
	}
}

func TestCheckNoDoubleAllowsSimplePath(t *testing.T) {
	path := heightmap.Path{Points: []heightmap.Coordinate{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
	}}
	if err := checkNoDouble(path); err != nil {
		t.Errorf("simple path should not be rejected: %v", err)
	}
}
