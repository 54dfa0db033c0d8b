package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/network"
	"github.com/tue-alga/topotide/topoerr"
)

// WriteGraph writes g in the graph file format:
//
//	<vertex-count>
//	<id> <x> <y>           # for each vertex
//	<edge-count>
//	<id> <from> <to> <delta> <x1> <y1> <x2> <y2> ...   # for each edge
//
// δ is written in internal raw units; callers wanting real-world units
// should scale Edge.Delta through a geom.Units.VolumeScale before building g.
func WriteGraph(w io.Writer, g *network.NetworkGraph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, g.VertexCount())
	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertex(i)
		fmt.Fprintf(bw, "%d %d %d\n", v.ID, v.P.X, v.P.Y)
	}

	fmt.Fprintln(bw, g.EdgeCount())
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(i)
		fmt.Fprintf(bw, "%d %d %d %v", e.ID, e.From, e.To, e.Delta)
		for _, p := range e.Path {
			fmt.Fprintf(bw, " %d %d", p.X, p.Y)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// lineReader pulls one non-blank, whitespace-split record at a time from r:
// the graph and link-sequence formats both rely on newlines to delimit a
// variable-length polyline from the record that follows, so (unlike
// ReadText/ReadBoundary, which are free-form token streams) these two
// readers need line structure, not just tokens.
type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &lineReader{scanner: scanner}
}

// next returns the fields of the next non-blank line, or an InputParseError
// tagged with field if the stream ends first.
func (lr *lineReader) next(field string) ([]string, error) {
	for lr.scanner.Scan() {
		fields := strings.Fields(lr.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, nil
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, &topoerr.InputParseError{Context: field, Err: err}
	}
	return nil, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("premature end of file while reading %s", field)}
}

func parseRecordInt(fields []string, i int, field string) (int, error) {
	if i >= len(fields) {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("premature end of line while reading %s", field)}
	}
	v, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("%s should be an integer (was [%s])", field, fields[i])}
	}
	return v, nil
}

func parseRecordFloat(fields []string, i int, field string) (float64, error) {
	if i >= len(fields) {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("premature end of line while reading %s", field)}
	}
	v, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("%s should be a number (was [%s])", field, fields[i])}
	}
	return v, nil
}

// ReadGraph parses the format WriteGraph writes. It round-trips a
// NetworkGraph: vertex and edge ids (implicitly, via append order),
// positions, δ-values and edge polylines are all preserved (elevation is
// not, since the graph format carries only x, y — a NetworkGraph vertex's
// P.H plays no role downstream of network construction).
func ReadGraph(r io.Reader) (*network.NetworkGraph, error) {
	lr := newLineReader(r)

	header, err := lr.next("vertex count")
	if err != nil {
		return nil, err
	}
	vertexCount, err := parseRecordInt(header, 0, "vertex count")
	if err != nil {
		return nil, err
	}
	if vertexCount < 0 {
		return nil, &topoerr.InputParseError{Context: "vertex count", Err: fmt.Errorf("vertex count should not be negative (was [%d])", vertexCount)}
	}

	g := network.New()
	for i := 0; i < vertexCount; i++ {
		fields, err := lr.next("vertex record")
		if err != nil {
			return nil, err
		}
		x, err := parseRecordInt(fields, 1, "vertex x")
		if err != nil {
			return nil, err
		}
		y, err := parseRecordInt(fields, 2, "vertex y")
		if err != nil {
			return nil, err
		}
		if got := g.AddVertex(geom.Point{X: x, Y: y}); got != i {
			return nil, &topoerr.ConsistencyError{Msg: fmt.Sprintf("vertex records should appear in id order (expected position %d, got %d)", i, got)}
		}
	}

	edgeHeader, err := lr.next("edge count")
	if err != nil {
		return nil, err
	}
	edgeCount, err := parseRecordInt(edgeHeader, 0, "edge count")
	if err != nil {
		return nil, err
	}
	if edgeCount < 0 {
		return nil, &topoerr.InputParseError{Context: "edge count", Err: fmt.Errorf("edge count should not be negative (was [%d])", edgeCount)}
	}

	for i := 0; i < edgeCount; i++ {
		fields, err := lr.next("edge record")
		if err != nil {
			return nil, err
		}
		if len(fields) < 4 {
			return nil, &topoerr.InputParseError{Context: "edge record", Err: fmt.Errorf("edge record should contain at least id, from, to, delta")}
		}

		from, err := parseRecordInt(fields, 1, "edge from")
		if err != nil {
			return nil, err
		}
		to, err := parseRecordInt(fields, 2, "edge to")
		if err != nil {
			return nil, err
		}
		if from < 0 || from >= vertexCount || to < 0 || to >= vertexCount {
			return nil, &topoerr.ConsistencyError{Msg: fmt.Sprintf("edge %d references an unknown vertex (from %d, to %d)", i, from, to)}
		}
		delta, err := parseRecordFloat(fields, 3, "edge delta")
		if err != nil {
			return nil, err
		}

		coords := fields[4:]
		if len(coords)%2 != 0 {
			return nil, &topoerr.InputParseError{Context: "edge path", Err: fmt.Errorf("edge path should contain an even number of coordinates (was %d)", len(coords))}
		}
		path := make([]geom.Point, 0, len(coords)/2)
		for j := 0; j+1 < len(coords); j += 2 {
			x, err := parseRecordInt(coords, j, "edge path x")
			if err != nil {
				return nil, err
			}
			y, err := parseRecordInt(coords, j+1, "edge path y")
			if err != nil {
				return nil, err
			}
			path = append(path, geom.Point{X: x, Y: y})
		}

		g.AddEdge(from, to, path, delta)
	}

	return g, nil
}
