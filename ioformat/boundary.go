package ioformat

import (
	"fmt"
	"io"

	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/topoerr"
)

// ReadBoundary parses the boundary file format: a four-number header
// (source length, sink length, top length, bottom length) followed by that
// many coordinate pairs for each of the four paths, read in source, sink,
// top, bottom order — the order the original reader actually parses the
// body in, despite the header listing the lengths in that same order too.
//
// Grounded on original_source/src/boundaryreader.cpp: readPath's
// exact-duplicate skip, bounds check, diagonal/long-edge rejection and
// RemoveSpikes call; the four start/end alignment checks; and the
// source-only double-visit check (only the source path's interior points
// are checked for being visited twice elsewhere in the boundary — an
// asymmetry preserved from the original, not generalized to the other three
// paths).
func ReadBoundary(r io.Reader, hm *heightmap.HeightMap) (heightmap.Boundary, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return heightmap.Boundary{}, err
	}
	if len(tokens) < 4 {
		return heightmap.Boundary{}, &topoerr.InputParseError{
			Context: "header",
			Err:     fmt.Errorf("premature end of file (should contain at least four numbers indicating the lengths of the source, sink, top and bottom boundary paths)"),
		}
	}

	sourceLen, err := parseInt(tokens[0], "source length")
	if err != nil {
		return heightmap.Boundary{}, err
	}
	sinkLen, err := parseInt(tokens[1], "sink length")
	if err != nil {
		return heightmap.Boundary{}, err
	}
	topLen, err := parseInt(tokens[2], "top length")
	if err != nil {
		return heightmap.Boundary{}, err
	}
	bottomLen, err := parseInt(tokens[3], "bottom length")
	if err != nil {
		return heightmap.Boundary{}, err
	}

	pos := 4
	source, pos, err := readPath(tokens, pos, sourceLen, "source", hm)
	if err != nil {
		return heightmap.Boundary{}, err
	}
	sink, pos, err := readPath(tokens, pos, sinkLen, "sink", hm)
	if err != nil {
		return heightmap.Boundary{}, err
	}
	top, pos, err := readPath(tokens, pos, topLen, "top", hm)
	if err != nil {
		return heightmap.Boundary{}, err
	}
	bottom, _, err := readPath(tokens, pos, bottomLen, "bottom", hm)
	if err != nil {
		return heightmap.Boundary{}, err
	}

	b := heightmap.Boundary{Source: source, Sink: sink, Top: top, Bottom: bottom}

	if top.Start() != source.Start() {
		return heightmap.Boundary{}, &topoerr.ConsistencyError{Msg: "The start of the top is not equal to the start of the source"}
	}
	if top.End() != sink.Start() {
		return heightmap.Boundary{}, &topoerr.ConsistencyError{Msg: "The end of the top is not equal to the start of the sink"}
	}
	if bottom.Start() != source.End() {
		return heightmap.Boundary{}, &topoerr.ConsistencyError{Msg: "The start of the bottom is not equal to the end of the source"}
	}
	if bottom.End() != sink.End() {
		return heightmap.Boundary{}, &topoerr.ConsistencyError{Msg: "The end of the bottom is not equal to the end of the sink"}
	}

	if err := checkNoDouble(source); err != nil {
		return heightmap.Boundary{}, err
	}
	interior := make(map[heightmap.Coordinate]bool, len(source.Points))
	for i := 1; i < len(source.Points)-1; i++ {
		interior[source.Points[i]] = true
	}
	for _, p := range []heightmap.Path{top, sink, bottom} {
		for _, c := range p.Points {
			if interior[c] {
				return heightmap.Boundary{}, &topoerr.ConsistencyError{Msg: fmt.Sprintf("Point visited twice: %s", c)}
			}
		}
	}

	return b, nil
}

// readPath reads length coordinate pairs starting at tokens[pos], skipping
// an exact-duplicate consecutive point, rejecting out-of-bounds points,
// diagonal steps and steps longer than one grid cell, then removes spikes.
// It returns the position just past the consumed tokens.
func readPath(tokens []string, pos, length int, name string, hm *heightmap.HeightMap) (heightmap.Path, int, error) {
	if length <= 0 {
		return heightmap.Path{}, pos, &topoerr.InputParseError{
			Context: name,
			Err:     fmt.Errorf("%s path length should be positive (was [%d])", name, length),
		}
	}

	var points []heightmap.Coordinate
	for i := 0; i < length; i++ {
		if pos+1 >= len(tokens) {
			return heightmap.Path{}, pos, &topoerr.InputParseError{
				Context: name,
				Err:     fmt.Errorf("premature end of file while reading %s path (expected %d points)", name, length),
			}
		}

		x, err := parseInt(tokens[pos], name+" x-coordinate")
		if err != nil {
			return heightmap.Path{}, pos, err
		}
		y, err := parseInt(tokens[pos+1], name+" y-coordinate")
		if err != nil {
			return heightmap.Path{}, pos, err
		}
		pos += 2

		c := heightmap.Coordinate{X: x, Y: y}

		if len(points) > 0 && points[len(points)-1] == c {
			// exact-duplicate consecutive point: skip silently
			continue
		}

		if !hm.IsInBoundsCoord(c) {
			return heightmap.Path{}, pos, &topoerr.ConsistencyError{
				Msg: fmt.Sprintf("Coordinate %s is out of bounds", c),
			}
		}

		if len(points) > 0 {
			prev := points[len(points)-1]
			dx, dy := c.X-prev.X, c.Y-prev.Y
			if dx != 0 && dy != 0 {
				return heightmap.Path{}, pos, &topoerr.ConsistencyError{
					Msg: fmt.Sprintf("Illegal diagonal edge %s -> %s", prev, c),
				}
			}
			if abs(dx) > 1 || abs(dy) > 1 {
				return heightmap.Path{}, pos, &topoerr.ConsistencyError{
					Msg: fmt.Sprintf("Illegal long edge %s -> %s", prev, c),
				}
			}
		}

		points = append(points, c)
	}

	path := heightmap.Path{Points: points}
	path.RemoveSpikes()
	return path, pos, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// checkNoDouble reports whether any interior point of path (excluding its
// first and last point) repeats another interior point of path. Only the
// source path is checked this way, matching the original reader; ReadBoundary
// compares the source's interior against the other three paths separately.
func checkNoDouble(path heightmap.Path) error {
	seen := make(map[heightmap.Coordinate]bool, len(path.Points))
	for i, c := range path.Points {
		if i == 0 || i == len(path.Points)-1 {
			continue
		}
		if seen[c] {
			return &topoerr.ConsistencyError{Msg: fmt.Sprintf("Point visited twice: %s", c)}
		}
		seen[c] = true
	}
	return nil
}
