// Package ioformat implements the on-disk formats topotide reads and
// writes: the plain-text and image heightmap encodings, the boundary file,
// and the NetworkGraph/LinkSequence output formats.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/topoerr"
)

// tokenize reads every whitespace-separated token from r, matching the
// reference reader's split-on-\s+-and-discard-empties behavior.
func tokenize(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	scanner.Split(bufio.ScanWords)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &topoerr.InputParseError{Context: "reading input", Err: err}
	}
	return tokens, nil
}

func parseInt(tok, field string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("%s should be an integer (was [%s])", field, tok)}
	}
	return v, nil
}

func parseFloat(tok, field string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &topoerr.InputParseError{Context: field, Err: fmt.Errorf("%s should be a number (was [%s])", field, tok)}
	}
	return v, nil
}

// ReadText parses the plain-text heightmap format: a six-number header
// (width, height, x-resolution, y-resolution, minimum height, maximum
// height) followed by width*height raw elevation readings in
// column-within-row (x fastest within a row, then row y) order.
//
// Grounded on original_source/src/textfilereader.cpp, including its exact
// validation order and error text.
func ReadText(r io.Reader) (*heightmap.HeightMap, geom.Units, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return nil, geom.Units{}, err
	}

	if len(tokens) < 6 {
		return nil, geom.Units{}, &topoerr.InputParseError{
			Context: "header",
			Err: fmt.Errorf("premature end of file (should contain at least six numbers " +
				"indicating the width, height, x-resolution, y-resolution, minimum height, maximum height)"),
		}
	}

	width, err := parseInt(tokens[0], "width")
	if err != nil {
		return nil, geom.Units{}, err
	}
	if width <= 0 {
		return nil, geom.Units{}, &topoerr.InputParseError{Context: "width", Err: fmt.Errorf("width should be positive (was [%d])", width)}
	}

	height, err := parseInt(tokens[1], "height")
	if err != nil {
		return nil, geom.Units{}, err
	}
	if height <= 0 {
		return nil, geom.Units{}, &topoerr.InputParseError{Context: "height", Err: fmt.Errorf("height should be positive (was [%d])", height)}
	}

	xRes, err := parseFloat(tokens[2], "x-resolution")
	if err != nil {
		return nil, geom.Units{}, err
	}
	if xRes <= 0 {
		return nil, geom.Units{}, &topoerr.InputParseError{Context: "x-resolution", Err: fmt.Errorf("x-resolution should be positive (was [%v])", xRes)}
	}

	yRes, err := parseFloat(tokens[3], "y-resolution")
	if err != nil {
		return nil, geom.Units{}, err
	}
	if yRes <= 0 {
		return nil, geom.Units{}, &topoerr.InputParseError{Context: "y-resolution", Err: fmt.Errorf("y-resolution should be positive (was [%v])", yRes)}
	}

	minHeight, err := parseFloat(tokens[4], "minimum height")
	if err != nil {
		return nil, geom.Units{}, err
	}
	maxHeight, err := parseFloat(tokens[5], "maximum height")
	if err != nil {
		return nil, geom.Units{}, err
	}

	if len(tokens) != 6+width*height {
		return nil, geom.Units{}, &topoerr.InputParseError{
			Context: "body",
			Err: fmt.Errorf("file should contain %d x %d = %d elevation measures (encountered %d)",
				width, height, width*height, len(tokens)-6),
		}
	}

	hm := heightmap.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tok := tokens[6+width*y+x]
			elevation, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, geom.Units{}, &topoerr.InputParseError{
					Context: "elevation data",
					Err:     fmt.Errorf("elevation data should be numbers (encountered [%s])", tok),
				}
			}
			hm.Set(x, y, encodeElevation(elevation, minHeight, maxHeight))
		}
	}

	units := geom.Units{
		XResolution:  xRes,
		YResolution:  yRes,
		MinElevation: minHeight,
		MaxElevation: maxHeight,
	}
	return hm, units, nil
}

// encodeElevation scales a raw elevation reading into the 24-bit internal
// encoding HeightMap stores, matching the reference reader's
// 0xffffff * (elevation - min) / (max - min) formula.
func encodeElevation(elevation, min, max float64) int {
	return int(0xffffff * (elevation - min) / (max - min))
}
