package ioformat

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/topoerr"
)

var errEmptyImage = errors.New("image has zero width or height")

// ReadImage decodes a heightmap from an image: each pixel's elevation is its
// (r<<16)|(g<<8)|b value directly, with no min/max rescaling (an image
// carries no elevation-range header the way the text format does, so xRes,
// yRes, minHeight and maxHeight must come from somewhere else — the CLI's
// override flags).
//
// PNG and JPEG are supported through the standard library's own decoders.
// BMP is deliberately not: nothing decodes BMP here, and the standard
// library doesn't either, so there is no idiomatic library to build a
// decoder on.
func ReadImage(r io.Reader) (*heightmap.HeightMap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &topoerr.InputParseError{Context: "decoding image", Err: err}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, &topoerr.InputParseError{Context: "image dimensions", Err: errEmptyImage}
	}

	hm := heightmap.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r32, g32, b32, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit-per-channel values; take the high byte
			// of each to recover the original 8-bit r, g, b.
			r8, g8, b8 := r32>>8, g32>>8, b32>>8
			hm.Set(x, y, int(r8)<<16|int(g8)<<8|int(b8))
		}
	}

	return hm, nil
}
