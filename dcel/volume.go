package dcel

import (
	"sort"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/piecewise"
)

// degenerateSpan is how close two vertex elevations must be, in real units,
// before a triangle is treated as having only two distinct heights (to avoid
// dividing by a near-zero span below).
const degenerateSpan = 1e-9

// VolumeAboveFunction returns the sand function of a single triangle: the
// volume of the wedge of terrain lying above elevation t, as t ranges over
// the triangle's vertex heights, for a triangle whose elevation varies
// linearly between its three corners.
//
// An MS-face's sand function is the pairwise sum (piecewise.Function.Add) of
// this across every triangle it contains.
func (f Face) VolumeAboveFunction(u geom.Units) piecewise.Function {
	tri := f.Triangle()
	pts := [3]geom.Point{tri[0].P(), tri[1].P(), tri[2].P()}

	area := planArea(pts, u)
	if area == 0 {
		return piecewise.Zero()
	}

	real := func(p geom.Point) float64 { return u.MinElevation + float64(p.H)*u.ElevationScale() }
	h := []float64{real(pts[0]), real(pts[1]), real(pts[2])}
	sort.Float64s(h)
	h0, h1, h2 := h[0], h[1], h[2]

	L := h2 - h0
	if L < degenerateSpan {
		return piecewise.Zero()
	}

	switch {
	case h1-h0 < degenerateSpan:
		// Two vertices tie at the bottom: area above s is A*((h2-s)/L)^2
		// across the whole span.
		c0 := area * L / 3
		c1 := -area
		c2 := area / L
		c3 := -area / (3 * L * L)
		return piecewise.FromPieces([]float64{h0}, [][4]float64{{c0, c1, c2, c3}})

	case h2-h1 < degenerateSpan:
		// Two vertices tie at the top: area above s is A*(1-((s-h0)/L)^2)
		// across the whole span.
		c0 := 2 * area * L / 3
		c1 := -area
		c2 := 0.0
		c3 := area / (3 * L * L)
		return piecewise.FromPieces([]float64{h0}, [][4]float64{{c0, c1, c2, c3}})

	default:
		u0 := h1 - h0
		v1 := area * (h2 - h1) * (h2 - h1) / (3 * L) // volume at h1

		c0a := area*u0 - area*u0*u0/(3*L) + v1
		c1a := -area
		c2a := 0.0
		c3a := area / (3 * u0 * L)

		k := h2 - h1
		cb := area / (3 * L * k)
		c0b := cb * k * k * k
		c1b := -3 * cb * k * k
		c2b := 3 * cb * k
		c3b := -cb

		return piecewise.FromPieces(
			[]float64{h0, h1},
			[][4]float64{{c0a, c1a, c2a, c3a}, {c0b, c1b, c2b, c3b}},
		)
	}
}

// planArea returns the triangle's plan-view (horizontal) area in real
// units, via the shoelace formula, scaled by the pixel-to-metre resolution.
func planArea(pts [3]geom.Point, u geom.Units) float64 {
	x0, y0 := float64(pts[0].X)*u.XResolution, float64(pts[0].Y)*u.YResolution
	x1, y1 := float64(pts[1].X)*u.XResolution, float64(pts[1].Y)*u.YResolution
	x2, y2 := float64(pts[2].X)*u.XResolution, float64(pts[2].Y)*u.YResolution
	cross := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if cross < 0 {
		cross = -cross
	}
	return cross / 2
}
