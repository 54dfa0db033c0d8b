// Package piecewise implements piecewise-cubic functions of a single real
// variable (elevation), used to represent the "sand function" of an MS-face:
// the volume of terrain lying above a given elevation threshold, as a
// function of that threshold.
//
// The representation follows the shape gonum/interp's PiecewiseCubic uses
// internally (breakpoints plus per-interval polynomial coefficients), but
// pieces here are built directly from closed-form triangle geometry rather
// than fit by Hermite interpolation, since the underlying area-above-a-plane
// function is exactly piecewise-quadratic (see dcel.Face.VolumeAboveFunction),
// not merely well-approximated by a spline.
package piecewise

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// breakpointTolerance is how close two breakpoints must be to be treated as
// the same elevation when merging functions, guarding against spurious extra
// pieces from floating-point noise.
const breakpointTolerance = 1e-9

// piece holds a cubic polynomial c0 + c1*dx + c2*dx^2 + c3*dx^3, valid on
// [start, end), where dx = x - start.
type piece struct {
	start, end float64
	coeffs     [4]float64
}

func (p piece) eval(x float64) float64 {
	dx := x - p.start
	v := mat.NewVecDense(4, []float64{1, dx, dx * dx, dx * dx * dx})
	c := mat.NewVecDense(4, p.coeffs[:])
	return mat.Dot(v, c)
}

// Function is a piecewise-cubic real function, zero outside its domain.
type Function struct {
	pieces []piece // sorted, non-overlapping, contiguous
}

// Zero returns the function that is identically zero everywhere.
func Zero() Function { return Function{} }

// newPiece builds a single piece valid on [start, end) with the given
// coefficients (see dcel.Face.VolumeAboveFunction for the triangle geometry
// such pieces come from).
func newPiece(start, end float64, coeffs [4]float64) piece {
	return piece{start: start, end: end, coeffs: coeffs}
}

// FromPieces builds a Function from explicit pieces. Pieces must be given in
// ascending, contiguous, non-overlapping order; callers within this module
// are expected to satisfy this without further validation.
func FromPieces(starts []float64, coeffs [][4]float64) Function {
	var f Function
	for i := range coeffs {
		end := math.Inf(1)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		f.pieces = append(f.pieces, newPiece(starts[i], end, coeffs[i]))
	}
	return f
}

// Eval evaluates the function at x.
func (f Function) Eval(x float64) float64 {
	for _, p := range f.pieces {
		if x >= p.start && x < p.end {
			return p.eval(x)
		}
	}
	if len(f.pieces) > 0 && x >= f.pieces[len(f.pieces)-1].start {
		return f.pieces[len(f.pieces)-1].eval(x)
	}
	return 0
}

// Breakpoints returns the function's interval boundaries, ascending.
func (f Function) Breakpoints() []float64 {
	bps := make([]float64, len(f.pieces))
	for i, p := range f.pieces {
		bps[i] = p.start
	}
	return bps
}

// Add returns the pointwise sum of f and g, used to fold a triangle's
// contribution into an MS-face's accumulated sand function one triangle at a
// time.
func (f Function) Add(g Function) Function {
	if len(f.pieces) == 0 {
		return g
	}
	if len(g.pieces) == 0 {
		return f
	}

	merged := mergeBreakpoints(f.Breakpoints(), g.Breakpoints())
	var out Function
	for i, start := range merged {
		end := math.Inf(1)
		if i+1 < len(merged) {
			end = merged[i+1]
		}
		fc := f.shiftedCoeffs(start)
		gc := g.shiftedCoeffs(start)
		var sum [4]float64
		for k := range sum {
			sum[k] = fc[k] + gc[k]
		}
		out.pieces = append(out.pieces, piece{start: start, end: end, coeffs: sum})
	}
	return out
}

// shiftedCoeffs returns f's coefficients re-centered at x. Before f's first
// breakpoint, where f is zero, it returns all-zero coefficients (a point
// within breakpointTolerance of the first breakpoint uses the first piece).
func (f Function) shiftedCoeffs(x float64) [4]float64 {
	var p piece
	found := false
	for _, cand := range f.pieces {
		if x >= cand.start && x < cand.end {
			p = cand
			found = true
			break
		}
	}
	if !found {
		switch {
		case len(f.pieces) == 0 || x < f.pieces[0].start-breakpointTolerance:
			return [4]float64{}
		case x < f.pieces[0].start:
			p = f.pieces[0]
		default:
			p = f.pieces[len(f.pieces)-1]
		}
	}
	d := x - p.start
	// Re-expand the cubic about the new origin x using Taylor shift.
	a, b, c, dd := p.coeffs[0], p.coeffs[1], p.coeffs[2], p.coeffs[3]
	return [4]float64{
		a + b*d + c*d*d + dd*d*d*d,
		b + 2*c*d + 3*dd*d*d,
		c + 3*dd*d,
		dd,
	}
}

func mergeBreakpoints(a, b []float64) []float64 {
	all := append(append([]float64{}, a...), b...)
	sort.Float64s(all)
	out := all[:0:0]
	for _, x := range all {
		if len(out) == 0 || !floats.EqualWithinAbs(out[len(out)-1], x, breakpointTolerance) {
			out = append(out, x)
		}
	}
	return out
}
