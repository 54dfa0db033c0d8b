package piecewise

import "testing"

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestFromPiecesEval(t *testing.T) {
	// f(x) = 1 + 2x on [0, 2), then constant-looking piece 5 on [2, inf)
	f := FromPieces([]float64{0, 2}, [][4]float64{
		{1, 2, 0, 0},
		{5, 0, 0, 0},
	})
	if got := f.Eval(0); !approxEqual(got, 1) {
		t.Errorf("Eval(0) = %v, want 1", got)
	}
	if got := f.Eval(1); !approxEqual(got, 3) {
		t.Errorf("Eval(1) = %v, want 3", got)
	}
	if got := f.Eval(2); !approxEqual(got, 5) {
		t.Errorf("Eval(2) = %v, want 5", got)
	}
	if got := f.Eval(100); !approxEqual(got, 5) {
		t.Errorf("Eval(100) = %v, want 5", got)
	}
}

func TestAddIsPointwiseSum(t *testing.T) {
	f := FromPieces([]float64{0}, [][4]float64{{1, 0, 0, 0}})
	g := FromPieces([]float64{0, 1}, [][4]float64{{2, 0, 0, 0}, {3, 1, 0, 0}})
	sum := f.Add(g)
	for _, x := range []float64{-1, 0, 0.5, 1, 2} {
		want := f.Eval(x) + g.Eval(x)
		if got := sum.Eval(x); !approxEqual(got, want) {
			t.Errorf("sum.Eval(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestAddWithZeroIsIdentity(t *testing.T) {
	f := FromPieces([]float64{0, 1}, [][4]float64{{1, 1, 0, 0}, {2, 0, 0, 0}})
	sum := f.Add(Zero())
	for _, x := range []float64{0, 0.5, 1, 5} {
		if got, want := sum.Eval(x), f.Eval(x); !approxEqual(got, want) {
			t.Errorf("Eval(%v) = %v, want %v", x, got, want)
		}
	}
}
