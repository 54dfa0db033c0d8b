package geom

import "testing"

func TestPointLessBreaksTiesBySoS(t *testing.T) {
	cases := []struct {
		name string
		p, q Point
		want bool
	}{
		{"lower height", Point{X: 5, Y: 5, H: 1}, Point{X: 0, Y: 0, H: 2}, true},
		{"equal height, lower y", Point{X: 9, Y: 1, H: 3}, Point{X: 0, Y: 2, H: 3}, true},
		{"equal height and y, lower x", Point{X: 1, Y: 2, H: 3}, Point{X: 2, Y: 2, H: 3}, true},
		{"identical point", Point{X: 1, Y: 1, H: 1}, Point{X: 1, Y: 1, H: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.p.Less(c.q); got != c.want {
				t.Errorf("%v.Less(%v) = %v, want %v", c.p, c.q, got, c.want)
			}
			if c.p != c.q && c.p.Less(c.q) == c.q.Less(c.p) {
				t.Errorf("SoS order is not strict for %v, %v", c.p, c.q)
			}
		})
	}
}

func TestUnitsGradient(t *testing.T) {
	u := Units{XResolution: 2, YResolution: 1, MinElevation: 0, MaxElevation: 100}
	p := Point{X: 0, Y: 0, H: 10}
	q := Point{X: 1, Y: 0, H: 4}
	got := u.Gradient(p, q)
	want := float64(4-10) / 2
	if got != want {
		t.Errorf("Gradient = %v, want %v", got, want)
	}
}

func TestUnitsVolumeScale(t *testing.T) {
	u := Units{XResolution: 0.5, YResolution: 0.5, MinElevation: 0, MaxElevation: 0xFFFFFF}
	got := u.VolumeScale()
	want := 0.5 * 0.5 * 1.0
	if got != want {
		t.Errorf("VolumeScale = %v, want %v", got, want)
	}
}
