package heightmap

import "fmt"

// Coordinate is an integer pixel position, used for boundary paths (which
// carry no elevation of their own — see InputDcel for how boundary vertices
// get their sentinel heights).
type Coordinate struct {
	X, Y int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Path is a finite rectilinear walk: consecutive coordinates share exactly
// one axis and differ by exactly one step on the other.
type Path struct {
	Points []Coordinate
}

// RemoveSpikes deletes any "there and back" tip from the path: a run
// p[i-1], p[i], p[i+1] with p[i-1] == p[i+1] collapses to just p[i-1].
//
// Ported directly from the reference implementation's
// HeightMap::Path::removeSpikes, including its rewind-by-two behavior so
// that a chain of adjacent spikes is fully unwound in one pass.
func (p *Path) RemoveSpikes() {
	for i := 1; i < len(p.Points)-1; i++ {
		if p.Points[i-1] == p.Points[i+1] {
			p.Points = append(p.Points[:i], p.Points[i+2:]...)
			if i > 1 {
				i -= 2
			} else {
				i = 0
			}
		}
	}
}

// Start returns the first point of the path.
func (p Path) Start() Coordinate { return p.Points[0] }

// End returns the last point of the path.
func (p Path) End() Coordinate { return p.Points[len(p.Points)-1] }

// Boundary is the four-sided rectilinear polygon delimiting the region of
// the heightmap the pipeline analyzes.
//
// Invariants (validated by ioformat.ReadBoundary, not here — a Boundary
// built programmatically, e.g. via DefaultBoundary, is trusted to satisfy
// them):
//   - top.Start() == source.Start(), top.End() == sink.Start()
//   - bottom.Start() == source.End(), bottom.End() == sink.End()
//   - interior points of source are visited at most once across the whole
//     boundary
type Boundary struct {
	Source, Top, Sink, Bottom Path
}

// DefaultBoundary returns the trivial boundary that uses the heightmap's own
// four edges: the left column as source, right column as sink, top and
// bottom rows as the top/bottom paths.
func (m *HeightMap) DefaultBoundary() Boundary {
	return Boundary{
		Source: m.left(),
		Top:    m.top(),
		Sink:   m.right(),
		Bottom: m.bottom(),
	}
}

func (m *HeightMap) top() Path {
	pts := make([]Coordinate, m.w)
	for x := 0; x < m.w; x++ {
		pts[x] = Coordinate{X: x, Y: 0}
	}
	return Path{Points: pts}
}

func (m *HeightMap) bottom() Path {
	pts := make([]Coordinate, m.w)
	for x := 0; x < m.w; x++ {
		pts[x] = Coordinate{X: x, Y: m.h - 1}
	}
	return Path{Points: pts}
}

func (m *HeightMap) left() Path {
	pts := make([]Coordinate, m.h)
	for y := 0; y < m.h; y++ {
		pts[y] = Coordinate{X: 0, Y: y}
	}
	return Path{Points: pts}
}

func (m *HeightMap) right() Path {
	pts := make([]Coordinate, m.h)
	for y := 0; y < m.h; y++ {
		pts[y] = Coordinate{X: m.w - 1, Y: y}
	}
	return Path{Points: pts}
}
