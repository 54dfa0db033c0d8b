package heightmap

import "testing"

func TestRemoveSpikesSingle(t *testing.T) {
	p := Path{Points: []Coordinate{{0, 0}, {1, 0}, {0, 0}, {1, 0}, {2, 0}}}
	p.RemoveSpikes()
	want := []Coordinate{{0, 0}, {1, 0}, {2, 0}}
	if len(p.Points) != len(want) {
		t.Fatalf("RemoveSpikes() = %v, want %v", p.Points, want)
	}
	for i := range want {
		if p.Points[i] != want[i] {
			t.Errorf("RemoveSpikes()[%d] = %v, want %v", i, p.Points[i], want[i])
		}
	}
}

func TestRemoveSpikesChain(t *testing.T) {
	// a spike immediately followed by another spike at the rewound position
	p := Path{Points: []Coordinate{
		{0, 0}, {1, 0}, {2, 0}, {1, 0}, {0, 0}, {1, 0}, {2, 0},
	}}
	p.RemoveSpikes()
	for i := 1; i < len(p.Points)-1; i++ {
		if p.Points[i-1] == p.Points[i+1] {
			t.Fatalf("spike remains after RemoveSpikes: %v", p.Points)
		}
	}
}

func TestDefaultBoundaryConsistency(t *testing.T) {
	hm := New(4, 3)
	b := hm.DefaultBoundary()
	if b.Top.Start() != b.Source.Start() {
		t.Errorf("top start %v != source start %v", b.Top.Start(), b.Source.Start())
	}
	if b.Top.End() != b.Sink.Start() {
		t.Errorf("top end %v != sink start %v", b.Top.End(), b.Sink.Start())
	}
	if b.Bottom.Start() != b.Source.End() {
		t.Errorf("bottom start %v != source end %v", b.Bottom.Start(), b.Source.End())
	}
	if b.Bottom.End() != b.Sink.End() {
		t.Errorf("bottom end %v != sink end %v", b.Bottom.End(), b.Sink.End())
	}
}
