package unionfind

import "testing"

func TestMergeDeterministicDirection(t *testing.T) {
	uf := New(4)
	uf.Merge(0, 1)
	if got := uf.Find(1); got != uf.Find(0) {
		t.Fatalf("0 and 1 should be connected")
	}
	if got := uf.Find(1); got != 0 {
		t.Errorf("Merge(0, 1) should make 0's representative win, got representative %d", got)
	}

	uf2 := New(4)
	uf2.Merge(1, 0)
	if got := uf2.Find(0); got != 1 {
		t.Errorf("Merge(1, 0) should make 1's representative win, got representative %d", got)
	}
}

func TestFindPathCompression(t *testing.T) {
	uf := New(5)
	uf.Merge(0, 1)
	uf.Merge(0, 2)
	uf.Merge(0, 3)
	root := uf.Find(0)
	for i := 0; i < 4; i++ {
		if uf.Find(i) != root {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), root)
		}
	}
	if uf.Connected(3, 4) {
		t.Errorf("3 and 4 should not be connected")
	}
}

func TestMergeNoOpOnSameSet(t *testing.T) {
	uf := New(3)
	uf.Merge(0, 1)
	before := uf.Find(0)
	uf.Merge(1, 0)
	if uf.Find(0) != before {
		t.Errorf("merging an already-connected pair changed the representative")
	}
}
