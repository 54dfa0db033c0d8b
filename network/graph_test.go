package network

import (
	"testing"

	"github.com/tue-alga/topotide/geom"
)

func buildSampleGraph() *NetworkGraph {
	g := New()
	g.AddVertex(geom.Point{X: 0, Y: 0, H: 0})
	g.AddVertex(geom.Point{X: 1, Y: 0, H: 1})
	g.AddVertex(geom.Point{X: 2, Y: 0, H: 2})
	g.AddEdge(0, 1, []geom.Point{{X: 0, Y: 0, H: 0}, {X: 1, Y: 0, H: 1}}, 10)
	g.AddEdge(1, 2, []geom.Point{{X: 1, Y: 0, H: 1}, {X: 2, Y: 0, H: 2}}, 50)
	g.AddEdge(0, 2, []geom.Point{{X: 0, Y: 0, H: 0}, {X: 2, Y: 0, H: 2}}, 200)
	return g
}

// Scenario 6 of the testable properties: a graph with edge δ's {10, 50, 200}
// retains exactly one edge with δ=200 after filtering at 60.
func TestFilterOnDeltaScenario(t *testing.T) {
	g := buildSampleGraph()
	g.FilterOnDelta(60)

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.Edge(0).Delta != 200 {
		t.Errorf("surviving edge has delta %v, want 200", g.Edge(0).Delta)
	}
}

// Invariant 4: every edge surviving filterOnDelta(δ) has delta >= δ.
func TestFilterOnDeltaInvariant(t *testing.T) {
	thresholds := []float64{0, 10, 11, 50, 60, 200, 201}
	for _, threshold := range thresholds {
		g := buildSampleGraph()
		g.FilterOnDelta(threshold)
		for i := 0; i < g.EdgeCount(); i++ {
			if g.Edge(i).Delta < threshold {
				t.Errorf("threshold %v: edge %d has delta %v, below threshold", threshold, i, g.Edge(i).Delta)
			}
		}
	}
}

func TestAddEdgeRecordsIncidence(t *testing.T) {
	g := buildSampleGraph()
	v0 := g.Vertex(0)
	if len(v0.IncidentEdges) != 2 {
		t.Fatalf("vertex 0 has %d incident edges, want 2", len(v0.IncidentEdges))
	}
}
