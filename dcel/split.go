package dcel

import "github.com/tue-alga/topotide/geom"

// MonkeySaddles replaces every vertex with three or more down-wedges by a
// chain of simple (two-down-wedge) saddles at the same coordinates, linked
// by synthetic zero-length "bridge" edges, and reclassifies the result.
//
// This is purely combinatorial surgery on the rotation order: a degree-d
// vertex with d-2 excess down-wedges is replicated into a chain of d-1
// saddles (itself plus d-2 fresh vertices), all sharing its geometric
// coordinates. It does not touch
// triangle/face structure, since bridges carry no incident face and are
// invisible to anything that walks Next/Twin between triangles. Run Classify
// before this; calling it again afterward is unnecessary, since this
// function maintains classification incrementally as it splits.
func MonkeySaddles(d *InputDcel, u geom.Units) {
	// Splitting a vertex with d down-wedges produces one fresh vertex with
	// exactly two (never needing further splitting) and reduces the
	// original's count by exactly one. Each peel appends that fresh vertex
	// at the end of d.verts, so the loop bound is re-read every iteration to
	// reach it and classify it in turn.
	for v := 0; v < d.VertexCount(); v++ {
		for downWedgeCount(d, v, u) >= 3 {
			peelOneDownWedge(d, v, u)
		}
		classifyVertex(d, v, u)
	}
}

func downWedgeCount(d *InputDcel, v int, u geom.Units) int {
	n := 0
	for _, w := range wedgesAround(d, v, u) {
		if w.down {
			n++
		}
	}
	return n
}

// peelOneDownWedge removes one (down-wedge, following up-wedge) pair from
// v's rotation and moves it to a freshly created vertex v', reconnecting the
// two with a pair of bridges so that both v and v' remain internally
// consistent (alternating down/up wedges) and v's down-wedge count drops by
// exactly one.
func peelOneDownWedge(d *InputDcel, v int, u geom.Units) {
	wedges := wedgesAround(d, v, u)
	out := d.verts[v].out

	lastDown := -1
	for i, w := range wedges {
		if w.down {
			lastDown = i
		}
	}
	if lastDown < 0 {
		return // nothing to peel; should not happen given the caller's guard
	}
	nextUp := (lastDown + 1) % len(wedges)

	toHalfEdges := func(w wedge) []int {
		edges := make([]int, len(w.edges))
		for i, pos := range w.edges {
			edges[i] = out[pos]
		}
		return edges
	}
	movedArc := append(toHalfEdges(wedges[lastDown]), toHalfEdges(wedges[nextUp])...)

	var remaining []int
	for k := 2; k < len(wedges); k++ {
		idx := (nextUp + 1 + (k - 2)) % len(wedges)
		remaining = append(remaining, toHalfEdges(wedges[idx])...)
	}

	vPrime := len(d.verts)
	d.verts = append(d.verts, vertexRecord{
		p:           d.verts[v].p,
		descentEdge: -1,
		msVertex:    -1,
	})

	// bridge A is up at v, down at v' (its twin); bridge B is the reverse.
	aAtV := newBridge(d, v, vPrime, false)
	aAtVPrime := d.edges[aAtV].twin
	bAtV := newBridge(d, v, vPrime, true)
	bAtVPrime := d.edges[bAtV].twin

	for _, e := range movedArc {
		d.edges[e].origin = vPrime
	}

	d.verts[v].out = append(remaining, aAtV, bAtV)
	d.verts[vPrime].out = append(movedArc, aAtVPrime, bAtVPrime)
}

// newBridge creates a mutual pair of zero-length synthetic half-edges
// between a and b, and returns the index of the a->b direction. down
// indicates whether the a->b direction is classified as descending; the
// b->a direction is always the opposite.
func newBridge(d *InputDcel, a, b int, down bool) int {
	fwd := len(d.edges)
	d.edges = append(d.edges, halfEdgeRecord{
		origin: a, dest: b,
		twin: fwd + 1, next: -1, face: -1,
		isBridge: true, bridgeDown: down,
		incidentMsFace: -1, msHalfEdge: -1,
	})
	bwd := len(d.edges)
	d.edges = append(d.edges, halfEdgeRecord{
		origin: b, dest: a,
		twin: fwd, next: -1, face: -1,
		isBridge: true, bridgeDown: !down,
		incidentMsFace: -1, msHalfEdge: -1,
	})
	return fwd
}
