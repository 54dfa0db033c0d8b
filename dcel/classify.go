package dcel

import "github.com/tue-alga/topotide/geom"

// Classify computes, for every vertex in d, its down-wedges and from them
// its VertexType, its steepest-descent edge, and which outgoing edge is
// locally steepest within each down-wedge. It must run before MonkeySaddles,
// which consumes the down-wedge count to decide which vertices need
// splitting.
func Classify(d *InputDcel, u geom.Units) {
	for v := range d.verts {
		classifyVertex(d, v, u)
	}
}

// wedge is a maximal run of consecutive outgoing edges (in rotation order)
// sharing a descending/ascending classification.
type wedge struct {
	down    bool
	edges   []int // indices into the vertex's out[] rotation, not half-edge ids
}

func gradientOf(d *InputDcel, e int, u geom.Units) float64 {
	he := d.edges[e]
	if he.isBridge {
		// Bridges are classified by fiat at construction time (split.go)
		// rather than by real gradient; callers must not re-derive their
		// sign from here.
		panic("dcel: gradientOf called on a bridge edge")
	}
	origin := d.verts[he.origin].p
	dest := d.verts[he.dest].p
	return u.Gradient(origin, dest)
}

// isDescending reports whether following e from its origin loses elevation.
func isDescending(d *InputDcel, e int, u geom.Units) bool {
	if d.edges[e].isBridge {
		return d.edges[e].bridgeDown
	}
	return gradientOf(d, e, u) < 0
}

func wedgesAround(d *InputDcel, v int, u geom.Units) []wedge {
	out := d.verts[v].out
	n := len(out)
	if n == 0 {
		return nil
	}
	down := make([]bool, n)
	for i, e := range out {
		down[i] = isDescending(d, e, u)
	}

	// Find a boundary between a down-run and an up-run to start grouping
	// from, so a run that wraps past index 0 is not split in two.
	start := 0
	for i := 0; i < n; i++ {
		if down[i] != down[(i-1+n)%n] {
			start = i
			break
		}
	}

	var wedges []wedge
	i := 0
	for i < n {
		idx := (start + i) % n
		cur := down[idx]
		var edges []int
		for i < n && down[(start+i)%n] == cur {
			edges = append(edges, (start+i)%n)
			i++
		}
		wedges = append(wedges, wedge{down: cur, edges: edges})
	}
	return wedges
}

func classifyVertex(d *InputDcel, v int, u geom.Units) {
	out := d.verts[v].out
	if len(out) == 0 {
		d.verts[v].typ = Minimum
		d.verts[v].descentEdge = -1
		return
	}

	wedges := wedgesAround(d, v, u)

	downCount := 0
	var steepestOverall int = -1
	for _, w := range wedges {
		if !w.down {
			continue
		}
		downCount++
		steepestInWedge := w.edges[0]
		for _, idx := range w.edges[1:] {
			if lessSteep(d, out[steepestInWedge], out[idx], u) {
				steepestInWedge = idx
			}
		}
		steepestEdge := out[steepestInWedge]
		d.edges[steepestEdge].wedgeSteepest = true
		if steepestOverall < 0 || lessSteep(d, out[steepestOverall], steepestEdge, u) {
			steepestOverall = steepestInWedge
		}
	}

	isPeak := len(wedges) == 1 && downCount == 1

	switch {
	case isPeak:
		// Every outgoing edge descends: v is higher than all its
		// neighbors, the single wedge wraps the full rotation.
		d.verts[v].typ = Maximum
	case downCount == 0:
		d.verts[v].typ = Minimum
	case downCount == 1:
		d.verts[v].typ = Regular
	case downCount == 2:
		d.verts[v].typ = Saddle
	default:
		// Monkey saddle: left as-is here, resolved by MonkeySaddles.
		d.verts[v].typ = Saddle
	}

	if downCount > 0 && !isPeak {
		edge := out[steepestOverall]
		d.edges[edge].steepest = true
		d.verts[v].descentEdge = edge
	} else {
		d.verts[v].descentEdge = -1
	}
}

// lessSteep reports whether edge a descends less steeply than edge b (i.e.
// a's gradient, for descending edges, is closer to zero / less negative).
// Bridges take part with the fixed gradient edgeGradientForComparison
// assigns them.
func lessSteep(d *InputDcel, a, b int, u geom.Units) bool {
	ga := edgeGradientForComparison(d, a, u)
	gb := edgeGradientForComparison(d, b, u)
	if ga != gb {
		return ga > gb // closer to zero (less negative) is "less steep"
	}
	// Deterministic SoS tie-break on the destination point.
	pa := d.verts[d.edges[a].dest].p
	pb := d.verts[d.edges[b].dest].p
	return pa.Greater(pb)
}

func edgeGradientForComparison(d *InputDcel, e int, u geom.Units) float64 {
	if d.edges[e].isBridge {
		if d.edges[e].bridgeDown {
			return -1e-300 // the least steep possible descent: never chosen over a real edge unless it's the only option
		}
		return 1e300
	}
	return gradientOf(d, e, u)
}

// DownWedgeCount returns the number of down-wedges classified for v. Exposed
// for callers (MonkeySaddles, tests) that need the raw count rather than
// just the saturated VertexType.
func DownWedgeCount(d *InputDcel, v int, u geom.Units) int {
	wedges := wedgesAround(d, v, u)
	n := 0
	for _, w := range wedges {
		if w.down {
			n++
		}
	}
	return n
}
