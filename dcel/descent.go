package dcel

// DescentPath follows steepest-descent edges starting at v until reaching a
// minimum, returning the sequence of half-edges traversed (possibly empty,
// if v is itself a minimum).
//
// Steepest descent strictly decreases elevation at every step (SoS breaks
// any tie), so the walk is guaranteed to terminate; VertexCount is used as a
// hard cap purely to turn a violated invariant into a clear panic rather
// than a silent infinite loop.
func DescentPath(d *InputDcel, v Vertex) []HalfEdge {
	var path []HalfEdge
	cur := v
	limit := d.VertexCount() + 1
	for i := 0; i < limit; i++ {
		e := cur.SteepestDescentEdge()
		if !e.IsValid() || e.ID() < 0 {
			return path
		}
		path = append(path, e)
		cur = e.Destination()
	}
	panic("dcel: steepest-descent walk did not terminate; elevation invariant violated")
}

// SteepestDescentPathFrom returns e followed by the steepest-descent path
// continuing from e's destination, i.e. the full walk down to a minimum that
// starts by taking e.
func SteepestDescentPathFrom(d *InputDcel, e HalfEdge) []HalfEdge {
	path := []HalfEdge{e}
	return append(path, DescentPath(d, e.Destination())...)
}
