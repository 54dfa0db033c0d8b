package mscomplex

import (
	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/piecewise"
	"github.com/tue-alga/topotide/unionfind"
)

// Debug enables internal consistency assertions (panics on violation)
// throughout this package. It defaults to false; turn it on in tests.
var Debug = false

func debugAssert(cond bool, msg string) {
	if Debug && !cond {
		panic("mscomplex: " + msg)
	}
}

// Creator builds an MsComplex from a classified, monkey-saddle-split
// InputDcel, reporting progress (0-100) through an optional callback.
type Creator struct {
	d        *dcel.InputDcel
	u        geom.Units
	progress func(int)
}

// NewCreator returns a Creator for d, whose vertices must already be
// classified (dcel.Classify) and split (dcel.MonkeySaddles).
func NewCreator(d *dcel.InputDcel, u geom.Units, progress func(int)) *Creator {
	return &Creator{d: d, u: u, progress: progress}
}

func (c *Creator) signal(p int) {
	if c.progress != nil {
		c.progress(p)
	}
}

// Create runs the full eight-phase construction and returns the resulting
// MsComplex.
func (c *Creator) Create() *MsComplex {
	m := &MsComplex{}
	c.signal(0)

	c.addExtremumVertices(m)
	c.signal(10)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if v.Kind() == dcel.Minimum {
			c.addEdgesFromMinimum(m, v)
		}
	}
	c.signal(30)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if v.Kind() == dcel.Saddle {
			c.addEdgeOrderAroundSaddle(m, v)
		}
	}
	c.signal(50)

	m.addFaces()
	c.signal(60)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if v.Kind() == dcel.Minimum {
			c.setDcelMsFacesAroundMinimum(m, v)
		}
	}
	c.signal(70)

	for i := 0; i < m.FaceCount(); i++ {
		c.setDcelFacesOfFace(m, m.Face(i))
	}
	debugAssert(c.triangleSum(m) == c.d.FaceCount(), "MS-face triangle partition does not cover every DCEL triangle exactly once")
	c.signal(80)

	c.computePersistence(m)
	c.signal(90)

	for i := 0; i < m.FaceCount(); i++ {
		c.setSandFunctionOfFace(m, m.Face(i))
	}
	c.signal(100)

	return m
}

func (c *Creator) triangleSum(m *MsComplex) int {
	sum := 0
	for i := 0; i < m.FaceCount(); i++ {
		sum += len(m.Face(i).Triangles())
	}
	return sum
}

// Phase 1: every minimum and saddle of the DCEL becomes an MS-vertex.
func (c *Creator) addExtremumVertices(m *MsComplex) {
	for i := 0; i < c.d.VertexCount(); i++ {
		v := c.d.Vertex(i)
		if v.Type() != dcel.Minimum && v.Type() != dcel.Saddle {
			continue
		}
		nv := m.addVertex(v.P(), v.Type(), v)
		v.SetMsVertex(nv.ID())
	}
}

// Phase 2: for a minimum m, find the cyclic order of saddles whose steepest
// descent reaches m, add one MS half-edge per saddle, and thread Next
// pointers around m in that order.
func (c *Creator) addEdgesFromMinimum(m *MsComplex, mv Vertex) {
	order := c.saddleOrder(mv.DcelVertex())

	var added []HalfEdge
	for _, path := range order {
		debugAssert(path[0].MsHalfEdge() == -1, "dcel path already claimed by another MS half-edge")

		s := m.Vertex(path[0].Origin().MsVertex())
		edge := m.addEdge(mv, s)
		added = append(added, edge)
		path[0].SetMsHalfEdge(edge.Twin().ID())
		edge.Twin().SetDcelPath(path)
	}

	for i, edge := range added {
		next := added[(i+1)%len(added)]
		if i == 0 {
			mv.SetOutgoing(edge)
		}
		edge.Twin().SetNext(next)
	}
}

// saddleOrder enumerates, in cyclic order around the DCEL minimum v, the
// steepest-descent paths that reach v: one per outgoing DCEL edge whose twin
// is wedge-steepest (i.e. one per neighbor that locally flows towards v).
func (c *Creator) saddleOrder(v dcel.Vertex) [][]dcel.HalfEdge {
	var order [][]dcel.HalfEdge
	for _, e := range v.Outgoing() {
		if e.Twin().WedgeSteepest() {
			c.saddleOrderFrom(e.Destination(), e.Twin(), &order)
		}
	}
	return order
}

// stackFrame is one pending expansion in the explicit-stack walk that
// replaces the recursive saddle-order enumeration.
type stackFrame struct {
	v    dcel.Vertex
	wsde dcel.HalfEdge
	rest []dcel.HalfEdge // remaining outgoing edges of v still to visit, in rotation order starting after wsde
}

// saddleOrderFrom walks the DCEL outward from v via an explicit stack
// (replacing the original recursive formulation), appending one descent
// path to *order for every saddle reached whose own steepest-descent edge is
// not the wedge-steepest edge it was entered by.
func (c *Creator) saddleOrderFrom(v dcel.Vertex, wsde dcel.HalfEdge, order *[][]dcel.HalfEdge) {
	stack := []stackFrame{c.newFrame(v, wsde)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.v.Type() == dcel.Saddle && !top.wsde.Steepest() {
			*order = append(*order, dcel.SteepestDescentPathFrom(c.d, top.wsde))
			stack = stack[:len(stack)-1]
			continue
		}

		if len(top.rest) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		edge := top.rest[0]
		top.rest = top.rest[1:]

		switch {
		case edge.Twin().WedgeSteepest():
			stack = append(stack, c.newFrame(edge.Destination(), edge.Twin()))
		case edge.WedgeSteepest():
			debugAssert(edge.Origin().Type() == dcel.Saddle, "wedge-steepest edge not rooted at a saddle")
			*order = append(*order, dcel.SteepestDescentPathFrom(c.d, top.wsde))
		}
	}
}

// newFrame builds a stack frame for v, with rest set to v's outgoing edges
// in rotation order starting just after wsde and wrapping all the way back
// to (excluding) wsde itself — matching the original's
// "do { edge = edge.nextOutgoing() } while (edge != wsde)" sweep.
func (c *Creator) newFrame(v dcel.Vertex, wsde dcel.HalfEdge) stackFrame {
	if v.Type() != dcel.Saddle || wsde.Steepest() {
		out := v.Outgoing()
		start := 0
		for i, e := range out {
			if e.Equal(wsde) {
				start = i
				break
			}
		}
		rest := make([]dcel.HalfEdge, 0, len(out)-1)
		for k := 1; k < len(out); k++ {
			rest = append(rest, out[(start+k)%len(out)])
		}
		return stackFrame{v: v, wsde: wsde, rest: rest}
	}
	return stackFrame{v: v, wsde: wsde}
}

// Phase 3: for a saddle, read off the cyclic order of its two (or, before
// splitting, more) down-wedges' wedge-steepest edges, and thread the Next
// pointers of their corresponding minimum->saddle half-edges into a cycle.
func (c *Creator) addEdgeOrderAroundSaddle(m *MsComplex, sv Vertex) {
	out := sv.DcelVertex().Outgoing()

	var steepestEdges []dcel.HalfEdge
	for _, e := range out {
		if e.WedgeSteepest() {
			steepestEdges = append(steepestEdges, e)
		}
	}
	debugAssert(len(steepestEdges) > 0, "saddle has no wedge-steepest outgoing edge")

	toMinimum := make([]HalfEdge, len(steepestEdges))
	for i, e := range steepestEdges {
		debugAssert(e.MsHalfEdge() >= 0, "wedge-steepest edge has no MS half-edge assigned")
		toMinimum[i] = m.HalfEdge(e.MsHalfEdge())
	}

	sv.SetOutgoing(toMinimum[0])
	for i, edge := range toMinimum {
		next := toMinimum[(i+1)%len(toMinimum)]
		edge.Twin().SetNext(next)
	}
}

// Phase 5: for each pair of consecutive minimum->saddle half-edges around m,
// the triangles between their DCEL paths all lie in the MS-face bounded by
// them; mark every DCEL edge in the non-shared part of each path with that
// face, so the flood-fill in setDcelFacesOfFace can find its starting point.
func (c *Creator) setDcelMsFacesAroundMinimum(m *MsComplex, mv Vertex) {
	for _, edge := range mv.AllOutgoing() {
		next := edge.NextOutgoing()
		p1 := edge.Twin().DcelPath()
		p2 := next.Twin().DcelPath()

		j := 0
		for j < len(p1) && j < len(p2) && p1[len(p1)-1-j].Equal(p2[len(p2)-1-j]) {
			j++
		}

		faceOfP1 := edge.OppositeFace().ID()
		for k := 0; k < len(p1)-j; k++ {
			debugAssert(p1[k].IncidentMsFace() == -1, "DCEL edge claimed by two MS faces")
			p1[k].SetIncidentMsFace(faceOfP1)
		}

		faceOfP2 := next.IncidentFace().ID()
		for k := 0; k < len(p2)-j; k++ {
			debugAssert(p2[k].Twin().IncidentMsFace() == -1, "DCEL edge claimed by two MS faces")
			p2[k].Twin().SetIncidentMsFace(faceOfP2)
		}
	}
}

// Phase 6: flood-fill the DCEL triangles belonging to f, starting from a
// triangle incident to f's boundary saddle, stopping at edges already marked
// with an MS-face (phase 5), and tracking the highest vertex encountered.
func (c *Creator) setDcelFacesOfFace(m *MsComplex, f Face) {
	e := f.Boundary()
	saddle := e.Origin()
	if saddle.Kind() != dcel.Saddle {
		saddle = e.Destination()
	}
	debugAssert(saddle.Kind() == dcel.Saddle, "MS-face boundary has no saddle endpoint")

	sdv := saddle.DcelVertex()
	out := sdv.Outgoing()
	startIdx := -1
	for i, oe := range out {
		if oe.IncidentMsFace() == f.ID() {
			startIdx = i
			break
		}
	}
	debugAssert(m.FaceCount() == 1 || startIdx >= 0, "no DCEL edge around the saddle is marked with this MS face")
	if startIdx < 0 {
		startIdx = 0
	}

	startFace := out[startIdx].IncidentFace()

	var tris []dcel.Face
	claimed := map[int]bool{startFace.ID(): true}
	var maximum dcel.Vertex
	updateMaximum := func(tri dcel.Face) {
		for _, tv := range tri.Triangle() {
			if !maximum.IsValid() || tv.P().Greater(maximum.P()) {
				maximum = tv
			}
		}
	}

	tris = append(tris, startFace)
	updateMaximum(startFace)

	for i := 0; i < len(tris); i++ {
		tri := tris[i]
		for _, be := range tri.BoundaryEdges() {
			if be.IncidentMsFace() != -1 {
				continue
			}
			opp := be.OppositeFace()
			if !opp.IsValid() {
				continue
			}
			if claimed[opp.ID()] {
				continue
			}
			claimed[opp.ID()] = true
			tris = append(tris, opp)
			updateMaximum(opp)
		}
	}

	m.faces[f.idx].triangles = tris
	m.faces[f.idx].maximum = maximum

	debugAssert(maximum.IsValid(), "MS-face flood-fill found no maximum")
	descentEdge := maximum.SteepestDescentEdge()
	if !descentEdge.IsValid() {
		m.faces[f.idx].lowestPathVertex = maximum.MsVertex()
		return
	}
	path := dcel.SteepestDescentPathFrom(c.d, descentEdge)
	m.faces[f.idx].lowestPathVertex = path[len(path)-1].Destination().MsVertex()
}

// Phase 7: for every saddle from highest to lowest, merge the MS-faces
// around it via union-find, keeping the currently-highest-maximum component
// as the surviving representative and recording the persistence (elevation
// drop) of every face that merges into it. The same value is stamped onto
// the witnessing half-edge pair as its δ-value, so a Simplifier or a later
// NetworkGraph.FilterOnDelta can select edges by persistence without
// recomputing it.
func (c *Creator) computePersistence(m *MsComplex) {
	var saddles []Vertex
	for i := 0; i < m.VertexCount(); i++ {
		if v := m.Vertex(i); v.Kind() == dcel.Saddle {
			saddles = append(saddles, v)
		}
	}
	sortVerticesDescending(saddles)

	uf := unionfind.New(m.FaceCount())

	for _, s := range saddles {
		neighbors := map[int]bool{}
		edgeForFid := map[int]HalfEdge{}
		highest := -1

		for _, e := range s.AllOutgoing() {
			incident := e.IncidentFace().ID()
			fid := uf.Find(incident)
			neighbors[fid] = true
			if _, ok := edgeForFid[fid]; !ok {
				edgeForFid[fid] = e
			}
			if highest < 0 || m.Face(fid).Maximum().P().Greater(m.Face(highest).Maximum().P()) {
				highest = fid
			}
		}
		debugAssert(highest >= 0, "saddle has no neighboring MS face")

		if len(neighbors) > 1 {
			for fid := range neighbors {
				if fid == highest {
					continue
				}
				uf.Merge(highest, fid)
				persistence := float64(m.Face(fid).Maximum().P().H - s.P().H)
				m.faces[fid].persistence = persistence
				m.faces[fid].mergeEdge = edgeForFid[fid].ID()
				edgeForFid[fid].SetDelta(persistence)
				edgeForFid[fid].Twin().SetDelta(persistence)
			}
		}
	}
}

func sortVerticesDescending(vs []Vertex) {
	for i := 1; i < len(vs); i++ {
		j := i
		for j > 0 && vs[j-1].P().Less(vs[j].P()) {
			vs[j-1], vs[j] = vs[j], vs[j-1]
			j--
		}
	}
}

// Phase 8: fold the sand-volume contributions of every triangle in f,
// skipping triangles touching the source sentinel (which extend to infinite
// elevation and contribute no well-defined volume-above function).
func (c *Creator) setSandFunctionOfFace(m *MsComplex, f Face) {
	sum := piecewise.Zero()
	for _, tri := range f.Triangles() {
		if triangleTouchesSentinel(tri) {
			continue
		}
		sum = sum.Add(tri.VolumeAboveFunction(c.u))
	}
	m.faces[f.idx].volumeAbove = sum
}

func triangleTouchesSentinel(f dcel.Face) bool {
	for _, v := range f.Triangle() {
		if v.P().H == dcel.NegInf {
			return true
		}
	}
	return false
}
