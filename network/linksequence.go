package network

import (
	"sort"

	"github.com/tue-alga/topotide/geom"
)

// Link is a maximal run of edges in a NetworkGraph sharing the same
// δ-value.
type Link struct {
	Delta float64
	Path  []geom.Point
}

// LinkSequence represents a NetworkGraph as an ordered sequence of links.
type LinkSequence struct {
	links []Link
}

// NewLinkSequence builds the link sequence of g. Vertex 0 is taken to be
// the network's source and vertex 1 its sink, and both start out visited.
// FromMsComplex numbers graph vertices in MS-vertex order and does not
// place the source and sink first.
func NewLinkSequence(g *NetworkGraph) *LinkSequence {
	visitedVertex := make([]bool, g.VertexCount())
	if len(visitedVertex) > 0 {
		visitedVertex[0] = true // the source
	}
	if len(visitedVertex) > 1 {
		visitedVertex[1] = true // the sink
	}

	visitedEdge := make([]bool, g.EdgeCount())

	edges := make([]Edge, g.EdgeCount())
	for i := range edges {
		edges[i] = g.Edge(i)
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Delta > edges[j].Delta
	})

	ls := &LinkSequence{}

	for _, e := range edges {
		if visitedEdge[e.ID] {
			continue
		}
		if !visitedVertex[e.From] && !visitedVertex[e.To] {
			// TODO: if several edges share this δ-value, this can drop one of
			// them; if that happens in practice it needs separate handling.
			continue
		}

		vID := e.From
		if !visitedVertex[vID] {
			vID = e.To
		}
		v := g.Vertex(vID)

		link := Link{Delta: e.Delta, Path: []geom.Point{v.P}}
		cur := e
		for {
			advanced := false
			for _, incidentID := range v.IncidentEdges {
				if incidentID < 0 || incidentID >= len(visitedEdge) {
					continue // stale id left behind by a prior FilterOnDelta
				}
				incident := g.Edge(incidentID)
				if !visitedEdge[incident.ID] && incident.Delta == cur.Delta {
					visitedEdge[incident.ID] = true
					appendEdgeToLink(&link, g, incident)
					vID = otherEndOf(incident, vID)
					visitedVertex[vID] = true
					v = g.Vertex(vID)
					cur = incident
					advanced = true
					break
				}
			}
			if !advanced {
				break
			}
		}

		ls.links = append(ls.links, link)
	}

	return ls
}

// LinkCount returns the number of links.
func (ls *LinkSequence) LinkCount() int { return len(ls.links) }

// Link returns the i-th link.
func (ls *LinkSequence) Link(i int) Link { return ls.links[i] }

// appendEdgeToLink appends e's polyline to link, reversed if needed so that
// the first new point matches link's current last point. It assumes link's
// path is non-empty.
func appendEdgeToLink(link *Link, g *NetworkGraph, e Edge) {
	last := link.Path[len(link.Path)-1]
	if last.Equal(g.Vertex(e.From).P) {
		for i := 1; i < len(e.Path); i++ {
			link.Path = append(link.Path, e.Path[i])
		}
	} else {
		for i := len(e.Path) - 2; i >= 0; i-- {
			link.Path = append(link.Path, e.Path[i])
		}
	}
}

func otherEndOf(e Edge, oneEnd int) int {
	if oneEnd == e.From {
		return e.To
	}
	return e.From
}
