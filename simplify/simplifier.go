// Package simplify cancels low-persistence saddle/extremum pairs in a
// Morse-Smale complex, up to a chosen δ-threshold, and compacts the result
// into dense arrays ready for conversion to a NetworkGraph.
package simplify

import (
	"sort"

	"github.com/tue-alga/topotide/mscomplex"
)

// Simplifier operates on a private clone of an MsComplex, so the complex
// passed to NewSimplifier is never mutated.
type Simplifier struct {
	complex *mscomplex.MsComplex
}

// NewSimplifier returns a Simplifier that cancels pairs in a logical clone
// of m.
func NewSimplifier(m *mscomplex.MsComplex) *Simplifier {
	return &Simplifier{complex: m.Clone()}
}

// candidate pairs a cancellable face with the half-edge that witnesses its
// absorption into a higher-persistence neighbor.
type candidate struct {
	edge        mscomplex.HalfEdge
	persistence float64
}

// Simplify cancels every saddle/extremum pair whose persistence is at most
// threshold, processed in ascending persistence order, then compacts and
// returns the result. The single globally-persistent face (the one that
// never merges into anything) is never a candidate and always survives.
//
// Contraction rewires nothing explicitly: it marks both directions of the
// witnessing half-edge cancelled, and Compact drops any vertex left with no
// remaining incident edge and any face no longer referenced by a remaining
// half-edge. The faces on either side of a cancelled edge are not merged: a
// face that keeps any uncancelled boundary half-edge survives, and no Next
// pointers are spliced around the cancelled pair, so a Next that pointed at
// a cancelled half-edge becomes -1.
func (s *Simplifier) Simplify(threshold float64) *mscomplex.MsComplex {
	m := s.complex

	var candidates []candidate
	for i := 0; i < m.FaceCount(); i++ {
		e := m.Face(i).MergeEdge()
		if !e.IsValid() {
			continue
		}
		candidates = append(candidates, candidate{edge: e, persistence: m.Face(i).Persistence()})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].persistence < candidates[j].persistence
	})

	for _, c := range candidates {
		if c.persistence > threshold {
			break
		}
		c.edge.SetCancelled(true)
		c.edge.Twin().SetCancelled(true)
	}

	m.Compact()
	return m
}
