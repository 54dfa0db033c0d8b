// Package striation implements the alternative, sand-volume-ordered route to
// a NetworkGraph: order every saddle/extremum channel by a striation
// strategy, carve a source-to-sink path through the channels that survive a
// chosen δ, and hand the result to a graph creator that can collapse boring
// vertices into single edges (network.FromMsComplex, on the persistence
// path, collapses none).
//
// Unlike mscomplex and simplify, none of Striation, SortedPathsCreator,
// Network, NetworkCreator or SandCache have a surviving C++ implementation
// in the reference sources this package is grounded on: only LowestPathTree
// (lowestpathtree.cpp) and the striation-path NetworkGraphCreator
// (networkgraphcreator.cpp) do. The rest is authored from the prose
// description of the striation approach, following the idiom of the two
// grounded pieces. See DESIGN.md for the per-type grounding ledger.
package striation
