// Package topoerr holds the structured error types surfaced by topotide's
// external collaborators (readers, writers, the CLI). Internal invariant
// violations are not represented here: those are programmer errors and
// panic, in the manner of gonum.org/v1/gonum/graph/simple
// (panic("topotide: ...")), rather than being wrapped into a value a caller
// could recover from.
package topoerr

import "fmt"

// InputParseError reports a malformed input file: a heightmap, boundary, or
// graph file that does not match its expected grammar.
type InputParseError struct {
	File    string
	Context string
	Err     error
}

// Error implements error.
func (e *InputParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Context, e.Err)
}

// Unwrap returns the underlying parse failure, so callers can errors.Is/As
// through it to the original cause (e.g. a strconv.NumError).
func (e *InputParseError) Unwrap() error { return e.Err }

// ConsistencyError reports an input that parses cleanly but fails a
// structural check the pipeline requires before it can run (a boundary that
// doesn't enclose a well-formed interior, a graph whose edges reference
// unknown vertices, and so on).
type ConsistencyError struct {
	Msg string
}

// Error implements error.
func (e *ConsistencyError) Error() string {
	return "topotide: " + e.Msg
}

// UnsupportedOperation reports a request for functionality that is
// recognized but intentionally unimplemented (Ipe export, for instance).
type UnsupportedOperation struct {
	Msg string
}

// Error implements error.
func (e *UnsupportedOperation) Error() string {
	return "topotide: unsupported: " + e.Msg
}
