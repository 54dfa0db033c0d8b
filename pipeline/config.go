// Package pipeline wires the heightmap, DCEL, MS-complex and
// network-construction stages into the two end-to-end algorithms topotide
// offers: the persistence-cancellation route and the striation route.
package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/tue-alga/topotide/geom"
)

// Algorithm selects which route Run takes from an MsComplex to a
// NetworkGraph.
type Algorithm string

const (
	// Striation orders MS-complex channels by sand volume and carves a
	// network out of those surviving a δ threshold.
	Striation Algorithm = "striation"
	// Persistence cancels saddle/extremum pairs up to a δ threshold and
	// converts what survives directly to a NetworkGraph.
	Persistence Algorithm = "persistence"
)

// Config assembles everything a Run call needs beyond the heightmap and
// boundary themselves: the CLI builds one of these straight from its flags
// (see cmd/topotide), and it is otherwise immutable once constructed.
type Config struct {
	Algorithm Algorithm

	// Deltas are the thresholds to run the chosen algorithm at, in real
	// units (m³) unless DeltaInternalUnits is set, in which case they are
	// already in the MsComplex's raw internal units.
	Deltas             []float64
	DeltaInternalUnits bool

	// Bidirectional selects the two-sided sand function; striation only.
	Bidirectional bool
	// Simplify collapses degree-2-like vertices in the output graph;
	// striation only.
	Simplify bool
	// HybridStriation breaks sand-volume ties by ascending path length
	// instead of accepting the Striation's natural order; striation only.
	HybridStriation bool

	// Units converts between pixel/raw-elevation space and physical units.
	Units geom.Units

	logger zerolog.Logger
}

// Option configures a Config at construction time.
type Option func(*Config)

// WithLogger attaches a structured logger. The default is zerolog.Nop(), a
// logger that discards everything, so embedding Run in a library caller
// that never calls WithLogger produces no output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.logger = l }
}

// NewConfig returns a Config with its zero-value-unsafe fields defaulted
// (Units to geom.DefaultUnits, logger to a no-op logger), then applies opts.
func NewConfig(algorithm Algorithm, deltas []float64, opts ...Option) Config {
	c := Config{
		Algorithm: algorithm,
		Deltas:    deltas,
		Units:     geom.DefaultUnits,
		logger:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// internalDelta converts a requested δ into the MsComplex's raw internal
// units, unless Config.DeltaInternalUnits says it already is one.
func (c Config) internalDelta(delta float64) float64 {
	if c.DeltaInternalUnits {
		return delta
	}
	scale := c.Units.VolumeScale()
	if scale == 0 {
		return delta
	}
	return delta / scale
}
