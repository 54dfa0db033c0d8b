package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tue-alga/topotide/mscomplex"
	"github.com/tue-alga/topotide/network"
	"github.com/tue-alga/topotide/simplify"
)

// runPersistence cancels saddle/extremum pairs up to each requested δ and
// converts the survivors straight to a NetworkGraph.
func runPersistence(ctx context.Context, ms *mscomplex.MsComplex, cfg Config, signal func(string, int), log zerolog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(cfg.Deltas))

	for _, delta := range cfg.Deltas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		internal := cfg.internalDelta(delta)
		simplified := simplify.NewSimplifier(ms).Simplify(internal)
		log.Debug().Float64("delta", delta).Int("faces", simplified.FaceCount()).Msg("simplified MS-complex")

		graph := network.FromMsComplex(simplified, func(p int) { signal("network", p) })
		results = append(results, Result{Delta: delta, Graph: graph})
	}

	return results, nil
}
