package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tue-alga/topotide/mscomplex"
	"github.com/tue-alga/topotide/network"
	"github.com/tue-alga/topotide/striation"
)

// runStriation orders MS-complex channels by sand volume, builds full
// source-to-sink candidate paths once, then selects and collapses a
// NetworkGraph per requested δ against that shared candidate list.
//
// One SandCache is shared across every δ in this run, consistent with the
// "pipeline objects must be fully self-contained" resource policy: a fresh
// Run call gets a fresh cache, but within a call every δ reuses the same
// memoized sand-volume probes.
func runStriation(ctx context.Context, ms *mscomplex.MsComplex, cfg Config, signal func(string, int), log zerolog.Logger) ([]Result, error) {
	var strategy striation.OrderStrategy = striation.HighestPersistenceFirst{}
	if cfg.HybridStriation {
		strategy = striation.Hybrid{}
	}

	st := striation.NewCreator(strategy).Create(ms)
	log.Debug().Int("items", st.ItemCount()).Msg("built striation")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := striation.NewLowestPathTree(ms, ms.Source(), ms.Sink(), cfg.Units)
	cache := striation.NewSandCache()
	candidates := striation.NewSortedPathsCreator(tree, cache, cfg.Bidirectional).Create(st)
	log.Debug().Int("candidates", len(candidates)).Msg("built candidate paths")

	results := make([]Result, 0, len(cfg.Deltas))
	for _, delta := range cfg.Deltas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		internal := cfg.internalDelta(delta)
		net := striation.NewNetworkCreator().Create(candidates, internal, func(p int) { signal("network", p) })
		log.Debug().Float64("delta", delta).Int("paths", len(net.Paths())).Msg("selected network")

		graph := striation.NewGraphCreator(ms, net, cfg.Simplify).Create(func(p int) { signal("graph", p) })
		results = append(results, Result{Delta: delta, Graph: graph})
	}

	return results, nil
}
