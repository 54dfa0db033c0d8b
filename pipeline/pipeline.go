package pipeline

import (
	"context"
	"fmt"

	"github.com/tue-alga/topotide/dcel"
	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/mscomplex"
	"github.com/tue-alga/topotide/network"
)

// Progress is called as each phase advances, with percent in [0, 100].
// Phases run in a fixed order: "dcel", "mscomplex", then one "network"
// phase per requested δ; the striation algorithm follows each "network"
// phase with a "graph" phase.
type Progress func(phase string, percent int)

// Result is one algorithm run at one δ threshold.
type Result struct {
	// Delta is the threshold this result was produced at, in the same
	// units the caller supplied (real or internal, per
	// Config.DeltaInternalUnits).
	Delta float64
	Graph *network.NetworkGraph
}

// Run executes the full pipeline: builds the DCEL from hm and boundary,
// classifies and splits it into an MsComplex, then produces one
// NetworkGraph per δ in cfg.Deltas using cfg.Algorithm.
//
// ctx is checked for cancellation between phases and between each δ's
// network-construction step; the per-vertex DCEL/MsComplex loops
// themselves are not individually cancellation-aware, since those stages
// run to completion in one pass and are cheap enough on realistic DEM
// sizes that phase-granularity cancellation is sufficient (see DESIGN.md).
func Run(ctx context.Context, hm *heightmap.HeightMap, boundary heightmap.Boundary, cfg Config, progress Progress) ([]Result, error) {
	signal := func(phase string, percent int) {
		if progress != nil {
			progress(phase, percent)
		}
	}

	log := cfg.logger.With().Str("algorithm", string(cfg.Algorithm)).Logger()
	log.Info().Int("width", hm.Width()).Int("height", hm.Height()).Msg("starting pipeline run")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signal("dcel", 0)
	d := dcel.Build(hm, boundary, cfg.Units)
	dcel.Classify(d, cfg.Units)
	dcel.MonkeySaddles(d, cfg.Units)
	signal("dcel", 100)
	log.Debug().Msg("built and classified DCEL")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signal("mscomplex", 0)
	ms := mscomplex.NewCreator(d, cfg.Units, func(p int) { signal("mscomplex", p) }).Create()
	signal("mscomplex", 100)
	log.Debug().Int("vertices", ms.VertexCount()).Int("faces", ms.FaceCount()).Msg("built MS-complex")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []Result
	var err error
	switch cfg.Algorithm {
	case Persistence:
		results, err = runPersistence(ctx, ms, cfg, signal, log)
	case Striation:
		results, err = runStriation(ctx, ms, cfg, signal, log)
	default:
		return nil, fmt.Errorf("pipeline: unknown algorithm %q", cfg.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Int("results", len(results)).Msg("pipeline run complete")
	return results, nil
}
