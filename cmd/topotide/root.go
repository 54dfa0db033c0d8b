package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tue-alga/topotide/pipeline"
)

var (
	algorithmFlag      string
	deltasFlag         string
	deltaInternalUnits bool
	bidirectional      bool
	simplify           bool
	hybridStriation    bool
	xRes               float64
	yRes               float64
	minHeight          float64
	maxHeight          float64
	ipe                bool
	links              bool
	boundaryPath       string

	rootCmd = &cobra.Command{
		Use:   "topotide <input> <output>",
		Short: "Extract a representative channel network from a braided-river DEM",
		Long: `topotide reads a digital-elevation model (a text or image heightmap)
plus an optional boundary polygon, builds its Morse-Smale complex, and
simplifies it by persistence or by striation into a channel network,
written out at one or more sand-volume thresholds.`,
		Args: cobra.ExactArgs(2),
		RunE: runTopotide,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&algorithmFlag, "algorithm", "a", "striation", "algorithm: striation|persistence")
	flags.StringVarP(&deltasFlag, "delta", "d", "100", "one or more δ thresholds (m³), separated by ';'")
	flags.BoolVar(&deltaInternalUnits, "deltaInternalUnits", false, "interpret δ as already-converted internal units")
	flags.BoolVarP(&bidirectional, "bidirectional", "b", false, "bidirectional sand function (striation only)")
	flags.BoolVarP(&simplify, "simplify", "s", false, "simplify by removing degree-2 vertices (striation only)")
	flags.BoolVar(&hybridStriation, "hybridStriation", false, "hybrid striation ordering")
	flags.Float64Var(&xRes, "xRes", 0, "override the x-resolution (metres per pixel)")
	flags.Float64Var(&yRes, "yRes", 0, "override the y-resolution (metres per pixel)")
	flags.Float64Var(&minHeight, "minHeight", 0, "override the minimum elevation")
	flags.Float64Var(&maxHeight, "maxHeight", 0, "override the maximum elevation")
	flags.BoolVar(&ipe, "ipe", false, "write Ipe output instead of a graph file (unsupported)")
	flags.BoolVar(&links, "links", false, "write a link-sequence file instead of a graph file")
	flags.StringVar(&boundaryPath, "boundary", "", "boundary file overriding the heightmap's own edges")

	rootCmd.MarkFlagsMutuallyExclusive("ipe", "links")
}

// parseDeltas splits a ';'-separated δ-list into float64s, in the order
// given. An empty element (a stray leading/trailing ';') is an error.
func parseDeltas(s string) ([]float64, error) {
	parts := strings.Split(s, ";")
	deltas := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty δ value in %q", s)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("δ value %q is not a number", p)
		}
		deltas = append(deltas, v)
	}
	return deltas, nil
}

func algorithmFromFlag(s string) (pipeline.Algorithm, error) {
	switch s {
	case "striation":
		return pipeline.Striation, nil
	case "persistence":
		return pipeline.Persistence, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (want striation or persistence)", s)
	}
}
