package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tue-alga/topotide/geom"
	"github.com/tue-alga/topotide/heightmap"
	"github.com/tue-alga/topotide/ioformat"
	"github.com/tue-alga/topotide/network"
	"github.com/tue-alga/topotide/pipeline"
	"github.com/tue-alga/topotide/topoerr"
)

func runTopotide(cmd *cobra.Command, args []string) error {
	if ipe {
		return &topoerr.UnsupportedOperation{Msg: "Ipe output is not supported"}
	}

	inputPath, outputPath := args[0], args[1]

	algorithm, err := algorithmFromFlag(algorithmFlag)
	if err != nil {
		return err
	}
	deltas, err := parseDeltas(deltasFlag)
	if err != nil {
		return err
	}

	hm, units, err := readHeightMap(inputPath)
	if err != nil {
		return err
	}
	applyUnitOverrides(cmd, &units)

	boundary := hm.DefaultBoundary()
	if boundaryPath != "" {
		f, err := os.Open(boundaryPath)
		if err != nil {
			return fmt.Errorf("opening boundary file: %w", err)
		}
		defer f.Close()
		boundary, err = ioformat.ReadBoundary(f, hm)
		if err != nil {
			return err
		}
	}

	cfg := pipeline.NewConfig(algorithm, deltas,
		func(c *pipeline.Config) {
			c.DeltaInternalUnits = deltaInternalUnits
			c.Bidirectional = bidirectional
			c.Simplify = simplify
			c.HybridStriation = hybridStriation
			c.Units = units
		},
		pipeline.WithLogger(log.Logger),
	)

	results, err := pipeline.Run(context.Background(), hm, boundary, cfg, nil)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	multi := len(results) > 1
	for _, r := range results {
		if err := writeResult(outputPath, r, units, multi); err != nil {
			return err
		}
	}
	return nil
}

// readHeightMap dispatches to the text or image reader by the input file's
// extension: .txt is the whitespace-token heightmap format, anything else
// is decoded as an image. A returned geom.Units is the identity conversion
// for image input, since an image header carries no elevation range.
func readHeightMap(path string) (*heightmap.HeightMap, geom.Units, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, geom.Units{}, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return ioformat.ReadText(f)
	}
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return nil, geom.Units{}, &topoerr.UnsupportedOperation{Msg: "BMP input is not supported"}
	}
	hm, err := ioformat.ReadImage(f)
	if err != nil {
		return nil, geom.Units{}, err
	}
	return hm, geom.DefaultUnits, nil
}

// applyUnitOverrides replaces whichever of units' four fields the
// corresponding CLI flag was explicitly set for.
func applyUnitOverrides(cmd *cobra.Command, units *geom.Units) {
	flags := cmd.Flags()
	if flags.Changed("xRes") {
		units.XResolution = xRes
	}
	if flags.Changed("yRes") {
		units.YResolution = yRes
	}
	if flags.Changed("minHeight") {
		units.MinElevation = minHeight
	}
	if flags.Changed("maxHeight") {
		units.MaxElevation = maxHeight
	}
}

func writeResult(base string, r pipeline.Result, units geom.Units, multi bool) error {
	path := base + ".txt"
	if multi {
		path = fmt.Sprintf("%s-δ-%v.txt", base, r.Delta)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	r.Graph.ScaleDeltas(units.VolumeScale())

	if links {
		ls := network.NewLinkSequence(r.Graph)
		return ioformat.WriteLinks(f, ls)
	}
	return ioformat.WriteGraph(f, r.Graph)
}
