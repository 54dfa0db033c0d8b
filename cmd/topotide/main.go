// Command topotide extracts a representative channel network from a
// braided-river digital-elevation model, by either persistence-based
// simplification or striation.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("topotide failed")
		fmt.Fprintln(os.Stderr, "topotide:", err)
		os.Exit(1)
	}
}
