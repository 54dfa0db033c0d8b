package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tue-alga/topotide/network"
)

// WriteLinks writes ls in the link-sequence file format:
//
//	<link-count>
//	<id> <delta> <x1> <y1> ... <xn> <yn>
//
// This is an output-only format: topotide never needs to read a link
// sequence back in, since it is derived data (see network.NewLinkSequence).
func WriteLinks(w io.Writer, ls *network.LinkSequence) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, ls.LinkCount())
	for i := 0; i < ls.LinkCount(); i++ {
		link := ls.Link(i)
		fmt.Fprintf(bw, "%d %v", i, link.Delta)
		for _, p := range link.Path {
			fmt.Fprintf(bw, " %d %d", p.X, p.Y)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
