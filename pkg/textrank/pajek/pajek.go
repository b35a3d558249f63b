// Package pajek reads and writes co-occurrence graphs in the Pajek .net
// network format:
//
//	*Vertices 3
//	1 "cat"
//	2 "dog"
//	3 "bird"
//	*Edges
//	1 2 3
//	2 3 2
package pajek

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// Write serialises g to w. Vertices are numbered from 1 in the graph's
// first-occurrence order.
func Write(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	if err := writeGraph(bw, g); err != nil {
		return ioErr(err)
	}
	if err := bw.Flush(); err != nil {
		return ioErr(err)
	}
	return nil
}

// Named pairs a graph with the name written on its *Network line.
type Named struct {
	Name  string
	Graph *graph.Graph
}

// WriteNetworks writes several graphs into one stream, each preceded by
// a blank line and a "*Network <name>" header.
func WriteNetworks(w io.Writer, networks []Named) error {
	bw := bufio.NewWriter(w)
	for _, n := range networks {
		if _, err := fmt.Fprintf(bw, "\n*Network %s\n", n.Name); err != nil {
			return ioErr(err)
		}
		if err := writeGraph(bw, n.Graph); err != nil {
			return ioErr(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ioErr(err)
	}
	return nil
}

func writeGraph(w *bufio.Writer, g *graph.Graph) error {
	nodes := g.Nodes()
	if _, err := fmt.Fprintf(w, "*Vertices %d\n", len(nodes)); err != nil {
		return err
	}
	for i, label := range nodes {
		if _, err := fmt.Fprintf(w, "%d %q\n", i+1, label); err != nil {
			return err
		}
	}
	if _, err := w.WriteString("*Edges\n"); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		u, _ := g.Index(e.U)
		v, _ := g.Index(e.V)
		if _, err := fmt.Fprintf(w, "%d %d %s\n", u+1, v+1, FormatWeight(e.Weight)); err != nil {
			return err
		}
	}
	return nil
}

// FormatWeight renders whole weights as integers and others as decimals.
func FormatWeight(w float64) string {
	if w == math.Trunc(w) && math.Abs(w) < 1<<53 {
		return strconv.FormatInt(int64(w), 10)
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func ioErr(err error) error {
	return fmt.Errorf("write pajek: %w: %w", internalerr.ErrIO, err)
}
