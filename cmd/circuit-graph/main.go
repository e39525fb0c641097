// circuit-graph draws how the components, nets and goal ports of a .circuit
// file are connected.
//
//	circuit-graph negation.circuit negation.svg
//
// The output format follows the extension: .png, .svg, .jpg or .dot.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"hilbert-circuits/board"
	"hilbert-circuits/circuitfile"
	"hilbert-circuits/solver"
)

func formatFor(path string) (graphviz.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return graphviz.PNG, nil
	case ".svg":
		return graphviz.SVG, nil
	case ".jpg", ".jpeg":
		return graphviz.JPG, nil
	case ".dot", ".gv":
		return graphviz.XDOT, nil
	}
	return "", fmt.Errorf("don't know how to render %s", path)
}

// circuitToGraph adds one node per component, net and the goal, and one edge
// per solver.Link. Labels carry the values after the final pass.
func circuitToGraph(graph *cgraph.Graph, doc *circuitfile.Document, s *solver.Solver) error {
	snaps, res := s.Trace(doc.Components, doc.Goal)
	var last solver.Snapshot
	if len(snaps) > 0 {
		last = snaps[len(snaps)-1]
	}

	graph.SetRankDir(cgraph.LRRank)
	if doc.Title != "" {
		graph.SetLabel(doc.Title)
	}

	nodes := map[string]*cgraph.Node{}
	node := func(name string) (*cgraph.Node, error) {
		if n, ok := nodes[name]; ok {
			return n, nil
		}
		n, err := graph.CreateNodeByName(name)
		if err != nil {
			return nil, err
		}
		nodes[name] = n
		return n, nil
	}

	for _, c := range doc.Components {
		if c.Kind == board.Wire {
			continue
		}
		n, err := node(c.ID)
		if err != nil {
			return err
		}
		label := c.ID + "\n" + c.Kind.String()
		if v := res.Values[c.ID]; v != "" {
			label += "\n" + v
		}
		n.SetShape(cgraph.BoxShape).SetLabel(label)
	}

	goal, err := node(solver.GoalID)
	if err != nil {
		return err
	}
	goal.SetShape(cgraph.DoubleCircleShape).SetLabel(doc.Goal)
	if res.Solved {
		goal.SetColor("darkgreen")
	}

	conflicts := map[string]bool{}
	for _, net := range last.Conflicts {
		conflicts[solver.NetID(net)] = true
	}

	for i, l := range solver.Links(doc.Components) {
		for _, end := range []solver.Endpoint{l.From, l.To} {
			if _, ok := nodes[end.ID]; ok {
				continue
			}
			n, err := node(end.ID)
			if err != nil {
				return err
			}
			n.SetShape(cgraph.EllipseShape).SetLabel(netLabel(end.ID, last))
			if conflicts[end.ID] {
				n.SetColor("red")
			}
		}

		e, err := graph.CreateEdgeByName(fmt.Sprintf("e%d", i), nodes[l.From.ID], nodes[l.To.ID])
		if err != nil {
			return err
		}
		e.SetLabel(edgeLabel(l))
		if l.Kind == board.Provable {
			e.SetStyle(cgraph.BoldEdgeStyle)
		}
		if l.Mismatch {
			e.SetStyle(cgraph.DashedEdgeStyle).SetColor("red")
		}
	}
	return nil
}

func netLabel(id string, last solver.Snapshot) string {
	var net int
	if _, err := fmt.Sscanf(id, "net%d", &net); err != nil || net >= len(last.Nets) {
		return id
	}
	if v := last.Nets[net]; v != "" {
		return id + "\n" + v
	}
	return id
}

func edgeLabel(l solver.Link) string {
	switch {
	case l.From.Port != "" && l.To.Port != "":
		return l.From.Port + " → " + l.To.Port
	case l.From.Port != "":
		return l.From.Port
	default:
		return l.To.Port
	}
}

func render(ctx context.Context, doc *circuitfile.Document, s *solver.Solver, format graphviz.Format, toWhere string) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}
	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return err
	}
	defer graph.Close()

	if err := circuitToGraph(graph, doc, s); err != nil {
		return err
	}
	return g.RenderFilename(ctx, graph, format, toWhere)
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: circuit-graph <file.circuit> <output.{png,svg,jpg,dot}>")
		os.Exit(2)
	}

	doc, err := circuitfile.LoadFile(os.Args[1])
	if err != nil {
		log.Fatalf("%s", err)
	}
	format, err := formatFor(os.Args[2])
	if err != nil {
		log.Fatalf("%s", err)
	}

	if err := render(context.Background(), doc, solver.New(), format, os.Args[2]); err != nil {
		log.Fatalf("could not render %s: %s", os.Args[2], err)
	}
}
