package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"hilbert-circuits/board"
	"hilbert-circuits/circuitfile"
	"hilbert-circuits/route"
)

var routeCommand = &cli.Command{
	Name:      "route",
	Usage:     "lay a wire between two grid points of a circuit, around what is already there",
	ArgsUsage: "<file.circuit>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "start point as x,y", Required: true},
		&cli.StringFlag{Name: "to", Usage: "end point as x,y", Required: true},
		&cli.StringFlag{Name: "signal", Usage: "formula or provable", Value: "formula"},
		&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "rewrite the file in place"},
	},
	Action: routeWire,
}

func parsePoint(s string) (board.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return board.Point{}, fmt.Errorf("i didn't understand the point %q; write it as x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return board.Point{}, fmt.Errorf("i didn't understand the point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return board.Point{}, fmt.Errorf("i didn't understand the point %q: %w", s, err)
	}
	return board.Point{X: x, Y: y}, nil
}

func routeWire(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("i need you to give me a circuit file to route in")
	}
	path := c.Args().First()

	from, err := parsePoint(c.String("from"))
	if err != nil {
		return err
	}
	to, err := parsePoint(c.String("to"))
	if err != nil {
		return err
	}
	kind, err := board.ParseSignalKind(c.String("signal"))
	if err != nil {
		return err
	}
	if kind == board.Any {
		return fmt.Errorf("wires carry formula or provable signals")
	}

	doc, err := circuitfile.LoadFile(path)
	if err != nil {
		return err
	}
	wires, err := route.Route(from, to, doc.Components, kind)
	if err != nil {
		return fmt.Errorf("failed to route from %s to %s: %w", from, to, err)
	}
	doc.Components = append(doc.Components, wires...)

	if !c.Bool("write") {
		return circuitfile.Format(c.App.Writer, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	defer f.Close()
	if err := circuitfile.Format(f, doc); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "added %d wires to %s\n", len(wires), path)
	return nil
}
