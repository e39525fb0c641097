// circuit-fairy does chores on circuit files, save slots and level packs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "circuit-fairy",
		Usage:     "tidy circuits, route wires, inspect saves and check levels",
		Writer:    stdout,
		ErrWriter: stderr,
		ExitErrHandler: func(c *cli.Context, err error) {
			fmt.Fprintln(c.App.ErrWriter, err.Error())
		},
		Commands: []*cli.Command{
			fmtCommand,
			routeCommand,
			savesCommand,
			levelsCommand,
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		os.Exit(1)
	}
}
