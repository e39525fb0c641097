package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"hilbert-circuits/circuitfile"
	"hilbert-circuits/levels"
	"hilbert-circuits/logic"
)

var packFlag = &cli.StringFlag{
	Name:    "pack",
	Usage:   "level pack file; the built-in pack when empty",
	EnvVars: []string{"CIRCUIT_LEVELS"},
}

var levelsCommand = &cli.Command{
	Name:  "levels",
	Usage: "inspect a level pack",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "show every level with its goal and tools",
			Flags:  []cli.Flag{packFlag},
			Action: listLevels,
		},
		{
			Name:      "check",
			Usage:     "evaluate a .circuit file as a solution to a level",
			ArgsUsage: "<level> <file.circuit>",
			Flags:     []cli.Flag{packFlag},
			Action:    checkLevel,
		},
	},
}

func loadPack(c *cli.Context) (*levels.Pack, error) {
	if path := c.String("pack"); path != "" {
		return levels.Load(path)
	}
	return levels.Default(), nil
}

func listLevels(c *cli.Context) error {
	pack, err := loadPack(c)
	if err != nil {
		return err
	}
	for i, l := range pack.Levels {
		tools := make([]string, len(l.Tools))
		for j, t := range l.Tools {
			tools[j] = t.String()
		}
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\t%s\t[%s]\n", i+1, l.ID, l.Title, logic.Display(l.Goal), strings.Join(tools, " "))
	}
	return nil
}

func checkLevel(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("i need you to tell me the [level] and the [file] to check")
	}
	pack, err := loadPack(c)
	if err != nil {
		return err
	}
	i, err := pack.Index(c.Args().Get(0))
	if err != nil {
		return err
	}
	l := pack.Levels[i]

	doc, err := circuitfile.LoadFile(c.Args().Get(1))
	if err != nil {
		return err
	}

	var locked []string
	for _, comp := range doc.Components {
		if !l.Allows(comp) {
			locked = append(locked, comp.ID)
		}
	}
	res := l.Evaluate(nil, doc.Components)

	switch {
	case len(locked) > 0:
		fmt.Fprintf(c.App.Writer, "%s uses tools the level doesn't offer: %s\n", l.ID, strings.Join(locked, ", "))
		return fmt.Errorf("%s is not solved", l.ID)
	case !res.Solved:
		fmt.Fprintf(c.App.Writer, "%s is not solved after %d passes\n", l.ID, res.Passes)
		return fmt.Errorf("%s is not solved", l.ID)
	}
	fmt.Fprintf(c.App.Writer, "%s is solved after %d passes\n", l.ID, res.Passes)
	return nil
}
