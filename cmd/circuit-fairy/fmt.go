package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/iafan/cwalk"
	"github.com/urfave/cli/v2"

	"hilbert-circuits/circuitfile"
)

var fmtCommand = &cli.Command{
	Name:      "fmt",
	Usage:     "list .circuit files whose layout differs from the canonical one; comments are not kept",
	ArgsUsage: "[dir]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "write",
			Aliases: []string{"w"},
			Usage:   "rewrite the files in place",
		},
	},
	Action: fmtCircuits,
}

// walkCircuitFiles calls fn for every .circuit file under root. fn may be
// called from several goroutines at once.
func walkCircuitFiles(root string, fn func(path string) error) error {
	return cwalk.Walk(root, func(rel string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".circuit") {
			return nil
		}
		return fn(filepath.Join(root, rel))
	})
}

func formatted(path string) (canonical, current []byte, err error) {
	current, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc, err := circuitfile.Parse(path, string(current))
	if err != nil {
		return nil, nil, err
	}
	var b bytes.Buffer
	if err := circuitfile.Format(&b, doc); err != nil {
		return nil, nil, err
	}
	return b.Bytes(), current, nil
}

func fmtCircuits(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	var (
		mu      sync.Mutex
		changed []string
	)
	err := walkCircuitFiles(root, func(path string) error {
		canonical, current, err := formatted(path)
		if err != nil {
			return err
		}
		if bytes.Equal(canonical, current) {
			return nil
		}
		if c.Bool("write") {
			if err := os.WriteFile(path, canonical, 0o644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", path, err)
			}
		}
		mu.Lock()
		changed = append(changed, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	sort.Strings(changed)
	for _, path := range changed {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}
