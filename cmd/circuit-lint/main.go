// circuit-lint evaluates .circuit files and prints what is wrong with them.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"hilbert-circuits/lint"
	"hilbert-circuits/solver"
)

// sourceLine returns the trimmed line of body a diagnostic points at.
func sourceLine(body []byte, line int) string {
	lines := strings.Split(string(body), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return "\t" + strings.TrimLeft(lines[line-1], " \t")
}

// lintFile prints the diagnostics of one file and returns how many were
// errors.
func lintFile(w io.Writer, eng *lint.Engine, file string) (int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", file, err)
	}
	if err := eng.SetFileContext(file, data); err != nil {
		return 0, fmt.Errorf("could not analyse file %s: %w", file, err)
	}
	defer eng.DeleteFileContext(file)

	diags, err := eng.Run(context.Background(), file, lint.DefaultDiagnostics)
	if err != nil {
		return 0, err
	}

	errs := 0
	for _, d := range diags {
		if d.Severity == lint.SeverityError {
			errs++
		}
		fmt.Fprintf(w, "%d:%d\t%s\t%s: %s (%s)\n", d.Pos.Line, d.Pos.Column, file, d.Severity, d.Message, d.Source)
		if src := sourceLine(data, d.Pos.Line); src != "" {
			fmt.Fprintf(w, "\n%s\n", src)
		}
		fmt.Fprintf(w, "\n")
	}
	return errs, nil
}

func main() {
	maxPasses := flag.Int("max-passes", solver.DefaultMaxPasses, "give up propagating after this many passes")
	flag.Parse()

	eng := lint.New(solver.New(solver.WithMaxPasses(*maxPasses)))

	failed := false
	for _, file := range flag.Args() {
		errs, err := lintFile(os.Stdout, eng, file)
		if err != nil {
			log.Fatalf("%s", err)
		}
		failed = failed || errs > 0
	}
	if failed {
		os.Exit(1)
	}
}
