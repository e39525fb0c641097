package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/repr"

	"hilbert-circuits/board"
	"hilbert-circuits/circuitfile"
	"hilbert-circuits/logic"
	"hilbert-circuits/solver"
)

const helpText = `Commands:
	parse <formula>   parse a formula or judgement and show its tree
	load <file>       load a .circuit file
	goal <formula>    replace the goal of the loaded circuit
	show              list the loaded components
	eval              run the circuit to a fixed point
	step              run one propagation pass
	reset             start stepping from the first pass again
	fmt               print the loaded circuit in .circuit syntax
	quit              leave`

type session struct {
	solver *solver.Solver
	doc    *circuitfile.Document
	path   string

	snaps  []solver.Snapshot
	result solver.Result
	pass   int
}

func newSession(s *solver.Solver) *session {
	return &session{solver: s}
}

// exec runs one command line. It returns false once the user asked to quit.
func (s *session) exec(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch fields[0] {
	case "help", "h", "?":
		fmt.Fprintln(w, helpText)
	case "quit", "exit", "q":
		return false
	case "parse", "p":
		s.parse(w, rest)
	case "load", "l":
		if rest == "" {
			fmt.Fprintln(w, "Not enough arguments; did you forget to tell me which file to load?")
			return true
		}
		doc, err := circuitfile.LoadFile(rest)
		if err != nil {
			fmt.Fprintf(w, "Sorry, I couldn't load that file!\n\t%s\n", err)
			return true
		}
		s.doc, s.path = doc, rest
		s.resetTrace()
		fmt.Fprintf(w, "Loaded %d components from %s. The goal is %s.\n", len(doc.Components), rest, logic.Display(doc.Goal))
	case "goal", "g":
		if !s.loaded(w) {
			return true
		}
		if _, err := logic.ParseGoal(rest); err != nil {
			fmt.Fprintf(w, "That goal doesn't parse:\n\t%s\n", err)
			return true
		}
		s.doc.Goal = rest
		s.resetTrace()
	case "show":
		if s.loaded(w) {
			s.show(w)
		}
	case "eval", "e":
		if s.loaded(w) {
			res := s.solver.Evaluate(s.doc.Components, s.doc.Goal)
			s.summary(w, res)
		}
	case "step", "next", "n", "s":
		if s.loaded(w) {
			s.step(w)
		}
	case "reset":
		s.resetTrace()
	case "fmt":
		if s.loaded(w) {
			if err := circuitfile.Format(w, s.doc); err != nil {
				fmt.Fprintf(w, "Sorry, I ran into an error while printing!\n\t%s\n", err)
			}
		}
	default:
		fmt.Fprintln(w, "Sorry, I don't recognise that command.")
		fmt.Fprintln(w, `Type "help" to see what I can do.`)
	}
	return true
}

func (s *session) loaded(w io.Writer) bool {
	if s.doc == nil {
		fmt.Fprintln(w, "I don't have a circuit loaded. Did you mean to 'load' one first?")
		return false
	}
	return true
}

func (s *session) resetTrace() {
	s.snaps, s.pass = nil, 0
}

func (s *session) parse(w io.Writer, text string) {
	v, err := logic.ParseGoal(text)
	if err != nil {
		fmt.Fprintf(w, "That doesn't parse:\n\t%s\n", err)
		return
	}
	kind := "formula"
	if logic.IsProvable(v) {
		kind = "judgement"
	}
	fmt.Fprintf(w, "%s (%s)\n%s\n", v, kind, repr.String(v, repr.Indent("  ")))
}

func (s *session) show(w io.Writer) {
	for _, c := range s.doc.Components {
		fmt.Fprintf(w, "\t%-8s %-9s at %s", c.ID, c.Kind, board.Point{X: c.X, Y: c.Y})
		switch c.Kind {
		case board.Atom:
			fmt.Fprintf(w, "\t%s", c.Name)
		case board.Premise:
			fmt.Fprintf(w, "\t%s", c.Label)
		case board.Wire:
			fmt.Fprintf(w, "\t%s", c.Signal)
		}
		fmt.Fprintln(w)
	}
}

func (s *session) step(w io.Writer) {
	if s.snaps == nil {
		s.snaps, s.result = s.solver.Trace(s.doc.Components, s.doc.Goal)
		if len(s.snaps) == 0 {
			fmt.Fprintln(w, "Nothing to step through; the goal doesn't parse.")
			return
		}
	}
	if s.pass >= len(s.snaps) {
		s.summary(w, s.result)
		return
	}

	snap := s.snaps[s.pass]
	s.pass++
	fmt.Fprintf(w, "Pass %d:\n", snap.Pass)
	ids := make([]string, 0, len(snap.Values))
	for id := range snap.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "\t%s = %s\n", id, snap.Values[id])
	}
	for i, v := range snap.Nets {
		if v != "" {
			fmt.Fprintf(w, "\t%s = %s\n", solver.NetID(i), v)
		}
	}
	for _, net := range snap.Conflicts {
		fmt.Fprintf(w, "\t%s is shorted!\n", solver.NetID(net))
	}
}

func (s *session) summary(w io.Writer, res solver.Result) {
	switch {
	case res.Solved:
		fmt.Fprintf(w, "Solved after %d passes.\n", res.Passes)
	case !res.Converged && res.Passes > 0:
		fmt.Fprintf(w, "The circuit was still changing after %d passes.\n", res.Passes)
	default:
		fmt.Fprintf(w, "Not solved (%d passes).\n", res.Passes)
	}
	if len(res.ErrorWireIDs) > 0 {
		fmt.Fprintf(w, "Shorted wires: %s\n", strings.Join(res.ErrorWireIDs, ", "))
	}
	if len(res.ErrorGoalPorts) > 0 {
		fmt.Fprintf(w, "Goal ports with the wrong signal: %s\n", strings.Join(res.ErrorGoalPorts, ", "))
	}
}
