// Package solver evaluates a circuit: it propagates formula and provable
// signals through wires and components until nothing changes, then reports
// errors, the active set and whether the goal is reached.
package solver

import (
	"io"
	"log/slog"
	"sort"

	"hilbert-circuits/board"
	"hilbert-circuits/logic"
)

// DefaultMaxPasses bounds the fixed point. A circuit still changing after
// this many passes is reported as it stands.
const DefaultMaxPasses = 50

// ErrorSignal is the tooltip shown on a short-circuited net.
const ErrorSignal = "Error"

type Solver struct {
	maxPasses int
	logger    *slog.Logger
}

type Option func(*Solver)

func WithMaxPasses(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(opts ...Option) *Solver {
	s := &Solver{
		maxPasses: DefaultMaxPasses,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is everything a renderer needs after one evaluation. All slices
// are sorted so that equal inputs give identical results.
type Result struct {
	Solved         bool                `json:"solved"`
	ActiveIDs      []string            `json:"activeIds"`
	ErrorWireIDs   []string            `json:"errorWireIds"`
	ErrorPorts     map[string][]string `json:"errorPorts"`
	ErrorGoalPorts []string            `json:"errorGoalPorts"`
	// NetSignals maps every wire to the printed value of its net, "" for an
	// empty net and ErrorSignal for a shorted one.
	NetSignals map[string]string `json:"netSignals"`
	// Values maps every non-wire component with a signal to its printed
	// output.
	Values map[string]string `json:"values"`

	Passes    int  `json:"passes"`
	Converged bool `json:"converged"`
}

func emptyResult() Result {
	return Result{
		ActiveIDs:      []string{},
		ErrorWireIDs:   []string{},
		ErrorPorts:     map[string][]string{},
		ErrorGoalPorts: []string{},
		NetSignals:     map[string]string{},
		Values:         map[string]string{},
	}
}

// Evaluate runs the circuit to a fixed point and checks it against the goal.
// A goal that does not parse gives an unsolved result with empty sets.
func (s *Solver) Evaluate(components []board.Component, goalText string) Result {
	res, _ := s.run(components, goalText, nil)
	return res
}

// Evaluate uses a Solver with default options.
func Evaluate(components []board.Component, goalText string) Result {
	return New().Evaluate(components, goalText)
}

func (s *Solver) run(components []board.Component, goalText string, onPass func(*circuit)) (Result, *circuit) {
	goal, err := logic.ParseGoal(goalText)
	if err != nil {
		s.logger.Debug("goal does not parse", "goal", goalText, "err", err)
		return emptyResult(), nil
	}

	c := newCircuit(components)
	for c.passes < s.maxPasses {
		c.passes++
		changed := c.pass()
		if onPass != nil {
			onPass(c)
		}
		if !changed {
			c.converged = true
			break
		}
	}
	if !c.converged {
		s.logger.Debug("circuit did not settle", "passes", c.passes)
	}

	res := c.report(goal)
	s.logger.Debug("evaluated circuit",
		"components", len(components),
		"nets", len(c.nets.Nets),
		"passes", res.Passes,
		"solved", res.Solved,
	)
	return res, c
}

type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	s[v] = struct{}{}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
