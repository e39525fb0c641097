// Package lint evaluates circuits and reports problems a player or level
// author would want to know about.
package lint

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hilbert-circuits/board"
	"hilbert-circuits/board/nets"
	"hilbert-circuits/circuitfile"
	"hilbert-circuits/logic"
	"hilbert-circuits/solver"
)

// FileContext is everything the diagnostics know about one circuit.
type FileContext struct {
	Body     []byte
	Document *circuitfile.Document
	Result   solver.Result
	Nets     *nets.Netlist
	Links    []solver.Link

	Goal    logic.Value
	GoalErr error

	byID map[string]board.Component
}

// Component looks a component up by id.
func (f FileContext) Component(id string) (board.Component, bool) {
	c, ok := f.byID[id]
	return c, ok
}

type Engine struct {
	solver *solver.Solver

	mu           sync.RWMutex
	fileContexts map[string]FileContext
}

func New(s *solver.Solver) *Engine {
	if s == nil {
		s = solver.New()
	}
	return &Engine{
		solver:       s,
		fileContexts: map[string]FileContext{},
	}
}

func (e *Engine) Solver() *solver.Solver {
	return e.solver
}

// SetFileContext parses content as a .circuit file and evaluates it.
func (e *Engine) SetFileContext(uri string, content []byte) error {
	doc, err := circuitfile.Parse(uri, string(content))
	if err != nil {
		return err
	}
	e.SetDocument(uri, content, doc)
	return nil
}

// SetDocument evaluates an already parsed circuit. content may be nil.
func (e *Engine) SetDocument(uri string, content []byte, doc *circuitfile.Document) {
	fctx := FileContext{
		Body:     content,
		Document: doc,
		Result:   e.solver.Evaluate(doc.Components, doc.Goal),
		Nets:     nets.Build(board.Wires(doc.Components)),
		Links:    solver.Links(doc.Components),
		byID:     make(map[string]board.Component, len(doc.Components)),
	}
	fctx.Goal, fctx.GoalErr = logic.ParseGoal(doc.Goal)
	for _, c := range doc.Components {
		fctx.byID[c.ID] = c
	}

	e.mu.Lock()
	e.fileContexts[uri] = fctx
	e.mu.Unlock()
}

func (e *Engine) GetFileContext(uri string) (FileContext, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	k, ok := e.fileContexts[uri]
	if !ok {
		return FileContext{}, errors.New("file context not found")
	}
	return k, nil
}

func (e *Engine) DeleteFileContext(uri string) {
	e.mu.Lock()
	delete(e.fileContexts, uri)
	e.mu.Unlock()
}

// Run applies every diagnostic in ds to a stored file and returns the
// results ordered by position, then severity.
func (e *Engine) Run(ctx context.Context, uri string, ds []Diagnostics) ([]Diagnostic, error) {
	fctx, err := e.GetFileContext(uri)
	if err != nil {
		return nil, err
	}

	var out []Diagnostic
	for _, d := range ds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, d.Analyze(ctx, uri, fctx, e)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Severity < out[j].Severity
	})
	return out, nil
}
