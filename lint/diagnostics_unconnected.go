package lint

import (
	"context"
	"fmt"

	"hilbert-circuits/board"
	"hilbert-circuits/solver"
)

type DiagnosticsUnconnectedInputs struct{}

func (DiagnosticsUnconnectedInputs) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	fed := map[solver.Endpoint]bool{}
	for _, l := range fctx.Links {
		fed[l.To] = true
	}

	for _, c := range fctx.Document.Components {
		switch c.Kind {
		case board.Wire, board.Bridge, board.Display:
			continue
		}
		for _, p := range board.Ports(c) {
			if !p.Input || fed[solver.Endpoint{ID: c.ID, Port: p.ID}] {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity:  SeverityHint,
				Source:    "unconnected",
				Message:   fmt.Sprintf("Input %s of %s %s is not connected.", p.ID, c.Kind, c.ID),
				Component: c.ID,
				Port:      p.ID,
			}.at(fctx))
		}
	}
	return diags
}
