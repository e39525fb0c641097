package lint

import (
	"context"
	"fmt"

	"hilbert-circuits/board"
)

// DiagnosticsGoalRegion flags components whose outputs are buried inside
// the goal square, where only the boundary ports are read.
type DiagnosticsGoalRegion struct{}

func (DiagnosticsGoalRegion) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	for _, c := range fctx.Document.Components {
		if c.Kind == board.Wire {
			continue
		}
		for _, p := range board.Outputs(c) {
			if !board.InGoalRegion(board.AbsolutePosition(c, p)) {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity:  SeverityWarning,
				Source:    "goal region",
				Message:   fmt.Sprintf("Output %s of %s %s lies inside the goal region.", p.ID, c.Kind, c.ID),
				Component: c.ID,
				Port:      p.ID,
			}.at(fctx))
		}
	}
	return diags
}
