package lint

import (
	"context"
	"fmt"

	"hilbert-circuits/board"
	"hilbert-circuits/logic"
)

type DiagnosticsPremiseLabels struct{}

func (DiagnosticsPremiseLabels) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	for _, c := range fctx.Document.Components {
		if c.Kind != board.Premise {
			continue
		}
		if _, err := logic.ParseGoal(c.Label); err != nil {
			diags = append(diags, Diagnostic{
				Severity:  SeverityError,
				Source:    "premise label",
				Message:   fmt.Sprintf("Premise %s has label %q, which is not a formula; it emits nothing.", c.ID, c.Label),
				Component: c.ID,
			}.at(fctx))
		}
	}
	return diags
}
