package lint

import (
	"context"
	"fmt"
)

type DiagnosticsConvergence struct{}

func (DiagnosticsConvergence) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	if fctx.GoalErr != nil || fctx.Result.Converged {
		return nil
	}
	return []Diagnostic{{
		Severity: SeverityWarning,
		Source:   "convergence",
		Message:  fmt.Sprintf("The circuit was still changing after %d passes; results show its last state.", fctx.Result.Passes),
	}}
}
