package lint

import (
	"context"
	"fmt"

	"hilbert-circuits/logic"
)

type DiagnosticsGoalSyntax struct{}

func (DiagnosticsGoalSyntax) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	if fctx.GoalErr == nil {
		return nil
	}
	return []Diagnostic{{
		Severity: SeverityError,
		Source:   "goal syntax",
		Message:  fmt.Sprintf("The goal %q is not a formula or judgement; nothing can satisfy it.", fctx.Document.Goal),
	}}
}

type DiagnosticsGoalPorts struct{}

func (DiagnosticsGoalPorts) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	if len(fctx.Result.ErrorGoalPorts) == 0 {
		return nil
	}

	want := "formula"
	if logic.IsProvable(fctx.Goal) {
		want = "provable"
	}
	for _, key := range fctx.Result.ErrorGoalPorts {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Source:   "goal port",
			Message:  fmt.Sprintf("The goal port at %s expects a %s wire.", key, want),
			Port:     key,
		})
	}
	return diags
}
