package lint

import (
	"context"
	"fmt"
	"strings"

	"hilbert-circuits/solver"
)

type DiagnosticsShortCircuit struct{}

func (DiagnosticsShortCircuit) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	for _, wires := range fctx.Nets.Nets {
		if fctx.Result.NetSignals[wires[0]] != solver.ErrorSignal {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity:  SeverityError,
			Source:    "short circuit",
			Message:   fmt.Sprintf("Wires %s are driven with different signals.", strings.Join(wires, ", ")),
			Component: wires[0],
		}.at(fctx))
	}
	return diags
}
