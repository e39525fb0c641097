package lint

import (
	"context"
	"fmt"
	"sort"

	"hilbert-circuits/board"
)

type DiagnosticsPortKinds struct{}

func (DiagnosticsPortKinds) Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic) {
	ids := make([]string, 0, len(fctx.Result.ErrorPorts))
	for id := range fctx.Result.ErrorPorts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c, ok := fctx.Component(id)
		if !ok {
			continue
		}

		if c.Kind == board.Display {
			diags = append(diags, Diagnostic{
				Severity:  SeverityWarning,
				Source:    "display",
				Message:   fmt.Sprintf("Display %s is wired to signals that disagree.", id),
				Component: id,
			}.at(fctx))
			continue
		}

		for _, port := range fctx.Result.ErrorPorts[id] {
			p, _ := board.PortByID(c, port)
			diags = append(diags, Diagnostic{
				Severity:  SeverityError,
				Source:    "port kind",
				Message:   fmt.Sprintf("Port %s of %s %s takes %s signals but touches a wire of the other kind.", port, c.Kind, id, p.Kind),
				Component: id,
				Port:      port,
			}.at(fctx))
		}
	}
	return diags
}
