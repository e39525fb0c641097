package lint

import (
	"context"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

type Diagnostics interface {
	Analyze(ctx context.Context, fileURI string, fctx FileContext, engine *Engine) (diags []Diagnostic)
}

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	for v := SeverityError; v <= SeverityHint; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", b)
}

type Diagnostic struct {
	Pos       lexer.Position `json:"pos"`
	Severity  Severity       `json:"severity"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"`
	Port      string         `json:"port,omitempty"`
}

// at fills in the declaration position of the diagnostic's component when
// the circuit came from a file.
func (d Diagnostic) at(fctx FileContext) Diagnostic {
	if fctx.Document == nil || d.Component == "" {
		return d
	}
	if pos, ok := fctx.Document.Positions[d.Component]; ok {
		d.Pos = pos
	}
	return d
}
