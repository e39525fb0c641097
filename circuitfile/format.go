package circuitfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hilbert-circuits/board"
)

// Format writes doc in the .circuit syntax. Parse(Format(doc)) yields doc
// again, with default sizes filled in.
func Format(w io.Writer, doc *Document) error {
	var b strings.Builder

	b.WriteString("Circuit {\n")
	if doc.Title != "" {
		fmt.Fprintf(&b, "\ttitle: %s\n", strconv.Quote(doc.Title))
	}
	fmt.Fprintf(&b, "\tgoal: %s\n", strconv.Quote(doc.Goal))
	for _, c := range doc.Components {
		b.WriteString("\t")
		writeComponent(&b, c)
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeComponent(b *strings.Builder, c board.Component) {
	fields := []string{"id: " + strconv.Quote(c.ID)}
	switch c.Kind {
	case board.Atom:
		fields = append(fields, "name: "+strconv.Quote(c.Name))
		if c.IsActive != nil {
			fields = append(fields, "active: "+strconv.FormatBool(*c.IsActive))
		}
	case board.Premise:
		fields = append(fields, "label: "+strconv.Quote(c.Label))
	case board.Wire:
		fields = append(fields, "signal: "+strconv.Quote(c.Signal.String()))
	}
	fields = append(fields, "x: "+num(c.X), "y: "+num(c.Y))

	if dw, dh := board.DefaultSize(c.Kind); c.W != dw || c.H != dh {
		fields = append(fields, "w: "+num(c.W), "h: "+num(c.H))
	}
	if c.Rotation != 0 {
		fields = append(fields, "rotation: "+strconv.Itoa(c.Rotation))
	}
	if c.Locked {
		fields = append(fields, "locked: true")
	}

	fmt.Fprintf(b, "%s { %s }", objectName(c.Kind), strings.Join(fields, "; "))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
