package circuitfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2/lexer"

	"hilbert-circuits/board"
)

var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrNotCircuit       = errors.New("top-level object is not a Circuit")
)

// Document is a parsed .circuit file.
type Document struct {
	Title      string            `circuit:"title"`
	Goal       string            `circuit:"goal"`
	Components []board.Component `circuit:"-"`
	// Positions records where each component was declared, by id.
	Positions map[string]lexer.Position `circuit:"-"`
}

// objectKinds maps object names in a file to component kinds.
var objectKinds = map[string]board.Kind{
	"Atom":        board.Atom,
	"Not":         board.NotGate,
	"Implies":     board.ImpliesGate,
	"Axiom1":      board.Axiom1,
	"Axiom2":      board.Axiom2,
	"Axiom3":      board.Axiom3,
	"MP":          board.ModusPonens,
	"ModusPonens": board.ModusPonens,
	"Wire":        board.Wire,
	"Premise":     board.Premise,
	"Bridge":      board.Bridge,
	"Display":     board.Display,
}

func objectName(k board.Kind) string {
	switch k {
	case board.NotGate:
		return "Not"
	case board.ImpliesGate:
		return "Implies"
	case board.ModusPonens:
		return "MP"
	}
	for name, kind := range objectKinds {
		if kind == k && name != "ModusPonens" {
			return name
		}
	}
	return k.String()
}

type componentFields struct {
	ID       string           `circuit:"id"`
	Name     string           `circuit:"name"`
	Label    string           `circuit:"label"`
	Signal   board.SignalKind `circuit:"signal"`
	X        float64          `circuit:"x"`
	Y        float64          `circuit:"y"`
	W        float64          `circuit:"w"`
	H        float64          `circuit:"h"`
	Rotation int              `circuit:"rotation"`
	Active   *bool            `circuit:"active"`
	Locked   bool             `circuit:"locked"`
}

// Parse reads a document from its text. filename is only used in error
// messages.
func Parse(filename, content string) (*Document, error) {
	file, err := Parser.ParseString(filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return decode(file.Main)
}

// LoadFile reads and parses a .circuit file from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read circuit: %w", err)
	}
	return Parse(path, string(data))
}

func decode(main Object) (*Document, error) {
	if main.Name != "Circuit" {
		return nil, fmt.Errorf("%s: %w (found %s)", main.Pos, ErrNotCircuit, main.Name)
	}

	var doc Document
	if err := Unmarshal(Value{Object: &main}, &doc); err != nil {
		return nil, fmt.Errorf("failed to read circuit header: %w", err)
	}

	doc.Positions = map[string]lexer.Position{}
	counts := map[board.Kind]int{}
	for _, obj := range main.Children() {
		kind, ok := objectKinds[obj.Name]
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", obj.Pos, ErrUnknownComponent, obj.Name)
		}

		var fields componentFields
		obj := obj
		if err := Unmarshal(Value{Object: &obj}, &fields); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", obj.Pos, obj.Name, err)
		}

		c, err := fields.component(kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", obj.Pos, obj.Name, err)
		}
		counts[kind]++
		if c.ID == "" {
			c.ID = fmt.Sprintf("%s-%d", kind, counts[kind])
		}
		doc.Components = append(doc.Components, c)
		doc.Positions[c.ID] = obj.Pos
	}

	return &doc, nil
}

func (f componentFields) component(kind board.Kind) (board.Component, error) {
	if f.Signal == board.Any {
		return board.Component{}, errors.New("wires carry formula or provable signals")
	}

	c := board.Component{
		ID:       f.ID,
		Kind:     kind,
		X:        f.X,
		Y:        f.Y,
		W:        f.W,
		H:        f.H,
		Rotation: f.Rotation,
		IsActive: f.Active,
		Name:     f.Name,
		Label:    f.Label,
		Locked:   f.Locked,
	}
	if kind == board.Wire {
		c.Signal = f.Signal
	}

	dw, dh := board.DefaultSize(kind)
	if c.W == 0 {
		c.W = dw
	}
	if c.H == 0 {
		c.H = dh
	}
	return c, nil
}
