// Package board describes components placed on the circuit grid and the
// geometry used to connect them.
package board

import (
	"fmt"
)

type Kind int

const (
	Atom Kind = iota
	NotGate
	ImpliesGate
	Axiom1
	Axiom2
	Axiom3
	ModusPonens
	Wire
	Premise
	Bridge
	Display
)

var kindNames = [...]string{
	Atom:        "atom",
	NotGate:     "not",
	ImpliesGate: "implies",
	Axiom1:      "axiom1",
	Axiom2:      "axiom2",
	Axiom3:      "axiom3",
	ModusPonens: "mp",
	Wire:        "wire",
	Premise:     "premise",
	Bridge:      "bridge",
	Display:     "display",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown component kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind maps a kind name such as "mp" or "axiom2" to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown component kind %q", s)
}

// SignalKind says which signals a wire carries or a port accepts. Any is
// only ever used by ports.
type SignalKind int

const (
	Formula SignalKind = iota
	Provable
	Any
)

func (s SignalKind) String() string {
	switch s {
	case Formula:
		return "formula"
	case Provable:
		return "provable"
	case Any:
		return "any"
	}
	return fmt.Sprintf("SignalKind(%d)", int(s))
}

func (s SignalKind) MarshalText() ([]byte, error) {
	switch s {
	case Formula, Provable, Any:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("unknown signal kind %d", int(s))
}

func (s *SignalKind) UnmarshalText(b []byte) error {
	v, err := ParseSignalKind(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSignalKind(s string) (SignalKind, error) {
	switch s {
	case "formula", "":
		return Formula, nil
	case "provable":
		return Provable, nil
	case "any":
		return Any, nil
	}
	return 0, fmt.Errorf("unknown signal kind %q", s)
}

// Accepts reports whether a port of kind s may be connected to a wire of
// kind wire.
func (s SignalKind) Accepts(wire SignalKind) bool {
	return s == Any || s == wire
}

// Component is one placed item on the grid. Positions and sizes are in grid
// units; Rotation counts quarter turns.
type Component struct {
	ID       string     `json:"id" yaml:"id"`
	Kind     Kind       `json:"kind" yaml:"kind"`
	X        float64    `json:"x" yaml:"x"`
	Y        float64    `json:"y" yaml:"y"`
	W        float64    `json:"w" yaml:"w,omitempty"`
	H        float64    `json:"h" yaml:"h,omitempty"`
	Rotation int        `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	IsActive *bool      `json:"isActive,omitempty" yaml:"active,omitempty"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty"`
	Signal   SignalKind `json:"signal,omitempty" yaml:"signal,omitempty"`
	Locked   bool       `json:"locked,omitempty" yaml:"locked,omitempty"`
}

// Active reports whether an atom is emitting. Atoms are active unless
// explicitly switched off.
func (c *Component) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

func (c *Component) SetActive(on bool) {
	c.IsActive = &on
}

func (c *Component) String() string {
	return fmt.Sprintf("%s %s @(%g,%g)", c.Kind, c.ID, c.X, c.Y)
}

// DefaultSize is the footprint a freshly placed component of kind k takes.
func DefaultSize(k Kind) (w, h float64) {
	switch k {
	case Axiom2:
		return 4, 6
	case ModusPonens:
		return 6, 6
	case Wire:
		return 1, 1
	case Bridge:
		return 2, 2
	default:
		return 4, 4
	}
}

// Wires returns the wire components of cs in input order.
func Wires(cs []Component) []Component {
	var out []Component
	for _, c := range cs {
		if c.Kind == Wire {
			out = append(out, c)
		}
	}
	return out
}
