// Package levels loads level packs: ordered puzzles, each with a goal, the
// tools the player may place and any components placed in advance.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hilbert-circuits/board"
	"hilbert-circuits/logic"
	"hilbert-circuits/solver"
)

// MaxPackSize bounds the level files we are willing to read.
const MaxPackSize = 1024 * 1024

//go:embed default.yaml
var defaultPack []byte

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrInvalidPack  = errors.New("invalid level pack")
)

// Tool is an unlockable palette entry, written "atom:P", "not" or "axiom2"
// in level files.
type Tool struct {
	Kind board.Kind
	// Name is the atom letter for atom tools.
	Name string
}

func (t Tool) String() string {
	if t.Name != "" {
		return t.Kind.String() + ":" + t.Name
	}
	return t.Kind.String()
}

func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParseTool(s string) (Tool, error) {
	kind, name, _ := strings.Cut(s, ":")
	k, err := board.ParseKind(kind)
	if err != nil {
		return Tool{}, err
	}
	if (k == board.Atom) != (name != "") {
		return Tool{}, fmt.Errorf("tool %q: only atoms carry a name", s)
	}
	return Tool{Kind: k, Name: name}, nil
}

// FreeBuild is the palette once every level is complete.
var FreeBuild = []Tool{
	{Kind: board.Atom, Name: "P"},
	{Kind: board.Atom, Name: "Q"},
	{Kind: board.Atom, Name: "R"},
	{Kind: board.ImpliesGate},
	{Kind: board.NotGate},
	{Kind: board.Axiom1},
	{Kind: board.Axiom2},
	{Kind: board.Axiom3},
	{Kind: board.ModusPonens},
}

type Level struct {
	ID          string            `yaml:"id" json:"id"`
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Goal        string            `yaml:"goal" json:"goal"`
	Tools       []Tool            `yaml:"tools" json:"tools"`
	Components  []board.Component `yaml:"components,omitempty" json:"components,omitempty"`
}

// Allows reports whether the level's palette offers a component. Wires are
// always available.
func (l Level) Allows(c board.Component) bool {
	if c.Kind == board.Wire {
		return true
	}
	for _, t := range l.Tools {
		if t.Kind != c.Kind {
			continue
		}
		if t.Kind != board.Atom || t.Name == c.Name {
			return true
		}
	}
	return false
}

// Board returns the level's prefab components followed by the player's.
func (l Level) Board(placed []board.Component) []board.Component {
	out := make([]board.Component, 0, len(l.Components)+len(placed))
	out = append(out, l.Components...)
	return append(out, placed...)
}

// Evaluate checks the player's components against the level goal.
func (l Level) Evaluate(s *solver.Solver, placed []board.Component) solver.Result {
	if s == nil {
		s = solver.New()
	}
	return s.Evaluate(l.Board(placed), l.Goal)
}

type Pack struct {
	Levels []Level `yaml:"levels" json:"levels"`
}

// Default returns the built-in pack.
func Default() *Pack {
	p, err := Parse(defaultPack)
	if err != nil {
		panic(err)
	}
	return p
}

// Load reads a pack from a YAML file.
func Load(path string) (*Pack, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level pack: %w", err)
	}
	if info.Size() > MaxPackSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrInvalidPack, path, info.Size(), MaxPackSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level pack: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a pack. Every goal and premise label must
// parse, and level ids must be unique.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPack, err)
	}
	if len(p.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrInvalidPack)
	}

	seen := map[string]bool{}
	for i := range p.Levels {
		l := &p.Levels[i]
		if l.ID == "" {
			return nil, fmt.Errorf("%w: level %d has no id", ErrInvalidPack, i+1)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("%w: duplicate level id %q", ErrInvalidPack, l.ID)
		}
		seen[l.ID] = true

		if _, err := logic.ParseGoal(l.Goal); err != nil {
			return nil, fmt.Errorf("%w: level %q: goal: %w", ErrInvalidPack, l.ID, err)
		}
		if err := normalize(l); err != nil {
			return nil, fmt.Errorf("%w: level %q: %w", ErrInvalidPack, l.ID, err)
		}
	}
	return &p, nil
}

func normalize(l *Level) error {
	counts := map[board.Kind]int{}
	for i := range l.Components {
		c := &l.Components[i]
		counts[c.Kind]++
		if c.ID == "" {
			c.ID = fmt.Sprintf("%s-%s-%d", l.ID, c.Kind, counts[c.Kind])
		}
		dw, dh := board.DefaultSize(c.Kind)
		if c.W == 0 {
			c.W = dw
		}
		if c.H == 0 {
			c.H = dh
		}
		if c.Kind == board.Premise {
			if _, err := logic.ParseGoal(c.Label); err != nil {
				return fmt.Errorf("premise %s: %w", c.ID, err)
			}
		}
		if c.Kind == board.Wire && c.Signal == board.Any {
			return fmt.Errorf("wire %s: wires carry formula or provable signals", c.ID)
		}
	}
	return nil
}

// Index returns the position of a level in the pack.
func (p *Pack) Index(id string) (int, error) {
	for i, l := range p.Levels {
		if l.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownLevel, id)
}

// At returns the level at index i.
func (p *Pack) At(i int) (Level, error) {
	if i < 0 || i >= len(p.Levels) {
		return Level{}, fmt.Errorf("%w: index %d", ErrUnknownLevel, i)
	}
	return p.Levels[i], nil
}

// Tools is the palette for level i; past the last level the free build
// palette applies.
func (p *Pack) Tools(i int) []Tool {
	if i >= len(p.Levels) {
		return FreeBuild
	}
	if l, err := p.At(i); err == nil {
		return l.Tools
	}
	return nil
}
