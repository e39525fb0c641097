package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/board"
)

func TestDefaultPack(t *testing.T) {
	p := Default()
	require.NotEmpty(t, p.Levels)

	i, err := p.Index("modus-ponens")
	require.NoError(t, err)

	l, err := p.At(i)
	require.NoError(t, err)
	require.Len(t, l.Components, 2)
	assert.Equal(t, board.Premise, l.Components[0].Kind)
	assert.True(t, l.Components[0].Locked)
	assert.Equal(t, 4.0, l.Components[0].W)

	_, err = p.Index("nope")
	assert.True(t, errors.Is(err, ErrUnknownLevel))
	_, err = p.At(len(p.Levels))
	assert.True(t, errors.Is(err, ErrUnknownLevel))

	assert.Equal(t, FreeBuild, p.Tools(len(p.Levels)))
	assert.Equal(t, []Tool{{Kind: board.Atom, Name: "P"}, {Kind: board.NotGate}}, p.Tools(0))
}

func TestLevelEvaluate(t *testing.T) {
	l, err := Default().At(3)
	require.NoError(t, err)

	placed := []board.Component{
		{ID: "a", Kind: board.Atom, Name: "P", X: -4, Y: 9, W: 4, H: 4},
		{ID: "b", Kind: board.Atom, Name: "Q", X: -4, Y: 10, W: 4, H: 4},
		{ID: "mp", Kind: board.ModusPonens, X: 0, Y: 10, W: 6, H: 6},
		{ID: "wa", Kind: board.Wire, X: -16, Y: 14, W: 16, H: 1, Signal: board.Provable},
		{ID: "wi1", Kind: board.Wire, X: -16, Y: 19, W: 14, H: 1, Signal: board.Provable},
		{ID: "wi2", Kind: board.Wire, X: -2, Y: 15, W: 1, H: 4, Rotation: 1, Signal: board.Provable},
		{ID: "wi3", Kind: board.Wire, X: -2, Y: 15, W: 2, H: 1, Signal: board.Provable},
	}
	for _, c := range placed {
		assert.True(t, l.Allows(c), c.ID)
	}
	assert.False(t, l.Allows(board.Component{Kind: board.Atom, Name: "R"}))
	assert.False(t, l.Allows(board.Component{Kind: board.Axiom1}))

	res := l.Evaluate(nil, placed)
	assert.Equal(t, "⊢ Q", res.Values["mp"])
	assert.Len(t, l.Board(placed), len(placed)+2)
}

func TestParseTool(t *testing.T) {
	cases := []struct {
		text string
		want Tool
		ok   bool
	}{
		{"atom:P", Tool{Kind: board.Atom, Name: "P"}, true},
		{"mp", Tool{Kind: board.ModusPonens}, true},
		{"axiom3", Tool{Kind: board.Axiom3}, true},
		{"atom", Tool{}, false},
		{"not:P", Tool{}, false},
		{"nand", Tool{}, false},
	}
	for _, c := range cases {
		got, err := ParseTool(c.text)
		if !c.ok {
			assert.Error(t, err, c.text)
			continue
		}
		require.NoError(t, err, c.text)
		assert.Equal(t, c.want, got)
		assert.Equal(t, c.text, got.String())
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":     "levels: []",
		"no id":     "levels: [{title: x, goal: P, tools: []}]",
		"duplicate": "levels: [{id: a, goal: P}, {id: a, goal: Q}]",
		"goal":      "levels: [{id: a, goal: 'P ->'}]",
		"premise":   "levels: [{id: a, goal: P, components: [{kind: premise, label: '->'}]}]",
		"any wire":  "levels: [{id: a, goal: P, components: [{kind: wire, signal: any}]}]",
		"kind":      "levels: [{id: a, goal: P, components: [{kind: nand}]}]",
		"tool":      "levels: [{id: a, goal: P, tools: [nand]}]",
	}
	for name, text := range cases {
		_, err := Parse([]byte(text))
		assert.True(t, errors.Is(err, ErrInvalidPack), "%s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels:\n  - id: one\n    goal: \"|- P -> (Q -> P)\"\n    tools: [axiom1]\n    components:\n      - {kind: wire, signal: provable, x: 1, y: 2}\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Levels, 1)

	w := p.Levels[0].Components[0]
	assert.Equal(t, "one-wire-1", w.ID)
	assert.Equal(t, board.Provable, w.Signal)
	assert.Equal(t, 1.0, w.W)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
