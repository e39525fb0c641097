package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/board"
)

func atom(id, name string, x, y float64) board.Component {
	return board.Component{ID: id, Kind: board.Atom, Name: name, X: x, Y: y, W: 4, H: 4}
}

func node(id string, kind board.Kind, x, y float64) board.Component {
	w, h := board.DefaultSize(kind)
	return board.Component{ID: id, Kind: kind, X: x, Y: y, W: w, H: h}
}

func premise(id, label string, x, y float64) board.Component {
	c := node(id, board.Premise, x, y)
	c.Label = label
	return c
}

func wire(id string, x, y, w, h float64, rot int, kind board.SignalKind) board.Component {
	return board.Component{ID: id, Kind: board.Wire, X: x, Y: y, W: w, H: h, Rotation: rot, Signal: kind}
}

// notCircuit feeds atom P through a negation gate into the goal port at
// (-4,-1).
func notCircuit() []board.Component {
	return []board.Component{
		atom("p", "P", -15, -3),
		node("n", board.NotGate, -9, -3),
		wire("w1", -11, -1, 2, 1, 0, board.Formula),
		wire("w2", -5, -1, 1, 1, 0, board.Formula),
	}
}

func TestNegationReachesGoal(t *testing.T) {
	res := Evaluate(notCircuit(), "¬P")

	assert.True(t, res.Solved)
	assert.Equal(t, []string{"n", "p", "w1", "w2"}, res.ActiveIDs)
	assert.Empty(t, res.ErrorWireIDs)
	assert.Empty(t, res.ErrorPorts)
	assert.Empty(t, res.ErrorGoalPorts)
	assert.Equal(t, "P", res.NetSignals["w1"])
	assert.Equal(t, "¬P", res.NetSignals["w2"])
	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Passes)
}

func TestGoalSpellings(t *testing.T) {
	for _, goal := range []string{"¬P", "~P", "-.P", "not P", "(¬P)"} {
		assert.True(t, Evaluate(notCircuit(), goal).Solved, goal)
	}
	assert.False(t, Evaluate(notCircuit(), "P").Solved)
	assert.False(t, Evaluate(notCircuit(), "|- ¬P").Solved)
}

func TestInactiveAtom(t *testing.T) {
	cs := notCircuit()
	cs[0].SetActive(false)

	res := Evaluate(cs, "¬P")
	assert.False(t, res.Solved)
	assert.Empty(t, res.ActiveIDs)
	assert.Equal(t, "", res.NetSignals["w1"])
}

func TestUnparsableGoal(t *testing.T) {
	for _, goal := range []string{"", "P ->", "(P", "P Q", "p"} {
		res := Evaluate(notCircuit(), goal)
		assert.Equal(t, emptyResult(), res, goal)
	}
}

func TestDeterminism(t *testing.T) {
	cs := append(notCircuit(), atom("q", "Q", -15, 5), wire("w3", -11, 7, 3, 1, 0, board.Formula))
	assert.Equal(t, Evaluate(cs, "¬P"), Evaluate(cs, "¬P"))
}

func TestAxiomOneReachesGoal(t *testing.T) {
	cs := []board.Component{
		atom("r", "R", -20, -4),
		atom("p", "P", -20, 1),
		// out (-4,-1) sits directly on a goal port
		node("ax", board.Axiom1, -8, -3),
		wire("wr", -16, -2, 8, 1, 0, board.Formula),
		wire("wp1", -16, 3, 6, 1, 0, board.Formula),
		wire("wp2", -10, 0, 1, 3, 1, board.Formula),
		wire("wp3", -10, 0, 2, 1, 0, board.Formula),
	}

	res := Evaluate(cs, "|- (R -> (P -> R))")
	assert.True(t, res.Solved)
	assert.Equal(t, "⊢ (R → (P → R))", res.Values["ax"])
	assert.Empty(t, res.ErrorWireIDs)

	assert.False(t, Evaluate(cs, "(R -> (P -> R))").Solved, "formula goal never matches a provable")
	assert.False(t, Evaluate(cs, "|- (P -> (R -> P))").Solved)
}

func mpCircuit(premiseA string) []board.Component {
	return []board.Component{
		atom("a", "P", -4, 9),
		atom("b", "Q", -4, 10),
		node("mp", board.ModusPonens, 0, 10),
		premise("pa", premiseA, -20, 12),
		premise("pimp", "P -> Q", -20, 18),
		wire("wa", -16, 14, 16, 1, 0, board.Provable),
		wire("wi1", -16, 19, 14, 1, 0, board.Provable),
		wire("wi2", -2, 15, 1, 4, 1, board.Provable),
		wire("wi3", -2, 15, 2, 1, 0, board.Provable),
	}
}

func TestModusPonensRejectsWrongPremise(t *testing.T) {
	res := Evaluate(mpCircuit("Q"), "|- Q")

	assert.False(t, res.Solved)
	assert.NotContains(t, res.Values, "mp")
	assert.NotContains(t, res.ActiveIDs, "mp")
	assert.Empty(t, res.ErrorPorts)
	assert.Empty(t, res.ErrorWireIDs)
	assert.Equal(t, "⊢ Q", res.NetSignals["wa"])
	assert.Equal(t, "⊢ (P → Q)", res.NetSignals["wi3"])
}

func TestModusPonensDerives(t *testing.T) {
	res := Evaluate(mpCircuit("P"), "|- Q")
	assert.Equal(t, "⊢ Q", res.Values["mp"])
	assert.Contains(t, res.ActiveIDs, "mp")
}

func TestPremiseLabelThatDoesNotParse(t *testing.T) {
	res := Evaluate([]board.Component{premise("x", "P ->", 10, 10)}, "P")
	assert.Empty(t, res.Values)
}

func TestKindMismatchAtPort(t *testing.T) {
	cs := []board.Component{
		node("mp", board.ModusPonens, 0, 10),
		wire("wf", -3, 14, 3, 1, 0, board.Formula),
		wire("wp", -2, 12, 1, 4, 1, board.Provable),
	}

	res := Evaluate(cs, "P")
	assert.Equal(t, map[string][]string{"mp": {"in2"}}, res.ErrorPorts)
	assert.Equal(t, []string{"wf"}, res.ErrorWireIDs)
}

func shortCircuit() []board.Component {
	return []board.Component{
		atom("p", "P", -20, -10),
		atom("q", "Q", -20, -4),
		wire("w1", -16, -8, 4, 1, 0, board.Formula),
		wire("w2", -16, -2, 4, 1, 0, board.Formula),
		wire("w3", -12, -8, 1, 7, 1, board.Formula),
		wire("w4", -12, -1, 8, 1, 0, board.Formula),
	}
}

func TestShortCircuit(t *testing.T) {
	res := Evaluate(shortCircuit(), "P")

	assert.False(t, res.Solved)
	assert.Equal(t, []string{"w1", "w2", "w3", "w4"}, res.ErrorWireIDs)
	for _, id := range []string{"w1", "w2", "w3", "w4"} {
		assert.Equal(t, ErrorSignal, res.NetSignals[id])
	}
	assert.Empty(t, res.ErrorPorts)
}

func TestGoalPortKindMismatch(t *testing.T) {
	res := Evaluate(notCircuit(), "|- P")

	assert.Equal(t, []string{"-4,-1"}, res.ErrorGoalPorts)
	assert.Equal(t, []string{"w2"}, res.ErrorWireIDs)
	assert.False(t, res.Solved)
}

func TestPassLimit(t *testing.T) {
	res := New(WithMaxPasses(1)).Evaluate(notCircuit(), "¬P")
	assert.Equal(t, 1, res.Passes)
	assert.False(t, res.Converged)
	assert.True(t, res.Solved)
}

func TestBridgeCarriesFormula(t *testing.T) {
	cs := []board.Component{
		atom("p", "P", -4, -1),
		node("br", board.Bridge, 0, 0),
		node("n", board.NotGate, 2, -1),
	}

	res := Evaluate(cs, "P")
	assert.Equal(t, "¬P", res.Values["n"])
	assert.Contains(t, res.ActiveIDs, "br")
}

func TestBridgeJoinsDisagreeingNets(t *testing.T) {
	q := atom("q", "Q", 26, -1)
	q.Rotation = 2
	cs := []board.Component{
		atom("p", "P", 12, -1),
		wire("l", 16, 1, 4, 1, 0, board.Formula),
		node("br", board.Bridge, 20, 0),
		wire("r", 22, 1, 4, 1, 0, board.Formula),
		q,
	}

	res := Evaluate(cs, "P")
	assert.Empty(t, res.ErrorWireIDs)
	assert.Empty(t, res.ErrorPorts)
	assert.Equal(t, map[string]string{"l": "P", "r": "Q"}, res.NetSignals)
	assert.Equal(t, "P", res.Values["br"])
}

func TestBridgeFillsEmptyNet(t *testing.T) {
	cs := []board.Component{
		atom("p", "P", 12, -1),
		wire("l", 16, 1, 4, 1, 0, board.Formula),
		node("br", board.Bridge, 20, 0),
		wire("r", 22, 1, 4, 1, 0, board.Formula),
	}

	res := Evaluate(cs, "P")
	assert.Empty(t, res.ErrorWireIDs)
	assert.Equal(t, map[string]string{"l": "P", "r": "P"}, res.NetSignals)
}

func TestDisplayDisagreement(t *testing.T) {
	cs := []board.Component{
		atom("p", "P", 2, 9),
		atom("q", "Q", 2, 11),
		node("d", board.Display, 10, 10),
		wire("a", 6, 11, 4, 1, 0, board.Formula),
		wire("b", 6, 13, 4, 1, 0, board.Formula),
	}

	res := Evaluate(cs, "P")
	assert.Equal(t, []string{"a", "b"}, res.ErrorWireIDs)
	require.Contains(t, res.ErrorPorts, "d")
	assert.Len(t, res.ErrorPorts["d"], 12)

	cs[1].Name = "P"
	res = Evaluate(cs, "P")
	assert.Empty(t, res.ErrorWireIDs)
	assert.Empty(t, res.ErrorPorts)
}

func TestTrace(t *testing.T) {
	snaps, res := New().Trace(notCircuit(), "¬P")

	require.Len(t, snaps, res.Passes)
	assert.Equal(t, 1, snaps[0].Pass)
	assert.Equal(t, map[string]string{"p": "P", "n": "¬P"}, snaps[0].Values)
	assert.Equal(t, []string{"P", "¬P"}, snaps[0].Nets)
	assert.Empty(t, snaps[0].Conflicts)

	snaps, _ = New().Trace(shortCircuit(), "P")
	assert.Equal(t, []int{0}, snaps[0].Conflicts)

	snaps, _ = New().Trace(notCircuit(), "->")
	assert.Empty(t, snaps)
}

func TestLinks(t *testing.T) {
	links := Links(notCircuit())

	assert.Contains(t, links, Link{From: Endpoint{"p", "out"}, To: Endpoint{ID: "net0"}, Kind: board.Formula})
	assert.Contains(t, links, Link{From: Endpoint{ID: "net0"}, To: Endpoint{"n", "in0"}, Kind: board.Formula})
	assert.Contains(t, links, Link{From: Endpoint{"n", "out"}, To: Endpoint{ID: "net1"}, Kind: board.Formula})
	assert.Contains(t, links, Link{From: Endpoint{ID: "net1"}, To: Endpoint{GoalID, "-4,-1"}, Kind: board.Formula})
	assert.Len(t, links, 4)
}
