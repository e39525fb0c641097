package nets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/board"
)

func wire(id string, x, y, w, h float64, rot int, kind board.SignalKind) board.Component {
	return board.Component{ID: id, Kind: board.Wire, X: x, Y: y, W: w, H: h, Rotation: rot, Signal: kind}
}

func TestBuildChains(t *testing.T) {
	wires := []board.Component{
		wire("a", 0, 0, 2, 1, 0, board.Formula),
		wire("b", 2, 0, 3, 1, 0, board.Formula),
		// vertical, meets the end of b
		wire("c", 5, 0, 1, 4, 1, board.Formula),
		wire("far", 20, 20, 1, 1, 0, board.Formula),
	}
	n := Build(wires)

	require.Len(t, n.Nets, 2)
	assert.Equal(t, []string{"a", "b", "c"}, n.Nets[0])
	assert.Equal(t, []string{"far"}, n.Nets[1])

	ia, _ := n.NetOf("a")
	ic, _ := n.NetOf("c")
	assert.Equal(t, ia, ic)
	_, ok := n.NetOf("missing")
	assert.False(t, ok)
}

func TestNetIsolationByKind(t *testing.T) {
	wires := []board.Component{
		wire("f", 0, 0, 2, 1, 0, board.Formula),
		wire("p", 2, 0, 2, 1, 0, board.Provable),
		// crossing at a right angle
		wire("q", 1, -1, 1, 2, 1, board.Provable),
	}
	n := Build(wires)

	fi, _ := n.NetOf("f")
	pi, _ := n.NetOf("p")
	qi, _ := n.NetOf("q")
	assert.NotEqual(t, fi, pi)
	assert.NotEqual(t, fi, qi)
	assert.Equal(t, board.Formula, n.Kind(fi))
	assert.Equal(t, board.Provable, n.Kind(pi))
}

func TestBuildIsOrderIndependentUpToNumbering(t *testing.T) {
	wires := []board.Component{
		wire("x", 0, 0, 1, 1, 0, board.Formula),
		wire("z", 5, 5, 1, 1, 0, board.Formula),
		wire("y", 1, 0, 1, 1, 0, board.Formula),
	}
	reversed := []board.Component{wires[2], wires[1], wires[0]}

	a, b := Build(wires), Build(reversed)
	same := func(n *Netlist, i, j string) bool {
		ni, _ := n.NetOf(i)
		nj, _ := n.NetOf(j)
		return ni == nj
	}
	assert.True(t, same(a, "x", "y"))
	assert.True(t, same(b, "x", "y"))
	assert.False(t, same(a, "x", "z"))
	assert.False(t, same(b, "x", "z"))
}

func TestWireAt(t *testing.T) {
	wires := []board.Component{
		wire("f", -11, -1, 2, 1, 0, board.Formula),
		wire("p", -11, -1, 2, 1, 0, board.Provable),
	}
	n := Build(wires)

	w, ok := n.WireAt(board.Point{X: -10, Y: -1}, board.Provable)
	require.True(t, ok)
	assert.Equal(t, "p", w.ID)
	assert.Len(t, n.WiresAt(board.Point{X: -11, Y: -1}), 2)

	_, ok = n.NetAt(board.Point{X: 0, Y: 0}, board.Formula)
	assert.False(t, ok)
}
