// Package nets groups wire segments into nets: maximal sets of touching
// wires of the same signal kind that carry one value.
package nets

import (
	"hilbert-circuits/board"
)

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri != rj {
		u.parent[ri] = rj
	}
}

// Netlist is the result of Build. Nets are numbered in order of the first
// wire that belongs to them.
type Netlist struct {
	Wires    []board.Component
	Segments []board.Segment
	Nets     [][]string

	netOf   map[string]int
	indexOf map[string]int
}

// Build connects every pair of wires that share a signal kind and whose
// segments touch. Pairs are tested exhaustively.
func Build(wires []board.Component) *Netlist {
	n := &Netlist{
		Wires:    wires,
		Segments: make([]board.Segment, len(wires)),
		netOf:    make(map[string]int, len(wires)),
		indexOf:  make(map[string]int, len(wires)),
	}
	for i, w := range wires {
		n.Segments[i] = board.SegmentOf(w)
		n.indexOf[w.ID] = i
	}

	uf := newUnionFind(len(wires))
	for i := range wires {
		for j := i + 1; j < len(wires); j++ {
			if wires[i].Signal != wires[j].Signal {
				continue
			}
			if board.SegmentsTouch(n.Segments[i], n.Segments[j]) {
				uf.union(i, j)
			}
		}
	}

	rootNet := map[int]int{}
	for i, w := range wires {
		root := uf.find(i)
		idx, ok := rootNet[root]
		if !ok {
			idx = len(n.Nets)
			rootNet[root] = idx
			n.Nets = append(n.Nets, nil)
		}
		n.Nets[idx] = append(n.Nets[idx], w.ID)
		n.netOf[w.ID] = idx
	}
	return n
}

// NetOf returns the net index of a wire.
func (n *Netlist) NetOf(wireID string) (int, bool) {
	idx, ok := n.netOf[wireID]
	return idx, ok
}

// Wire returns the wire with the given id.
func (n *Netlist) Wire(id string) (board.Component, bool) {
	i, ok := n.indexOf[id]
	if !ok {
		return board.Component{}, false
	}
	return n.Wires[i], true
}

// WireAt returns the first wire of kind k, in input order, touching p.
func (n *Netlist) WireAt(p board.Point, k board.SignalKind) (board.Component, bool) {
	for i, w := range n.Wires {
		if w.Signal == k && n.Segments[i].Touches(p) {
			return w, true
		}
	}
	return board.Component{}, false
}

// WiresAt returns every wire touching p regardless of kind.
func (n *Netlist) WiresAt(p board.Point) []board.Component {
	var out []board.Component
	for i, w := range n.Wires {
		if n.Segments[i].Touches(p) {
			out = append(out, w)
		}
	}
	return out
}

// NetAt is WireAt followed by NetOf.
func (n *Netlist) NetAt(p board.Point, k board.SignalKind) (int, bool) {
	w, ok := n.WireAt(p, k)
	if !ok {
		return 0, false
	}
	return n.NetOf(w.ID)
}

// Kind returns the signal kind shared by all wires of a net.
func (n *Netlist) Kind(net int) board.SignalKind {
	w, _ := n.Wire(n.Nets[net][0])
	return w.Signal
}
