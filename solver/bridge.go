package solver

import (
	"hilbert-circuits/board"
	"hilbert-circuits/logic"
)

// channels are the four independent tracks through a bridge: horizontal
// and vertical, each carrying one formula and one provable.
type channels struct {
	hf, hp, vf, vp logic.Value
}

func (ch *channels) first() logic.Value {
	for _, v := range []logic.Value{ch.hf, ch.hp, ch.vf, ch.vp} {
		if v != nil {
			return v
		}
	}
	return nil
}

func horizontal(port string) bool {
	return port == "left" || port == "right"
}

// connection is what one bridge port is attached to.
type connection struct {
	value logic.Value
	kind  board.SignalKind
	ok    bool
	net   int
	wire  bool
}

func (c *circuit) bridge(comp board.Component) {
	ch, ok := c.channels[comp.ID]
	if !ok {
		ch = &channels{}
		c.channels[comp.ID] = ch
	}

	left := c.bridgeConnection(comp, "left")
	right := c.bridgeConnection(comp, "right")
	top := c.bridgeConnection(comp, "top")
	bottom := c.bridgeConnection(comp, "bottom")

	c.channel(left, right, board.Formula, &ch.hf)
	c.channel(left, right, board.Provable, &ch.hp)
	c.channel(top, bottom, board.Formula, &ch.vf)
	c.channel(top, bottom, board.Provable, &ch.vp)

	if v := ch.first(); v != nil && !logic.Equal(c.values[comp.ID], v) {
		c.setValue(comp.ID, v)
	}
}

// channel carries a value from either end of one track to the other. A
// track whose two ends disagree on kind carries nothing. When both ends
// already hold different values the track takes the first one and both nets
// keep their own.
func (c *circuit) channel(a, b connection, kind board.SignalKind, slot *logic.Value) {
	if !(a.ok && a.kind == kind) && !(b.ok && b.kind == kind) {
		return
	}
	if a.ok && b.ok && a.kind != b.kind {
		return
	}

	var v logic.Value
	switch {
	case a.value != nil:
		v = a.value
	case b.value != nil:
		v = b.value
	default:
		return
	}

	if !logic.Equal(*slot, v) {
		*slot = v
		c.changed = true
	}
	// A track only fills empty nets; it never shorts a net that already
	// carries a value.
	for _, conn := range []connection{a, b} {
		if conn.wire && c.netValues[conn.net] == nil {
			c.netValues[conn.net] = v
			c.changed = true
		}
	}
}

func (c *circuit) bridgeConnection(comp board.Component, portID string) connection {
	p, ok := c.port(comp.ID, portID)
	if !ok {
		return connection{}
	}

	if ws := c.nets.WiresAt(p.At); len(ws) > 0 {
		net, _ := c.nets.NetOf(ws[0].ID)
		return connection{value: c.netValues[net], kind: ws[0].Signal, ok: true, net: net, wire: true}
	}

	for _, other := range c.components {
		if other.ID == comp.ID || other.Kind == board.Wire {
			continue
		}
		if other.Kind == board.Bridge {
			if v := c.bridgeOutput(other, p.At, board.Any); v != nil {
				return connection{value: v, kind: signalKind(v), ok: true}
			}
			continue
		}
		for _, op := range c.ports[other.ID] {
			if op.Input || !board.Coincident(op.At, p.At) {
				continue
			}
			if v := c.values[other.ID]; v != nil {
				return connection{value: v, kind: signalKind(v), ok: true}
			}
		}
	}
	return connection{}
}

// bridgeOutput is the value a bridge offers at point at to a port of the
// given kind, read from the track matching the side the point is on.
func (c *circuit) bridgeOutput(bridge board.Component, at board.Point, kind board.SignalKind) logic.Value {
	ch, ok := c.channels[bridge.ID]
	if !ok {
		return nil
	}
	for _, bp := range c.ports[bridge.ID] {
		if !board.Coincident(bp.At, at) {
			continue
		}
		f, p := ch.vf, ch.vp
		if horizontal(bp.ID) {
			f, p = ch.hf, ch.hp
		}
		if kind.Accepts(board.Formula) && f != nil {
			return f
		}
		if kind.Accepts(board.Provable) && p != nil {
			return p
		}
	}
	return nil
}

func signalKind(v logic.Value) board.SignalKind {
	if logic.IsProvable(v) {
		return board.Provable
	}
	return board.Formula
}
