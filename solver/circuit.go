package solver

import (
	"hilbert-circuits/board"
	"hilbert-circuits/board/nets"
	"hilbert-circuits/logic"
)

type placedPort struct {
	board.Port
	At board.Point
}

// circuit is the mutable state of one evaluation.
type circuit struct {
	components []board.Component
	ports      map[string][]placedPort
	nets       *nets.Netlist

	values    map[string]logic.Value
	netValues []logic.Value
	conflicts map[int]bool
	channels  map[string]*channels

	passes    int
	converged bool
	changed   bool
}

func newCircuit(components []board.Component) *circuit {
	c := &circuit{
		components: components,
		ports:      make(map[string][]placedPort, len(components)),
		nets:       nets.Build(board.Wires(components)),
		values:     map[string]logic.Value{},
		conflicts:  map[int]bool{},
		channels:   map[string]*channels{},
	}
	c.netValues = make([]logic.Value, len(c.nets.Nets))

	for _, comp := range components {
		if comp.Kind == board.Wire {
			continue
		}
		for _, p := range board.Ports(comp) {
			c.ports[comp.ID] = append(c.ports[comp.ID], placedPort{p, board.AbsolutePosition(comp, p)})
		}
	}
	return c
}

func (c *circuit) port(id, port string) (placedPort, bool) {
	for _, p := range c.ports[id] {
		if p.ID == port {
			return p, true
		}
	}
	return placedPort{}, false
}

func isSource(k board.Kind) bool {
	return k == board.Atom || k == board.Premise
}

// pass evaluates sources first, then bridges, then everything else, each
// group in input order. It reports whether any component or net changed.
func (c *circuit) pass() bool {
	c.changed = false

	for _, comp := range c.components {
		if isSource(comp.Kind) {
			c.update(comp)
		}
	}
	for _, comp := range c.components {
		if comp.Kind == board.Bridge {
			c.bridge(comp)
		}
	}
	for _, comp := range c.components {
		switch comp.Kind {
		case board.Wire, board.Bridge, board.Display:
		default:
			if !isSource(comp.Kind) {
				c.update(comp)
			}
		}
	}
	return c.changed
}

func (c *circuit) update(comp board.Component) {
	v := c.compute(comp)
	if logic.Equal(c.values[comp.ID], v) {
		return
	}
	c.setValue(comp.ID, v)
	if v == nil {
		return
	}
	for _, p := range c.ports[comp.ID] {
		if p.Input {
			continue
		}
		if net, ok := c.nets.NetAt(p.At, p.Kind); ok {
			c.drive(net, v)
		}
	}
}

func (c *circuit) setValue(id string, v logic.Value) {
	if v == nil {
		delete(c.values, id)
	} else {
		c.values[id] = v
	}
	c.changed = true
}

// drive pushes v into a net. The first value a net receives sticks; a
// different value marks the net as shorted.
func (c *circuit) drive(net int, v logic.Value) {
	old := c.netValues[net]
	switch {
	case v == nil:
	case old == nil:
		c.netValues[net] = v
		c.changed = true
	case !logic.Equal(old, v):
		c.conflicts[net] = true
	}
}

func (c *circuit) compute(comp board.Component) logic.Value {
	switch comp.Kind {
	case board.Atom:
		if !comp.Active() || comp.Name == "" {
			return nil
		}
		return logic.Atom{Name: comp.Name}

	case board.Premise:
		v, err := logic.ParseGoal(comp.Label)
		if err != nil {
			return nil
		}
		if p, ok := v.(logic.Provable); ok {
			return p
		}
		return logic.Provable{Formula: v.(logic.Term)}

	case board.NotGate:
		if a, ok := c.term(comp, "in0"); ok {
			return logic.Not{X: a}
		}

	case board.ImpliesGate:
		a, okA := c.term(comp, "in0")
		b, okB := c.term(comp, "in1")
		if okA && okB {
			return logic.Implies{L: a, R: b}
		}

	case board.Axiom1, board.Axiom3:
		a, okA := c.term(comp, "in0")
		b, okB := c.term(comp, "in1")
		if !okA || !okB {
			return nil
		}
		if comp.Kind == board.Axiom1 {
			return logic.Axiom1(a, b)
		}
		return logic.Axiom3(a, b)

	case board.Axiom2:
		a, okA := c.term(comp, "in0")
		b, okB := c.term(comp, "in1")
		d, okD := c.term(comp, "in2")
		if okA && okB && okD {
			return logic.Axiom2(a, b, d)
		}

	case board.ModusPonens:
		a, okA := c.term(comp, "in0")
		b, okB := c.term(comp, "in1")
		if !okA || !okB {
			return nil
		}
		return logic.CheckModusPonens(a, b, c.input(comp, "in2"), c.input(comp, "in3"))
	}
	return nil
}

func (c *circuit) term(comp board.Component, port string) (logic.Term, bool) {
	return logic.AsTerm(c.input(comp, port))
}

// input resolves the value arriving at an input port: the net of the first
// kind-matching wire touching it if that net has a value, otherwise the
// output of another component sitting on the same point.
func (c *circuit) input(comp board.Component, portID string) logic.Value {
	p, ok := c.port(comp.ID, portID)
	if !ok {
		return nil
	}
	if net, ok := c.nets.NetAt(p.At, p.Kind); ok && c.netValues[net] != nil {
		return c.netValues[net]
	}
	return c.direct(comp.ID, p.At, p.Kind)
}

// direct looks for another component whose output sits on at.
func (c *circuit) direct(self string, at board.Point, kind board.SignalKind) logic.Value {
	for _, other := range c.components {
		if other.ID == self || other.Kind == board.Wire {
			continue
		}
		if other.Kind == board.Bridge {
			if v := c.bridgeOutput(other, at, kind); v != nil {
				return v
			}
			continue
		}
		for _, op := range c.ports[other.ID] {
			if op.Input || !board.Coincident(op.At, at) {
				continue
			}
			if v := c.values[other.ID]; v != nil {
				return v
			}
		}
	}
	return nil
}
