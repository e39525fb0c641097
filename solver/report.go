package solver

import (
	"hilbert-circuits/board"
	"hilbert-circuits/logic"
)

type report struct {
	c          *circuit
	errorWires stringSet
	errorPorts map[string]stringSet
	errorGoal  stringSet
}

func (r *report) addPort(component, port string) {
	set, ok := r.errorPorts[component]
	if !ok {
		set = stringSet{}
		r.errorPorts[component] = set
	}
	set.add(port)
}

// markWire flags a wire together with the rest of its net.
func (r *report) markWire(w board.Component) {
	net, ok := r.c.nets.NetOf(w.ID)
	if !ok {
		r.errorWires.add(w.ID)
		return
	}
	r.markNet(net)
}

func (r *report) markNet(net int) {
	for _, id := range r.c.nets.Nets[net] {
		r.errorWires.add(id)
	}
}

func goalKind(goal logic.Value) board.SignalKind {
	if logic.IsProvable(goal) {
		return board.Provable
	}
	return board.Formula
}

func (c *circuit) report(goal logic.Value) Result {
	r := &report{
		c:          c,
		errorWires: stringSet{},
		errorPorts: map[string]stringSet{},
		errorGoal:  stringSet{},
	}

	for net := range c.conflicts {
		r.markNet(net)
	}

	for _, comp := range c.components {
		for _, p := range c.ports[comp.ID] {
			for _, w := range c.nets.WiresAt(p.At) {
				if !p.Kind.Accepts(w.Signal) {
					r.addPort(comp.ID, p.ID)
					r.markWire(w)
				}
			}
		}
	}

	for _, comp := range c.components {
		if comp.Kind == board.Display {
			r.checkDisplay(comp)
		}
	}

	want := goalKind(goal)
	for _, gp := range board.GoalPorts() {
		for _, w := range c.nets.WiresAt(gp) {
			if w.Signal != want {
				r.errorGoal.add(board.PointKey(gp))
				r.markWire(w)
			}
		}
	}

	res := Result{
		ErrorWireIDs:   r.errorWires.sorted(),
		ErrorPorts:     make(map[string][]string, len(r.errorPorts)),
		ErrorGoalPorts: r.errorGoal.sorted(),
		NetSignals:     map[string]string{},
		Values:         map[string]string{},
		Passes:         c.passes,
		Converged:      c.converged,
	}
	for id, ports := range r.errorPorts {
		res.ErrorPorts[id] = ports.sorted()
	}

	active := stringSet{}
	for id, v := range c.values {
		active.add(id)
		res.Values[id] = v.String()
	}
	for net, ids := range c.nets.Nets {
		v := c.netValues[net]
		signal := ""
		switch {
		case c.conflicts[net]:
			signal = ErrorSignal
		case v != nil:
			signal = v.String()
		}
		for _, id := range ids {
			if v != nil {
				active.add(id)
			}
			res.NetSignals[id] = signal
		}
	}
	res.ActiveIDs = active.sorted()
	res.Solved = c.solved(goal, want)
	return res
}

// checkDisplay flags a display whose attached nets disagree or include a
// shorted net.
func (r *report) checkDisplay(comp board.Component) {
	c := r.c
	var (
		wires   []board.Component
		values  []string
		shorted bool
	)
	for _, p := range c.ports[comp.ID] {
		for _, w := range c.nets.WiresAt(p.At) {
			wires = append(wires, w)
			net, ok := c.nets.NetOf(w.ID)
			if !ok {
				continue
			}
			if c.conflicts[net] {
				shorted = true
			}
			if v := c.netValues[net]; v != nil {
				values = append(values, v.String())
			}
		}
	}

	bad := shorted
	for _, v := range values {
		if v != values[0] {
			bad = true
		}
	}
	if !bad {
		return
	}
	for _, w := range wires {
		r.markWire(w)
	}
	for _, p := range c.ports[comp.ID] {
		r.addPort(comp.ID, p.ID)
	}
}

// solved checks each goal port for a matching value, first on an attached
// net of the goal's kind, then on a component output sitting on the port.
// A shorted net never satisfies the goal.
func (c *circuit) solved(goal logic.Value, want board.SignalKind) bool {
	for _, gp := range board.GoalPorts() {
		if net, ok := c.nets.NetAt(gp, want); ok && !c.conflicts[net] {
			if logic.Equal(c.netValues[net], goal) {
				return true
			}
		}

		for _, comp := range c.components {
			for _, p := range c.ports[comp.ID] {
				if p.Input || p.Kind != want || !board.Coincident(p.At, gp) {
					continue
				}
				if logic.Equal(c.values[comp.ID], goal) {
					return true
				}
			}
		}
	}
	return false
}
