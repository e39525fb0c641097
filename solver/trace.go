package solver

import (
	"fmt"
	"sort"

	"hilbert-circuits/board"
	"hilbert-circuits/board/nets"
)

// Snapshot is the state of the circuit after one propagation pass.
type Snapshot struct {
	Pass   int               `json:"pass"`
	Values map[string]string `json:"values"`
	// Nets holds the printed value of each net, indexed by net number.
	Nets      []string `json:"nets"`
	Conflicts []int    `json:"conflicts"`
}

// Trace evaluates like Evaluate and also records a snapshot after every
// pass. The snapshots are empty when the goal does not parse.
func (s *Solver) Trace(components []board.Component, goalText string) ([]Snapshot, Result) {
	var snaps []Snapshot
	res, _ := s.run(components, goalText, func(c *circuit) {
		snaps = append(snaps, c.snapshot())
	})
	return snaps, res
}

func (c *circuit) snapshot() Snapshot {
	s := Snapshot{
		Pass:      c.passes,
		Values:    make(map[string]string, len(c.values)),
		Nets:      make([]string, len(c.netValues)),
		Conflicts: []int{},
	}
	for id, v := range c.values {
		s.Values[id] = v.String()
	}
	for i, v := range c.netValues {
		if v != nil {
			s.Nets[i] = v.String()
		}
	}
	for net := range c.conflicts {
		s.Conflicts = append(s.Conflicts, net)
	}
	sort.Ints(s.Conflicts)
	return s
}

// Endpoint names one side of a Link: a component port, a net, or a goal
// port.
type Endpoint struct {
	ID   string `json:"id"`
	Port string `json:"port,omitempty"`
}

const GoalID = "goal"

func NetID(net int) string {
	return fmt.Sprintf("net%d", net)
}

// Link is a connection derived from geometry. Mismatch is set when a wire
// of the wrong kind touches a port.
type Link struct {
	From     Endpoint         `json:"from"`
	To       Endpoint         `json:"to"`
	Kind     board.SignalKind `json:"kind"`
	Mismatch bool             `json:"mismatch,omitempty"`
}

// Links lists how components, nets and goal ports are attached to each
// other, in input order. Signals flow from From to To.
func Links(components []board.Component) []Link {
	nl := nets.Build(board.Wires(components))
	placed := map[string][]placedPort{}
	for _, comp := range components {
		if comp.Kind == board.Wire {
			continue
		}
		for _, p := range board.Ports(comp) {
			placed[comp.ID] = append(placed[comp.ID], placedPort{p, board.AbsolutePosition(comp, p)})
		}
	}

	var links []Link
	for _, comp := range components {
		for _, p := range placed[comp.ID] {
			self := Endpoint{ID: comp.ID, Port: p.ID}
			for _, w := range nl.WiresAt(p.At) {
				net, _ := nl.NetOf(w.ID)
				l := Link{From: self, To: Endpoint{ID: NetID(net)}, Kind: w.Signal, Mismatch: !p.Kind.Accepts(w.Signal)}
				if p.Input {
					l.From, l.To = l.To, l.From
				}
				links = append(links, l)
			}
			if !p.Input {
				continue
			}
			for _, other := range components {
				if other.ID == comp.ID {
					continue
				}
				for _, op := range placed[other.ID] {
					if op.Input || !board.Coincident(op.At, p.At) {
						continue
					}
					links = append(links, Link{
						From:     Endpoint{ID: other.ID, Port: op.ID},
						To:       self,
						Kind:     op.Kind,
						Mismatch: !p.Kind.Accepts(op.Kind),
					})
				}
			}
		}
	}

	for _, gp := range board.GoalPorts() {
		goal := Endpoint{ID: GoalID, Port: board.PointKey(gp)}
		for _, w := range nl.WiresAt(gp) {
			net, _ := nl.NetOf(w.ID)
			links = append(links, Link{From: Endpoint{ID: NetID(net)}, To: goal, Kind: w.Signal})
		}
		for _, comp := range components {
			for _, p := range placed[comp.ID] {
				if !p.Input && board.Coincident(p.At, gp) {
					links = append(links, Link{From: Endpoint{ID: comp.ID, Port: p.ID}, To: goal, Kind: p.Kind})
				}
			}
		}
	}
	return links
}
