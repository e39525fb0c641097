package board

import "fmt"

// Port is a connection point on a component. X and Y are relative to the
// unrotated component's top-left corner.
type Port struct {
	ID    string     `json:"id"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Kind  SignalKind `json:"kind"`
	Input bool       `json:"input"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return PointKey(p)
}

// Ports lists the ports of c. Wires have none.
func Ports(c Component) []Port {
	w, h := c.W, c.H

	switch c.Kind {
	case Atom:
		return []Port{{ID: "out", X: w, Y: h / 2, Kind: Formula}}
	case NotGate:
		return []Port{
			{ID: "out", X: w, Y: h / 2, Kind: Formula},
			{ID: "in0", X: 0, Y: h / 2, Kind: Formula, Input: true},
		}
	case ImpliesGate:
		return []Port{
			{ID: "out", X: w, Y: h / 2, Kind: Formula},
			{ID: "in0", X: 0, Y: 1, Kind: Formula, Input: true},
			{ID: "in1", X: 0, Y: 3, Kind: Formula, Input: true},
		}
	case Axiom1, Axiom3:
		return []Port{
			{ID: "out", X: w, Y: h / 2, Kind: Provable},
			{ID: "in0", X: 0, Y: 1, Kind: Formula, Input: true},
			{ID: "in1", X: 0, Y: 3, Kind: Formula, Input: true},
		}
	case Axiom2:
		return []Port{
			{ID: "out", X: w, Y: h / 2, Kind: Provable},
			{ID: "in0", X: 0, Y: 1, Kind: Formula, Input: true},
			{ID: "in1", X: 0, Y: 3, Kind: Formula, Input: true},
			{ID: "in2", X: 0, Y: 5, Kind: Formula, Input: true},
		}
	case ModusPonens:
		return []Port{
			{ID: "out", X: w, Y: h / 2, Kind: Provable},
			{ID: "in0", X: 0, Y: 1, Kind: Formula, Input: true},
			{ID: "in1", X: 0, Y: 2, Kind: Formula, Input: true},
			{ID: "in2", X: 0, Y: 4, Kind: Provable, Input: true},
			{ID: "in3", X: 0, Y: 5, Kind: Provable, Input: true},
		}
	case Premise:
		return chipPorts("out", w, h, Provable, false)
	case Display:
		return chipPorts("in", w, h, Any, true)
	case Bridge:
		return []Port{
			{ID: "left", X: 0, Y: h / 2, Kind: Any, Input: true},
			{ID: "right", X: w, Y: h / 2, Kind: Any, Input: true},
			{ID: "top", X: w / 2, Y: 0, Kind: Any, Input: true},
			{ID: "bottom", X: w / 2, Y: h, Kind: Any, Input: true},
		}
	}
	return nil
}

// chipPorts places one port on every interior grid line of each edge.
func chipPorts(prefix string, w, h float64, kind SignalKind, input bool) []Port {
	var ports []Port
	for x := 1; float64(x) < w; x++ {
		ports = append(ports,
			Port{ID: fmt.Sprintf("%s_t_%d", prefix, x), X: float64(x), Y: 0, Kind: kind, Input: input},
			Port{ID: fmt.Sprintf("%s_b_%d", prefix, x), X: float64(x), Y: h, Kind: kind, Input: input},
		)
	}
	for y := 1; float64(y) < h; y++ {
		ports = append(ports,
			Port{ID: fmt.Sprintf("%s_l_%d", prefix, y), X: 0, Y: float64(y), Kind: kind, Input: input},
			Port{ID: fmt.Sprintf("%s_r_%d", prefix, y), X: w, Y: float64(y), Kind: kind, Input: input},
		)
	}
	return ports
}

// Outputs returns the output ports of c.
func Outputs(c Component) []Port {
	var out []Port
	for _, p := range Ports(c) {
		if !p.Input {
			out = append(out, p)
		}
	}
	return out
}

// PortByID finds a port of c by its id.
func PortByID(c Component, id string) (Port, bool) {
	for _, p := range Ports(c) {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// AbsolutePosition returns the grid position of port p on component c.
// The port vector is rotated about the component's center clockwise for
// every kind except wires, which turn the other way so that rotation 1 is
// the left edge.
func AbsolutePosition(c Component, p Port) Point {
	cx, cy := c.X+c.W/2, c.Y+c.H/2
	rx, ry := rotate(p.X-c.W/2, p.Y-c.H/2, c.Rotation, c.Kind == Wire)
	return Point{X: cx + rx, Y: cy + ry}
}

func rotate(x, y float64, rotation int, counterClockwise bool) (float64, float64) {
	r := ((rotation % 4) + 4) % 4
	if counterClockwise {
		r = (4 - r) % 4
	}
	switch r {
	case 1:
		return -y, x
	case 2:
		return -x, -y
	case 3:
		return y, -x
	}
	return x, y
}
