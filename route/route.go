// Package route lays out wires between two grid points. Paths are
// orthogonal, one grid unit per step, and keep clear of components and of
// wires that would short or overlap them.
package route

import (
	"container/heap"
	"errors"
	"math"

	"github.com/google/uuid"

	"hilbert-circuits/board"
)

// MaxOps caps the number of expanded points so that an unreachable target
// fails quickly.
const MaxOps = 3000

const (
	margin  = 0.1
	overlap = 0.01
)

var ErrNoPath = errors.New("no wire path")

type node struct {
	p      board.Point
	g, f   float64
	seq    int
	parent *node
}

type queue []*node

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(*node)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

type router struct {
	from, to board.Point
	kind     board.SignalKind
	blocks   []board.Component
	wires    []board.Segment
	same     []board.Segment
}

func newRouter(from, to board.Point, components []board.Component, kind board.SignalKind) *router {
	r := &router{from: from, to: to, kind: kind}
	for _, c := range components {
		if c.Kind != board.Wire {
			r.blocks = append(r.blocks, c)
			continue
		}
		s := board.SegmentOf(c)
		r.wires = append(r.wires, s)
		if c.Signal == kind {
			r.same = append(r.same, s)
		}
	}
	return r
}

func (r *router) endpoint(p board.Point) bool {
	return board.Coincident(p, r.from) || board.Coincident(p, r.to)
}

// insideComponent reports whether p lies strictly inside a component body.
func (r *router) insideComponent(p board.Point) bool {
	for _, c := range r.blocks {
		if p.X > c.X+margin && p.X < c.X+c.W-margin &&
			p.Y > c.Y+margin && p.Y < c.Y+c.H-margin {
			return true
		}
	}
	return false
}

// onSameKind reports whether p lies on a wire of the routed kind; stepping
// there would join the two nets.
func (r *router) onSameKind(p board.Point) bool {
	for _, s := range r.same {
		if s.Touches(p) {
			return true
		}
	}
	return false
}

// alongWire reports whether the step a-b runs inside any wire segment.
// Wires of the other kind may be crossed but not followed.
func (r *router) alongWire(a, b board.Point) bool {
	vertical := math.Abs(a.X-b.X) < margin
	for _, s := range r.wires {
		if s.Vertical != vertical {
			continue
		}
		c, lo, hi := a.Y, math.Min(a.X, b.X), math.Max(a.X, b.X)
		if vertical {
			c, lo, hi = a.X, math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		}
		if math.Abs(c-s.C) < margin && lo >= s.Min-overlap && hi <= s.Max+overlap {
			return true
		}
	}
	return false
}

func (r *router) blocked(from, to board.Point) bool {
	if !r.endpoint(to) && (r.insideComponent(to) || r.onSameKind(to)) {
		return true
	}
	return r.alongWire(from, to)
}

func manhattan(a, b board.Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Find searches for the shortest orthogonal path from one point to another
// for a wire of the given kind. The path includes both endpoints.
func Find(from, to board.Point, components []board.Component, kind board.SignalKind) ([]board.Point, error) {
	r := newRouter(from, to, components, kind)

	seq := 0
	open := &queue{{p: from, f: manhattan(from, to)}}
	closed := map[string]bool{}
	best := map[string]float64{board.PointKey(from): 0}

	for ops := 0; open.Len() > 0 && ops < MaxOps; ops++ {
		cur := heap.Pop(open).(*node)
		key := board.PointKey(cur.p)
		if closed[key] {
			continue
		}
		closed[key] = true

		if board.Coincident(cur.p, to) {
			return cur.path(), nil
		}

		for _, n := range neighbours(cur.p) {
			nk := board.PointKey(n)
			if closed[nk] || r.blocked(cur.p, n) {
				continue
			}
			g := cur.g + 1
			if old, ok := best[nk]; ok && old <= g {
				continue
			}
			best[nk] = g
			seq++
			heap.Push(open, &node{p: n, g: g, f: g + manhattan(n, to), seq: seq, parent: cur})
		}
	}
	return nil, ErrNoPath
}

func neighbours(p board.Point) [4]board.Point {
	return [4]board.Point{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

func (n *node) path() []board.Point {
	var out []board.Point
	for ; n != nil; n = n.parent {
		out = append(out, n.p)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Wires turns a path into wire components, one per straight run. newID
// names each wire; nil uses random UUIDs.
func Wires(path []board.Point, kind board.SignalKind, newID func() string) []board.Component {
	if newID == nil {
		newID = uuid.NewString
	}

	var out []board.Component
	emit := func(a, b board.Point) {
		w := board.Component{ID: newID(), Kind: board.Wire, Signal: kind}
		if math.Abs(a.X-b.X) < margin {
			w.Rotation = 1
			w.X, w.Y = a.X, math.Min(a.Y, b.Y)
			w.W, w.H = 1, math.Abs(a.Y-b.Y)
		} else {
			w.X, w.Y = math.Min(a.X, b.X), a.Y
			w.W, w.H = math.Abs(a.X-b.X), 1
		}
		out = append(out, w)
	}

	if len(path) < 2 {
		return nil
	}
	start := path[0]
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := path[i-1], path[i], path[i+1]
		turn := (math.Abs(prev.X-cur.X) < margin) != (math.Abs(cur.X-next.X) < margin)
		if turn {
			emit(start, cur)
			start = cur
		}
	}
	emit(start, path[len(path)-1])
	return out
}

// Route finds a path and returns it as wires.
func Route(from, to board.Point, components []board.Component, kind board.SignalKind) ([]board.Component, error) {
	path, err := Find(from, to, components, kind)
	if err != nil {
		return nil, err
	}
	return Wires(path, kind, nil), nil
}
