package board

import (
	"math"
	"strconv"
)

// Eps is the tolerance, in grid units, for every touch and coincidence test.
// Level geometry was authored against this value.
const Eps = 0.1

// Segment is the straight edge a wire occupies. C is the fixed coordinate
// (x for vertical segments, y for horizontal ones); Min and Max bound the
// other axis.
type Segment struct {
	Vertical bool
	C        float64
	Min      float64
	Max      float64
}

// SegmentOf returns the edge a wire lies on: rotation 0 is the top edge,
// 1 the left, 2 the bottom and 3 the right.
func SegmentOf(w Component) Segment {
	switch ((w.Rotation % 4) + 4) % 4 {
	case 1:
		return Segment{Vertical: true, C: w.X, Min: w.Y, Max: w.Y + w.H}
	case 2:
		return Segment{C: w.Y + w.H, Min: w.X, Max: w.X + w.W}
	case 3:
		return Segment{Vertical: true, C: w.X + w.W, Min: w.Y, Max: w.Y + w.H}
	}
	return Segment{C: w.Y, Min: w.X, Max: w.X + w.W}
}

// Touches reports whether point p lies on s.
func (s Segment) Touches(p Point) bool {
	along, across := p.X, p.Y
	if s.Vertical {
		along, across = p.Y, p.X
	}
	return math.Abs(across-s.C) < Eps && along >= s.Min-Eps && along <= s.Max+Eps
}

// SegmentsTouch reports whether two segments are collinear and overlap, or
// are perpendicular and meet.
func SegmentsTouch(a, b Segment) bool {
	if a.Vertical == b.Vertical {
		if math.Abs(a.C-b.C) > Eps {
			return false
		}
		return math.Max(a.Min, b.Min) <= math.Min(a.Max, b.Max)+Eps
	}
	// the crossing point has a.C on a's fixed axis and b.C on b's
	return b.C >= a.Min-Eps && b.C <= a.Max+Eps &&
		a.C >= b.Min-Eps && a.C <= b.Max+Eps
}

// Coincident reports whether two points are the same grid position.
func Coincident(a, b Point) bool {
	return math.Abs(a.X-b.X) < Eps && math.Abs(a.Y-b.Y) < Eps
}

// The goal region is the 8×8 square centered on the origin.
const (
	GoalMin = -4
	GoalMax = 4
)

var goalSteps = [...]float64{-3, -1, 1, 3}

// GoalPorts returns the 16 connection points on the goal region boundary:
// top and bottom pairs first, then left and right.
func GoalPorts() []Point {
	ports := make([]Point, 0, 4*len(goalSteps))
	for _, x := range goalSteps {
		ports = append(ports, Point{X: x, Y: GoalMin}, Point{X: x, Y: GoalMax})
	}
	for _, y := range goalSteps {
		ports = append(ports, Point{X: GoalMin, Y: y}, Point{X: GoalMax, Y: y})
	}
	return ports
}

// PointKey renders p as "x,y", the form used to report goal ports.
func PointKey(p Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// InGoalRegion reports whether p is strictly inside the goal square.
func InGoalRegion(p Point) bool {
	return p.X > GoalMin && p.X < GoalMax && p.Y > GoalMin && p.Y < GoalMax
}
