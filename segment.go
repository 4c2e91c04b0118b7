package sweepline

import (
	"errors"
	"fmt"
	"math"
)

// ErrHorizontal is returned when both endpoints of a segment lie on the same horizontal line (within Epsilon).
var ErrHorizontal = errors.New("horizontal segment")

// DegenerateSegmentError is returned when constructing a segment whose endpoints cannot be ordered from top to bottom.
type DegenerateSegmentError struct {
	A, B Point
}

func (e *DegenerateSegmentError) Error() string {
	return fmt.Sprintf("degenerate segment %v−%v: %v", e.A, e.B, ErrHorizontal)
}

func (e *DegenerateSegmentError) Unwrap() error {
	return ErrHorizontal
}

// Segment is a line segment between two points, where the top point always lies strictly above the bottom point. Horizontal segments cannot be represented.
type Segment struct {
	top, bottom Point
}

// NewSegment returns the segment between a and b. The endpoints are ordered so that the top point has the largest y-coordinate. It returns a DegenerateSegmentError when a and b lie on the same horizontal line.
func NewSegment(a, b Point) (Segment, error) {
	if math.Abs(a.Y-b.Y) < Epsilon {
		return Segment{}, &DegenerateSegmentError{a, b}
	} else if a.Y < b.Y {
		a, b = b, a
	}
	return Segment{a, b}, nil
}

// MustSegment is like NewSegment but panics for horizontal segments.
func MustSegment(a, b Point) Segment {
	s, err := NewSegment(a, b)
	if err != nil {
		panic(err)
	}
	return s
}

// Top returns the upper endpoint.
func (s Segment) Top() Point {
	return s.top
}

// Bottom returns the lower endpoint.
func (s Segment) Bottom() Point {
	return s.bottom
}

// WithTop replaces the top point. If p lies below the bottom point, p becomes the new bottom point and the old bottom point becomes the top point.
func (s Segment) WithTop(p Point) (Segment, error) {
	if math.Abs(p.Y-s.bottom.Y) < Epsilon {
		return s, &DegenerateSegmentError{p, s.bottom}
	} else if p.Y < s.bottom.Y {
		return Segment{s.bottom, p}, nil
	}
	return Segment{p, s.bottom}, nil
}

// WithBottom replaces the bottom point. If p lies above the top point, p becomes the new top point and the old top point becomes the bottom point.
func (s Segment) WithBottom(p Point) (Segment, error) {
	if math.Abs(p.Y-s.top.Y) < Epsilon {
		return s, &DegenerateSegmentError{s.top, p}
	} else if s.top.Y < p.Y {
		return Segment{p, s.top}, nil
	}
	return Segment{s.top, p}, nil
}

// Equals returns true if both endpoints are equal.
func (s Segment) Equals(o Segment) bool {
	return s.top.Equals(o.top) && s.bottom.Equals(o.bottom)
}

// Less orders segments by the x-coordinate of their top point.
func (s Segment) Less(o Segment) bool {
	return s.top.X < o.top.X
}

// XAt returns the x-coordinate of the line through the segment at height y.
func (s Segment) XAt(y float64) float64 {
	t := (s.top.Y - y) / (s.top.Y - s.bottom.Y)
	return s.top.Interpolate(s.bottom, t).X
}

// slope returns the change in x per unit of descent.
func (s Segment) slope() float64 {
	return (s.bottom.X - s.top.X) / (s.top.Y - s.bottom.Y)
}

// Bounds returns the bounding box.
func (s Segment) Bounds() Rect {
	return Rect{
		X0: math.Min(s.top.X, s.bottom.X),
		Y0: s.bottom.Y,
		X1: math.Max(s.top.X, s.bottom.X),
		Y1: s.top.Y,
	}
}

// Intersect returns the intersection point of both segments, including points where an endpoint of one segment touches the other. It returns false if the segments are parallel, collinear, or if the lines intersect outside of either segment.
func (s Segment) Intersect(o Segment) (Point, bool) {
	t, u, ok := s.lineParams(o, Epsilon)
	if !ok || t < 0.0 || 1.0 < t || u < 0.0 || 1.0 < u {
		return Point{}, false
	}
	return s.top.Interpolate(s.bottom, t), true
}

// Cross returns the point where both segments cross each other in their interiors. Contacts at an endpoint of either segment, such as T-junctions or shared vertices, are not crossings. Sweep and Pairwise report crossings only.
func (s Segment) Cross(o Segment) (Point, bool) {
	return s.cross(o, Epsilon)
}

func (s Segment) cross(o Segment, epsilon float64) (Point, bool) {
	t, u, ok := s.lineParams(o, epsilon)
	if !ok || !interior(t) || !interior(u) {
		return Point{}, false
	}
	return s.top.Interpolate(s.bottom, t), true
}

// interior returns true if the segment parameter t lies strictly between the endpoints, away from them by at least Epsilon.
func interior(t float64) bool {
	return Epsilon < t && t < 1.0-Epsilon
}

// lineParams returns the parameters t along s and u along o of the intersection of their supporting lines. It returns false if the lines are parallel within epsilon.
func (s Segment) lineParams(o Segment, epsilon float64) (float64, float64, bool) {
	r := s.bottom.Sub(s.top)
	w := o.bottom.Sub(o.top)
	den := r.PerpDot(w)
	if math.Abs(den) < epsilon {
		return 0.0, 0.0, false // parallel
	}
	d := o.top.Sub(s.top)
	return d.PerpDot(w) / den, d.PerpDot(r) / den, true
}

func (s Segment) String() string {
	return fmt.Sprintf("%v−%v", s.top, s.bottom)
}
