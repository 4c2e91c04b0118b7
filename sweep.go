// Package sweepline finds all intersections between a set of line segments using a Bentley-Ottmann plane sweep. A horizontal sweep line moves from top to bottom and only segments that are adjacent on the sweep line are tested for intersections, so that n segments with k intersections are handled in O((n+k) log n).
//
// Only crossings in the interiors of both segments are reported. Segments that touch at an endpoint, such as T-junctions and consecutive segments of a polyline, do not intersect. Horizontal segments, overlapping collinear segments and three or more segments crossing in the same point are not supported.
package sweepline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ErrEventBudget is returned when a sweep processes more events than allowed by WithMaxEvents.
var ErrEventBudget = errors.New("event budget exceeded")

// Intersection is the point where segments A and B cross. IndexA and IndexB are the indices of the segments in the input.
type Intersection struct {
	Point
	A, B           Segment
	IndexA, IndexB int
}

func (z Intersection) String() string {
	return fmt.Sprintf("%v %d×%d", z.Point, z.IndexA, z.IndexB)
}

// Intersections is a list of intersections, ordered from top to bottom when returned from a sweep.
type Intersections []Intersection

// Points returns the intersection points.
func (zs Intersections) Points() []Point {
	ps := make([]Point, len(zs))
	for i, z := range zs {
		ps[i] = z.Point
	}
	return ps
}

// Pairs returns the pairs of input indices that intersect, the lower index first, sorted ascending.
func (zs Intersections) Pairs() [][2]int {
	pairs := make([][2]int, len(zs))
	for i, z := range zs {
		pairs[i] = newPair(z.IndexA, z.IndexB)
	}
	slices.SortFunc(pairs, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return pairs
}

func (zs Intersections) String() string {
	sb := strings.Builder{}
	for i, z := range zs {
		if i != 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(z.String())
	}
	return sb.String()
}

func newPair(i, j int) [2]int {
	if j < i {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}

// Stats are counters of a sweep.
type Stats struct {
	Events    int // processed events
	Starts    int
	Finishes  int
	Crossings int // processed intersection events
	Tests     int // segment pairs tested for an intersection
	MaxActive int // maximum number of segments on the sweep line
}

// Sweeper is a single sweep over a set of segments. It owns the event queue, the sweep status and the resulting intersections. A Sweeper is not safe for concurrent use, but different Sweepers are independent.
type Sweeper struct {
	opts    options
	queue   sweepEvents
	status  *sweepStatus
	handled map[[2]int]bool // pairs already tested

	y     float64 // position of the sweep line
	zs    Intersections
	stats Stats
}

// NewSweeper returns a sweep over the given segments. The segments are copied.
func NewSweeper(segs []Segment, opts ...Option) *Sweeper {
	s := &Sweeper{
		opts:    defaultOptions(),
		handled: map[[2]int]bool{},
	}
	for _, opt := range opts {
		opt(&s.opts)
	}

	compare := compareSweep
	if s.opts.order == OrderFixed {
		compare = compareFixed
	}
	s.status = newSweepStatus(len(segs), compare)
	s.queue.Seed(segs)
	return s
}

// compareFixed orders by the top point, equal keys are placed after existing segments.
func compareFixed(a, b Segment) int {
	if a.Less(b) {
		return -1
	}
	return 1
}

// compareSweep orders by the position on the sweep line through the top point of a, and by direction below the sweep line for segments that touch.
func compareSweep(a, b Segment) int {
	ax, bx := a.top.X, b.XAt(a.top.Y)
	if ax < bx-Epsilon {
		return -1
	} else if bx+Epsilon < ax {
		return 1
	} else if a.slope() < b.slope() {
		return -1
	}
	return 1
}

// Done returns true when all events have been processed.
func (s *Sweeper) Done() bool {
	return s.queue.Len() == 0
}

// Y returns the position of the sweep line, ie. the height of the last processed event.
func (s *Sweeper) Y() float64 {
	return s.y
}

// Stats returns the counters of the sweep so far.
func (s *Sweeper) Stats() Stats {
	return s.stats
}

// Active returns the segments on the sweep line from left to right.
func (s *Sweeper) Active() []Segment {
	return s.status.Segments()
}

// Intersections returns the intersections found so far.
func (s *Sweeper) Intersections() Intersections {
	return s.zs
}

// Step processes the next event and returns it. It returns false when there are no events left.
func (s *Sweeper) Step() (Event, bool) {
	if s.queue.Len() == 0 {
		return nil, false
	}
	e := s.queue.Pop()
	s.y = e.Y()
	s.stats.Events++

	switch e := e.(type) {
	case StartEvent:
		s.handleStart(e)
	case FinishEvent:
		s.handleFinish(e)
	case IntersectionEvent:
		s.handleIntersection(e)
	default:
		panic(fmt.Sprintf("unknown event %T", e))
	}
	return e, true
}

// Run processes all remaining events and returns the intersections ordered from top to bottom. It returns an error when the context is cancelled or when the event budget is exceeded, together with the intersections found so far.
func (s *Sweeper) Run(ctx context.Context) (Intersections, error) {
	log := Logger()
	log.Debug("sweep started", "events", s.queue.Len(), "order", s.opts.order)
	for !s.Done() {
		if 0 < s.opts.maxEvents && s.opts.maxEvents <= s.stats.Events {
			log.Warn("sweep aborted", "reason", ErrEventBudget, "y", s.y, "max_events", s.opts.maxEvents)
			return s.zs, fmt.Errorf("sweep at y=%g: %w", s.y, ErrEventBudget)
		}
		if s.stats.Events%64 == 0 {
			if err := ctx.Err(); err != nil {
				log.Warn("sweep aborted", "reason", err, "y", s.y)
				return s.zs, fmt.Errorf("sweep at y=%g: %w", s.y, err)
			}
		}
		s.Step()
	}
	log.Debug("sweep finished", slog.Int("intersections", len(s.zs)), slog.Any("stats", s.stats))
	return s.zs, nil
}

func (s *Sweeper) handleStart(e StartEvent) {
	s.stats.Starts++
	n := s.status.Insert(e.Index, e.Segment)
	if s.stats.MaxActive < s.status.Len() {
		s.stats.MaxActive = s.status.Len()
	}
	if prev := n.Prev(); prev != nil {
		s.schedule(prev, n)
	}
	if next := n.Next(); next != nil {
		s.schedule(n, next)
	}
}

func (s *Sweeper) handleFinish(e FinishEvent) {
	s.stats.Finishes++
	n := s.status.Node(e.Index)
	prev, next := n.Prev(), n.Next()
	if prev == nil || next == nil {
		s.status.Remove(n)
		return
	}

	// removal moves segments between nodes, keep the indices
	iprev, inext := prev.index, next.index
	s.status.Remove(n)
	s.schedule(s.status.Node(iprev), s.status.Node(inext))
}

func (s *Sweeper) handleIntersection(e IntersectionEvent) {
	s.stats.Crossings++
	z, ok := e.A.cross(e.B, s.opts.epsilon)
	if !ok {
		panic(fmt.Sprintf("segments %d and %d do not intersect", e.IndexA, e.IndexB))
	}
	s.zs = append(s.zs, Intersection{z, e.A, e.B, e.IndexA, e.IndexB})

	s.status.Swap(s.status.Node(e.IndexA), s.status.Node(e.IndexB))

	// test against the new outer neighbours
	for _, ij := range [2][2]int{{e.IndexA, e.IndexB}, {e.IndexB, e.IndexA}} {
		n := s.status.Node(ij[0])
		if prev := n.Prev(); prev != nil && prev.index != ij[1] {
			s.schedule(prev, n)
		}
		if next := n.Next(); next != nil && next.index != ij[1] {
			s.schedule(n, next)
		}
	}
}

// schedule adds an intersection event for a and b, where a is left of b, if they cross below the sweep line. Each pair is tested only once. Endpoint contacts are never scheduled, so both segments are still on the sweep line when the crossing is handled.
func (s *Sweeper) schedule(a, b *statusNode) {
	pair := newPair(a.index, b.index)
	if s.handled[pair] {
		return
	}
	s.handled[pair] = true
	s.stats.Tests++

	z, ok := a.seg.cross(b.seg, s.opts.epsilon)
	if !ok || s.y <= z.Y {
		return
	}
	s.queue.Push(IntersectionEvent{z, a.seg, b.seg, a.index, b.index})
}

// Sweep returns all crossings between the segments, ordered from top to bottom. Endpoint contacts are not reported, see Segment.Cross.
func Sweep(segs []Segment, opts ...Option) (Intersections, error) {
	return SweepContext(context.Background(), segs, opts...)
}

// SweepContext is like Sweep but stops when the context is cancelled.
func SweepContext(ctx context.Context, segs []Segment, opts ...Option) (Intersections, error) {
	return NewSweeper(segs, opts...).Run(ctx)
}
