package sweepline

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/tdewolff/test"
)

func sortedByHeight(zs Intersections) bool {
	return slices.IsSortedFunc(zs, func(a, b Intersection) int {
		if a.Y < b.Y {
			return 1
		} else if b.Y < a.Y {
			return -1
		}
		return 0
	})
}

func TestSweep(t *testing.T) {
	var tts = []struct {
		path string
		zs   []Point
	}{
		{"", []Point{}},
		{"M0 4L0 2", []Point{}},
		{"M0 4L0 2M1 4L-1 2", []Point{{0.0, 3.0}}},
		{"M0 4L0 2M1 4L1 2", []Point{}},
		{"M0 4L0 2M1 6L-1 4", []Point{}},
		{"M0 4L4 0M4 4L0 0", []Point{{2.0, 2.0}}},
		{"M0 0L3 3M1 0L4 3M2 0L5 3M0 3L3 0M1 3L4 0M2 3L5 0", []Point{
			{2.5, 2.5},
			{2.0, 2.0}, {3.0, 2.0},
			{1.5, 1.5}, {2.5, 1.5}, {3.5, 1.5},
			{2.0, 1.0}, {3.0, 1.0},
			{2.5, 0.5},
		}},

		// endpoint contacts are not crossings
		{"M0 4L0 0M2 4L0 2", []Point{}},
		{"M0 4L0 0M0 2L2 0", []Point{}},
		{"M0 4L1 0L2 4", []Point{}},
		{"M0 0L1 4L2 0", []Point{}},
		{"M0 1L1 0L0 -1L-1 0Z", []Point{}},
		{"M0 4L0 0M2 4L0 2M1 4L-1 1", []Point{{0.0, 2.5}}},
		{"M0 0L10 10L10 0L0 10Z", []Point{{5.0, 5.0}}},
	}
	for _, tt := range tts {
		t.Run(tt.path, func(t *testing.T) {
			segs := MustParseSegments(tt.path)
			zs, err := Sweep(segs)
			test.Error(t, err)
			test.T(t, len(zs), len(tt.zs))
			test.That(t, sortedByHeight(zs))

			// points at the same height may come in any order
			for _, p := range tt.zs {
				test.That(t, slices.ContainsFunc(zs, func(z Intersection) bool {
					return z.Point.Equals(p)
				}), p, "not in", zs.Points())
			}
			test.T(t, zs.Pairs(), Pairwise(segs).Pairs())
		})
	}
}

func TestSweepIntersection(t *testing.T) {
	a := MustSegment(Point{0.0, 4.0}, Point{0.0, 2.0})
	b := MustSegment(Point{1.0, 4.0}, Point{-1.0, 2.0})
	zs, err := Sweep([]Segment{a, b})
	test.Error(t, err)
	test.T(t, zs, Intersections{{Point{0.0, 3.0}, a, b, 0, 1}})
	test.String(t, zs.String(), "[0; 3] 0×1")
}

func TestSweepSteps(t *testing.T) {
	a := MustSegment(Point{0.0, 4.0}, Point{0.0, 2.0})
	b := MustSegment(Point{1.0, 4.0}, Point{-1.0, 2.0})
	s := NewSweeper([]Segment{a, b})

	var tts = []struct {
		e      Event
		active []Segment
	}{
		{StartEvent{a, 0}, []Segment{a}},
		{StartEvent{b, 1}, []Segment{a, b}},
		{IntersectionEvent{Point{0.0, 3.0}, a, b, 0, 1}, []Segment{b, a}},
		{FinishEvent{a, 0}, []Segment{b}},
		{FinishEvent{b, 1}, []Segment{}},
	}
	for i, tt := range tts {
		e, ok := s.Step()
		test.That(t, ok, i)
		test.T(t, e, tt.e, i)
		test.Float(t, s.Y(), tt.e.Y(), i)
		test.T(t, s.Active(), tt.active, i)
	}
	_, ok := s.Step()
	test.That(t, !ok)
	test.That(t, s.Done())
	test.T(t, len(s.Intersections()), 1)
	test.T(t, s.Stats(), Stats{Events: 5, Starts: 2, Finishes: 2, Crossings: 1, Tests: 1, MaxActive: 2})
}

func TestSweepRandom(t *testing.T) {
	for seed := range uint64(20) {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 42))
			segs := RandomSegments(rng, 10+rng.IntN(60))

			zs, err := Sweep(segs)
			test.Error(t, err)
			test.That(t, sortedByHeight(zs))

			pairs := zs.Pairs()
			test.That(t, len(slices.Compact(slices.Clone(pairs))) == len(pairs), "duplicates")
			test.T(t, pairs, naiveIntersections(segs))
			test.T(t, pairs, Pairwise(segs).Pairs())

			for _, z := range zs {
				test.That(t, z.A.Equals(segs[z.IndexA]) && z.B.Equals(segs[z.IndexB]))
			}
		})
	}
}

func TestSweepContacts(t *testing.T) {
	for seed := range uint64(50) {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 21))
			segs := RandomPolylineSegments(rng, 4, 5)
			segs = append(segs, TJunctionSegments(rng, 10)...)
			segs = append(segs, RandomSegments(rng, 10)...)
			rng.Shuffle(len(segs), func(i, j int) {
				segs[i], segs[j] = segs[j], segs[i]
			})

			zs, err := Sweep(segs)
			test.Error(t, err)
			test.That(t, sortedByHeight(zs))
			test.T(t, zs.Pairs(), naiveIntersections(segs))
			test.T(t, zs.Pairs(), Pairwise(segs).Pairs())
		})
	}
}

func TestSweepSharedEndpoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(22, 23))
	for i := range 1000 {
		p := Point{rng.Float64(), rng.Float64()}
		a := MustSegment(p, randomPointFrom(rng, p))
		b := MustSegment(p, randomPointFrom(rng, p))
		e := a.Top().Interpolate(a.Bottom(), rng.Float64())
		c := MustSegment(e, randomPointFrom(rng, e))

		// shared vertex and a segment starting or ending on a
		zs, err := Sweep([]Segment{a, b})
		test.Error(t, err)
		test.T(t, len(zs), 0, i, a, b)

		zs, err = Sweep([]Segment{a, c})
		test.Error(t, err)
		test.T(t, len(zs), 0, i, a, c)
	}
}

func TestSweepAllCrossing(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	n := 40
	segs := CrossingSegments(rng, n)

	for _, order := range []Order{OrderSweep, OrderFixed} {
		t.Run(order.String(), func(t *testing.T) {
			s := NewSweeper(segs, WithOrder(order))
			zs, err := s.Run(context.Background())
			test.Error(t, err)
			test.T(t, len(zs), n*(n-1)/2)
			test.That(t, sortedByHeight(zs))
			test.T(t, zs.Pairs(), naiveIntersections(segs))

			stats := s.Stats()
			test.T(t, stats.Starts, n)
			test.T(t, stats.Finishes, n)
			test.T(t, stats.Crossings, len(zs))
			test.T(t, stats.Events, 2*n+len(zs))
			test.T(t, stats.MaxActive, n)
		})
	}
}

func TestSweepOrderFixed(t *testing.T) {
	a := MustSegment(Point{10.0, 10.0}, Point{0.0, 0.0})
	c := MustSegment(Point{8.0, 6.0}, Point{8.0, 0.0})
	b := MustSegment(Point{6.0, 5.0}, Point{0.0, 3.0})
	segs := []Segment{a, c, b}

	zs, err := Sweep(segs)
	test.Error(t, err)
	test.T(t, zs.Pairs(), [][2]int{{0, 2}})
	test.That(t, zs[0].Point.Equals(Point{4.5, 4.5}), zs[0].Point)

	// b is inserted left of c and a by its top point and is never adjacent to a
	zs, err = Sweep(segs, WithOrder(OrderFixed))
	test.Error(t, err)
	test.T(t, len(zs), 0)
}

func TestSweepOrderFixedRandom(t *testing.T) {
	for seed := range uint64(10) {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 13))
			segs := RandomSegments(rng, 50)

			zs, err := Sweep(segs, WithOrder(OrderFixed))
			test.Error(t, err)
			test.That(t, sortedByHeight(zs))

			pairs := zs.Pairs()
			test.That(t, len(slices.Compact(slices.Clone(pairs))) == len(pairs), "duplicates")

			all := naiveIntersections(segs)
			for _, pair := range pairs {
				test.That(t, slices.Contains(all, pair), pair)
			}
		})
	}
}

func TestSweepInputCopied(t *testing.T) {
	segs := MustParseSegments("M0 4L0 2M1 4L-1 2")
	s := NewSweeper(segs)
	segs[1] = MustSegment(Point{5.0, 4.0}, Point{5.0, 2.0})

	zs, err := s.Run(context.Background())
	test.Error(t, err)
	test.T(t, len(zs), 1)
}

func TestSweepMaxEvents(t *testing.T) {
	rng := rand.New(rand.NewPCG(14, 15))
	segs := CrossingSegments(rng, 10)

	s := NewSweeper(segs, WithMaxEvents(10))
	zs, err := s.Run(context.Background())
	test.That(t, errors.Is(err, ErrEventBudget), err)
	test.T(t, s.Stats().Events, 10)
	test.T(t, zs, s.Intersections())
	test.That(t, !s.Done())

	_, err = Sweep(segs, WithMaxEvents(2*10+45))
	test.Error(t, err)
}

func TestSweepContextCancelled(t *testing.T) {
	rng := rand.New(rand.NewPCG(16, 17))
	segs := RandomSegments(rng, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	zs, err := SweepContext(ctx, segs)
	test.That(t, errors.Is(err, context.Canceled), err)
	test.T(t, len(zs), 0)
}

func TestSweepMissingSegmentPanics(t *testing.T) {
	a := MustSegment(Point{0.0, 4.0}, Point{0.0, 2.0})
	b := MustSegment(Point{1.0, 4.0}, Point{-1.0, 2.0})
	s := NewSweeper([]Segment{a, b})
	s.queue.Push(IntersectionEvent{Point{0.0, 5.0}, a, b, 0, 1}) // before both segments start

	defer func() {
		test.That(t, recover() != nil, "must panic")
	}()
	s.Step()
}

func TestSweepNoIntersectionPanics(t *testing.T) {
	a := MustSegment(Point{0.0, 4.0}, Point{0.0, 2.0})
	b := MustSegment(Point{1.0, 4.0}, Point{1.0, 2.0})
	s := NewSweeper([]Segment{a, b})
	s.queue.Push(IntersectionEvent{Point{0.5, 3.0}, a, b, 0, 1})

	defer func() {
		test.That(t, recover() != nil, "must panic")
	}()
	for !s.Done() {
		s.Step()
	}
}

func TestSweepEpsilon(t *testing.T) {
	// nearly parallel segments
	a := MustSegment(Point{0.0, 1.0}, Point{0.0, -1.0})
	b := MustSegment(Point{-1e-4, 1.0}, Point{1e-4, -1.0})
	zs, err := Sweep([]Segment{a, b})
	test.Error(t, err)
	test.T(t, len(zs), 1)

	zs, err = Sweep([]Segment{a, b}, WithEpsilon(1e-3))
	test.Error(t, err)
	test.T(t, len(zs), 0)
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("fixed")
	test.Error(t, err)
	test.T(t, order, OrderFixed)
	order, err = ParseOrder("sweep")
	test.Error(t, err)
	test.T(t, order, OrderSweep)
	_, err = ParseOrder("diagonal")
	test.That(t, err != nil)
	test.String(t, Order(5).String(), "Order(5)")
}
