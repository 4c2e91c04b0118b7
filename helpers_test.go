package sweepline

import (
	"math"
	"math/rand/v2"
	"slices"
)

// RandomSegments returns n random segments in the unit square that are far from horizontal.
func RandomSegments(rng *rand.Rand, n int) []Segment {
	segs := make([]Segment, 0, n)
	for len(segs) < n {
		a := Point{rng.Float64(), rng.Float64()}
		b := Point{rng.Float64(), rng.Float64()}
		if math.Abs(a.Y-b.Y) < 1e-3 {
			continue
		}
		segs = append(segs, MustSegment(a, b))
	}
	return segs
}

// CrossingSegments returns n segments that all cross each other pairwise, with their top points ordered left to right and their bottom points ordered right to left.
func CrossingSegments(rng *rand.Rand, n int) []Segment {
	tops := make([]float64, n)
	bottoms := make([]float64, n)
	for i := range n {
		tops[i] = rng.Float64()
		bottoms[i] = rng.Float64()
	}
	slices.Sort(tops)
	slices.Sort(bottoms)

	segs := make([]Segment, n)
	for i := range n {
		segs[i] = MustSegment(Point{tops[i], 1.0}, Point{bottoms[n-1-i], 0.0})
	}
	rng.Shuffle(n, func(i, j int) {
		segs[i], segs[j] = segs[j], segs[i]
	})
	return segs
}

// naiveIntersections tests every pair of segments for a crossing.
func naiveIntersections(segs []Segment) [][2]int {
	pairs := [][2]int{}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if _, ok := segs[i].Cross(segs[j]); ok {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// randomPointFrom returns a random point in the unit square that is not at the same height as p.
func randomPointFrom(rng *rand.Rand, p Point) Point {
	for {
		q := Point{rng.Float64(), rng.Float64()}
		if 1e-3 <= math.Abs(q.Y-p.Y) {
			return q
		}
	}
}

// RandomPolylineSegments returns the segments of n random polylines with m points each, where consecutive segments share a vertex. Every other polyline is closed.
func RandomPolylineSegments(rng *rand.Rand, n, m int) []Segment {
	segs := []Segment{}
	for i := range n {
		p := &Polyline{}
		q := Point{rng.Float64(), rng.Float64()}
		p.Add(q.X, q.Y)
		for range m - 1 {
			q = randomPointFrom(rng, q)
			p.Add(q.X, q.Y)
		}
		if i%2 == 1 && 1e-3 <= math.Abs(q.Y-p.Coords()[0].Y) {
			p.Close()
		}
		s, err := p.Segments()
		if err != nil {
			panic(err)
		}
		segs = append(segs, s...)
	}
	return segs
}

// TJunctionSegments returns n random pairs of segments, where the second segment of each pair starts or ends on the interior of the first.
func TJunctionSegments(rng *rand.Rand, n int) []Segment {
	segs := make([]Segment, 0, 2*n)
	for range n {
		a := RandomSegments(rng, 1)[0]
		e := a.Top().Interpolate(a.Bottom(), 0.05+0.9*rng.Float64())
		segs = append(segs, a, MustSegment(e, randomPointFrom(rng, e)))
	}
	return segs
}
