package sweepline

import (
	"cmp"
	"slices"

	"github.com/dhconnelly/rtreego"
)

type segmentBox struct {
	index  int
	bounds rtreego.Rect
}

func (b *segmentBox) Bounds() rtreego.Rect {
	return b.bounds
}

// segmentRect returns the bounding box of s, grown by Epsilon so that vertical segments have a positive width.
func segmentRect(s Segment) rtreego.Rect {
	r := s.Bounds()
	rect, err := rtreego.NewRect(rtreego.Point{r.X0 - Epsilon, r.Y0 - Epsilon}, []float64{r.X1 - r.X0 + 2.0*Epsilon, r.Y1 - r.Y0 + 2.0*Epsilon})
	if err != nil {
		panic(err) // lengths are always positive
	}
	return rect
}

// Pairwise returns all crossings between the segments by testing every pair of segments with overlapping bounding boxes. Like Sweep, endpoint contacts are not reported, see Segment.Cross. It is the reference for Sweep and is quadratic in the worst case. The result is ordered from top to bottom, where IndexA < IndexB.
func Pairwise(segs []Segment) Intersections {
	if len(segs) < 2 {
		return Intersections{}
	}

	boxes := make([]rtreego.Spatial, len(segs))
	for i, s := range segs {
		boxes[i] = &segmentBox{i, segmentRect(s)}
	}
	tree := rtreego.NewTree(2, 25, 50, boxes...)

	zs := Intersections{}
	for i, a := range segs {
		for _, obj := range tree.SearchIntersect(boxes[i].Bounds()) {
			j := obj.(*segmentBox).index
			if j <= i {
				continue
			}
			if z, ok := a.Cross(segs[j]); ok {
				zs = append(zs, Intersection{z, a, segs[j], i, j})
			}
		}
	}
	slices.SortFunc(zs, func(a, b Intersection) int {
		if a.Y != b.Y {
			return cmp.Compare(b.Y, a.Y)
		} else if a.IndexA != b.IndexA {
			return cmp.Compare(a.IndexA, b.IndexA)
		}
		return cmp.Compare(a.IndexB, b.IndexB)
	})
	return zs
}
