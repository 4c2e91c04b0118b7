package sweepline

import "fmt"

// Polyline defines a list of points in 2D space that form a polyline. If the last coordinate equals the first coordinate, we assume the polyline to close itself.
type Polyline struct {
	coords []Point
}

// Empty returns true if the polyline has no segments.
func (p *Polyline) Empty() bool {
	return len(p.coords) < 2
}

// Len returns the number of segments.
func (p *Polyline) Len() int {
	if p.Empty() {
		return 0
	}
	return len(p.coords) - 1
}

// Add adds a new point to the polyline.
func (p *Polyline) Add(x, y float64) *Polyline {
	p.coords = append(p.coords, Point{x, y})
	return p
}

// Close adds a new point equal to the first, closing the polyline.
func (p *Polyline) Close() *Polyline {
	if 0 < len(p.coords) {
		p.coords = append(p.coords, p.coords[0])
	}
	return p
}

// Closed returns true if the last point coincides with the first.
func (p *Polyline) Closed() bool {
	return 0 < len(p.coords) && p.coords[0].Equals(p.coords[len(p.coords)-1])
}

// Coords returns the list of coordinates of the polyline.
func (p *Polyline) Coords() []Point {
	return p.coords
}

// Segments returns the segments between consecutive coordinates. Segments between coinciding coordinates are skipped. It returns an error for horizontal segments.
func (p *Polyline) Segments() ([]Segment, error) {
	segs := make([]Segment, 0, p.Len())
	for i := 1; i < len(p.coords); i++ {
		if p.coords[i-1].Equals(p.coords[i]) {
			continue
		}
		s, err := NewSegment(p.coords[i-1], p.coords[i])
		if err != nil {
			return nil, fmt.Errorf("polyline segment %d: %w", i-1, err)
		}
		segs = append(segs, s)
	}
	return segs, nil
}

func (p *Polyline) String() string {
	return fmt.Sprint(p.coords)
}
