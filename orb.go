package sweepline

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PolylineFromLineString returns a polyline with the coordinates of the line string.
func PolylineFromLineString(ls orb.LineString) *Polyline {
	p := &Polyline{coords: make([]Point, 0, len(ls))}
	for _, c := range ls {
		p.Add(c[0], c[1])
	}
	return p
}

// SegmentsFromGeometry returns the segments of all line strings, rings and polygons in the geometry. Points are ignored.
func SegmentsFromGeometry(g orb.Geometry) ([]Segment, error) {
	var lss []orb.LineString
	switch g := g.(type) {
	case orb.Point, orb.MultiPoint:
	case orb.LineString:
		lss = append(lss, g)
	case orb.MultiLineString:
		lss = append(lss, g...)
	case orb.Ring:
		lss = append(lss, orb.LineString(g))
	case orb.Polygon:
		for _, r := range g {
			lss = append(lss, orb.LineString(r))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				lss = append(lss, orb.LineString(r))
			}
		}
	case orb.Collection:
		segs := []Segment{}
		for _, gi := range g {
			s, err := SegmentsFromGeometry(gi)
			if err != nil {
				return nil, err
			}
			segs = append(segs, s...)
		}
		return segs, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %s", g.GeoJSONType())
	}

	segs := []Segment{}
	for i, ls := range lss {
		s, err := PolylineFromLineString(ls).Segments()
		if err != nil {
			return nil, fmt.Errorf("line string %d: %w", i, err)
		}
		segs = append(segs, s...)
	}
	return segs, nil
}

// LineString returns the segment as a line string from top to bottom.
func (s Segment) LineString() orb.LineString {
	return orb.LineString{{s.top.X, s.top.Y}, {s.bottom.X, s.bottom.Y}}
}

// MultiPoint returns the intersection points.
func (zs Intersections) MultiPoint() orb.MultiPoint {
	mp := make(orb.MultiPoint, len(zs))
	for i, z := range zs {
		mp[i] = orb.Point{z.X, z.Y}
	}
	return mp
}

// FeatureCollection returns a GeoJSON feature per intersection point, with the indices of the intersecting segments as properties.
func (zs Intersections) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zs {
		f := geojson.NewFeature(orb.Point{z.X, z.Y})
		f.Properties["a"] = z.IndexA
		f.Properties["b"] = z.IndexB
		fc.Append(f)
	}
	return fc
}
