/*
Package pick resolves pointer positions to the primitives of a laid out
ladder diagram.

Event picking reports the first marker, in creation order, whose rectangle
contains the pointer. Rectangles may overlap (multiplexed transitions of
neighbouring events), so the result is "first match", not "nearest".

Path picking reports the segment closest to the pointer, within a
tolerance.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pick

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/ladder"
	"github.com/npillmayer/ladder/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pick'
func tracer() tracing.Trace {
	return tracing.Select("pick")
}

// Event returns the first marker containing (x, y). Marker rectangles are
// closed, i.e. their borders belong to them.
func Event(d *layout.Diagram, x, y int) (layout.EventMarker, bool) {
	if d == nil {
		return layout.EventMarker{}, false
	}
	probe := pointRect(x, y, 0)
	for _, m := range d.Markers {
		if m.Bounds().Overlaps(probe) {
			return m, true
		}
	}
	return layout.EventMarker{}, false
}

// Path returns the segment nearest to (x, y), provided its distance does
// not exceed tolerance. Ties go to the segment encountered first.
//
// Straight segments are measured by perpendicular distance to their line,
// after a pre-filter on their bounding box grown by tolerance. Arcs are
// measured by the difference between the distance to their center and
// their radius, after a pre-filter on their y-range. Arcs of zero radius
// are never picked.
func Path(d *layout.Diagram, x, y, tolerance int) (layout.PathSegment, bool) {
	if d == nil || len(d.Segments) == 0 {
		return layout.PathSegment{}, false
	}
	top, bottom := d.Band()
	if y < top-tolerance || y > bottom+tolerance {
		return layout.PathSegment{}, false
	}
	z := ladder.Pt(x, y)
	probe := pointRect(x, y, tolerance)
	found, best := -1, math.Inf(1)
	for i, s := range d.Segments {
		var dist float64
		if s.IsArc() {
			if s.Radius <= 0 || y < s.YStart-tolerance || y > s.YEnd+tolerance {
				continue
			}
			dist = math.Abs(ladder.Dist(z, s.Center) - s.Radius)
		} else {
			if !s.Bounds().Overlaps(probe) {
				continue
			}
			dist = ladder.LineDist(z, s.StartPoint(), s.EndPoint())
		}
		if dist <= float64(tolerance) && dist < best {
			found, best = i, dist
		}
	}
	if found < 0 {
		return layout.PathSegment{}, false
	}
	tracer().Debugf("picked %s at distance %.2f", d.Segments[found], best)
	return d.Segments[found], true
}

// pointRect is the square of half-size r around (x, y).
func pointRect(x, y, r int) polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: float64(x - r), Y: float64(y - r)},
		Max: polyclip.Point{X: float64(x + r), Y: float64(y + r)},
	}
}
