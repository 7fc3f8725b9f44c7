/*
Package ladder implements the geometric primitives shared by the ladder
diagram packages: points in screen space, ε-arithmetic and pixel rounding,
and distances between points and segments.

A ladder diagram shows one period of a juggling pattern with time running
downwards and one vertical lane per hand. Sub-packages hold the cyclic
event model (timeline), the layout engine (layout), hit-testing (pick),
the render-cache state machine (rcache) and a rasterizer (render); package
diagram ties them together into an interactive session.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package ladder

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ladder'
func tracer() tracing.Trace {
	return tracing.Select("ladder")
}

// === Numeric Helpers =======================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Pixel rounds a coordinate to the nearest pixel, halves rounding up.
// All screen coordinates of a diagram go through Pixel, keeping call sites
// consistent with each other.
func Pixel(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		tracer().Errorf("pixel rounding of non-finite value %g", n)
		return 0
	}
	return int(math.Floor(n + 0.5))
}

// === Pair Data Type ========================================================

// Pair is a 2D-point in screen space (y growing downwards).
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Pt constructs a pair from pixel coordinates.
func Pt(x, y int) Pair {
	return P(float64(x), float64(y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a).Zap()
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return (p + v).Zap()
}

// Abs is the length of a pair interpreted as a vector.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Dist returns the euclidean distance between two pairs.
func Dist(p, q Pair) float64 {
	return (p - q).Abs()
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Pair) Pair {
	return (p + q).Scaled(0.5)
}

// LineDist returns the perpendicular distance of point z from the infinite
// line through a and b. If a and b coincide, the distance to a is returned.
//
// The distance is not clipped to the segment's extent; clients wanting
// segment semantics pre-filter by bounding box.
func LineDist(z, a, b Pair) float64 {
	d := b - a
	l := d.Abs()
	if Is0(l) {
		return Dist(z, a)
	}
	cross := d.X()*(z.Y()-a.Y()) - (z.X()-a.X())*d.Y()
	return math.Abs(cross) / l
}
