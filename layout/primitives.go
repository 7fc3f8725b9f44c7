package layout

import (
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/ladder"
)

// MarkerKind tells event dots from per-transition icons.
type MarkerKind int8

// Kinds of event markers.
const (
	KindEvent MarkerKind = iota + 1
	KindTransition
)

// EventMarker is a positioned marker for an event or one of its transitions.
type EventMarker struct {
	Kind        MarkerKind
	Event       int // index into the timeline's events
	Transition  int // slot of the transition, -1 for KindEvent
	Owner       int // index of the KindEvent marker this marker belongs to
	XLow, XHigh int
	YLow, YHigh int
}

// Bounds returns the marker's screen rectangle.
func (m EventMarker) Bounds() polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: float64(m.XLow), Y: float64(m.YLow)},
		Max: polyclip.Point{X: float64(m.XHigh), Y: float64(m.YHigh)},
	}
}

// Center returns the midpoint of the marker.
func (m EventMarker) Center() ladder.Pair {
	return ladder.P(float64(m.XLow+m.XHigh)/2, float64(m.YLow+m.YHigh)/2)
}

func (m EventMarker) String() string {
	if m.Kind == KindEvent {
		return fmt.Sprintf("event #%d [%d,%d]x[%d,%d]", m.Event, m.XLow, m.XHigh, m.YLow, m.YHigh)
	}
	return fmt.Sprintf("transition #%d/%d [%d,%d]x[%d,%d]", m.Event, m.Transition,
		m.XLow, m.XHigh, m.YLow, m.YHigh)
}

// SegmentType classifies a path segment geometrically.
type SegmentType int8

// Path segment types.
const (
	TypeSelf SegmentType = iota + 3
	TypeCross
	TypeHold
)

func (t SegmentType) String() string {
	switch t {
	case TypeSelf:
		return "self"
	case TypeCross:
		return "cross"
	case TypeHold:
		return "hold"
	}
	return fmt.Sprintf("segment(%d)", int8(t))
}

// PathSegment is the positioned part of one object's path between two
// transitions: a straight line for holds and cross throws, a circular arc
// for self throws.
type PathSegment struct {
	Type      SegmentType
	Path      int // path number
	Link      int // index into the timeline's links
	StartSlot int
	EndSlot   int
	XStart    int
	YStart    int
	XEnd      int
	YEnd      int
	Center    ladder.Pair // self throws only
	Radius    float64     // self throws only
	Bulge     float64     // distance of center from the chord, self throws only
	Wrapped   bool        // copy shifted back by one period
}

// StartPoint returns the screen position the segment starts at.
func (s PathSegment) StartPoint() ladder.Pair {
	return ladder.Pt(s.XStart, s.YStart)
}

// EndPoint returns the screen position the segment ends at.
func (s PathSegment) EndPoint() ladder.Pair {
	return ladder.Pt(s.XEnd, s.YEnd)
}

// IsArc is a predicate: is this segment drawn as an arc?
func (s PathSegment) IsArc() bool {
	return s.Type == TypeSelf
}

// Bounds is the bounding box of the segment's endpoints.
func (s PathSegment) Bounds() polyclip.Rectangle {
	c := polyclip.Contour{
		{X: float64(s.XStart), Y: float64(s.YStart)},
		{X: float64(s.XEnd), Y: float64(s.YEnd)},
	}
	return c.BoundingBox()
}

func (s PathSegment) String() string {
	str := fmt.Sprintf("%s path %d (%d,%d)->(%d,%d)", s.Type, s.Path, s.XStart, s.YStart, s.XEnd, s.YEnd)
	if s.IsArc() {
		str += fmt.Sprintf(" center %s r=%.2f", s.Center, s.Radius)
	}
	return str
}

// GuideKind tells the decorative lines of a ladder apart.
type GuideKind int8

// Kinds of guide lines.
const (
	GuideBorder GuideKind = iota
	GuideSwitch
	GuideSwitchDelay
	GuideHand
	GuideJuggler
)

// GuideLine is a decorative line of the static background.
type GuideLine struct {
	Kind           GuideKind
	X1, Y1, X2, Y2 int
	Width          int
}
