/*
Package layout projects a juggling timeline onto a rectangular viewport.

Time runs downwards: loop_start maps to the top border and loop_end to the
bottom border. Every hand gets a vertical lane. Compute produces markers
for events and their transitions, line or arc segments for the paths
between transitions, and the decorative guide lines of the background.

A Diagram is recomputed wholesale whenever the timeline or the viewport
changes; its primitives are never updated in place.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/ladder"
	"github.com/npillmayer/ladder/timeline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'layout'
func tracer() tracing.Trace {
	return tracing.Select("layout")
}

// ErrInvalidOptions indicates layout options outside their domain.
var ErrInvalidOptions = errors.New("invalid layout options")

// Options are the fixed proportions of a ladder diagram.
type Options struct {
	BorderTop          int     `yaml:"border_top"`           // pixels above loop_start and below loop_end
	BorderSides        float64 `yaml:"border_sides"`         // lane inset, fraction of width
	PassingBorderSides float64 `yaml:"passing_border_sides"` // juggler lane inset for passing patterns
	TransitionRadius   int     `yaml:"transition_radius"`    // radius of event markers
	SelfThrowWidth     float64 `yaml:"selfthrow_width"`      // target arc width, fraction of width
}

// DefaultOptions returns the proportions of the classic ladder diagram.
func DefaultOptions() Options {
	return Options{
		BorderTop:          25,
		BorderSides:        0.15,
		PassingBorderSides: 0.20,
		TransitionRadius:   5,
		SelfThrowWidth:     0.25,
	}
}

// Validate checks that options describe a drawable ladder.
func (o Options) Validate() error {
	switch {
	case o.BorderTop < 0:
		return fmt.Errorf("border_top %d: %w", o.BorderTop, ErrInvalidOptions)
	case o.BorderSides < 0 || o.BorderSides >= 0.5:
		return fmt.Errorf("border_sides %g: %w", o.BorderSides, ErrInvalidOptions)
	case o.PassingBorderSides < 0 || o.PassingBorderSides >= 0.5:
		return fmt.Errorf("passing_border_sides %g: %w", o.PassingBorderSides, ErrInvalidOptions)
	case o.TransitionRadius < 1:
		return fmt.Errorf("transition_radius %d: %w", o.TransitionRadius, ErrInvalidOptions)
	case !(o.SelfThrowWidth > 0):
		return fmt.Errorf("selfthrow_width %g: %w", o.SelfThrowWidth, ErrInvalidOptions)
	}
	return nil
}

// Diagram is the result of laying out a timeline in a viewport.
type Diagram struct {
	Width, Height int
	LeftX, RightX int   // hand lanes of a single juggler
	JugglerX      []int // guide line per juggler of a passing pattern
	Symmetry      timeline.Classification
	Markers       []EventMarker
	Segments      []PathSegment
	Guides        []GuideLine

	opts               Options
	loopStart, loopEnd float64
}

// Compute lays out tl within a viewport of width × height pixels.
// A missing timeline or a degenerate viewport yields an empty diagram. A
// viewport is degenerate if it leaves no rows between the top and bottom
// borders.
func Compute(tl *timeline.Timeline, width, height int, opts Options) *Diagram {
	d := &Diagram{Width: width, Height: height, opts: opts}
	if tl != nil {
		d.loopStart, d.loopEnd = tl.PeriodBounds()
	}
	if tl == nil || width <= 0 || height <= 2*opts.BorderTop {
		tracer().Debugf("empty layout for %dx%d viewport", width, height)
		return d
	}
	d.Symmetry = tl.Classification()
	d.placeLanes(tl.JugglerCount())
	d.placeMarkers(tl)
	if tl.JugglerCount() == 1 {
		d.placeSegments(tl)
	}
	d.placeGuides()
	tracer().Debugf("layout %dx%d: %d markers, %d segments, %d guides",
		width, height, len(d.Markers), len(d.Segments), len(d.Guides))
	return d
}

// Options returns the options the diagram was laid out with.
func (d *Diagram) Options() Options {
	return d.opts
}

// Empty is a predicate: does the diagram hold no primitives?
func (d *Diagram) Empty() bool {
	return d == nil || (len(d.Markers) == 0 && len(d.Segments) == 0 && len(d.Guides) == 0)
}

// TimeToY maps a time to its screen row. This is the only time transform
// of a diagram; events, path endpoints and the tracker all use it.
func (d *Diagram) TimeToY(t float64) int {
	period := d.loopEnd - d.loopStart
	if !(period > 0) {
		return d.opts.BorderTop
	}
	span := max(float64(d.Height-2*d.opts.BorderTop), 0)
	return d.opts.BorderTop + ladder.Pixel(span*(t-d.loopStart)/period)
}

// Band returns the rows of loop_start and loop_end.
func (d *Diagram) Band() (top, bottom int) {
	return d.opts.BorderTop, d.Height - d.opts.BorderTop
}

// PathClip returns the rectangle (x, y, width, height) paths are clipped to.
func (d *Diagram) PathClip() (x, y, w, h int) {
	return d.LeftX, d.opts.BorderTop, d.RightX - d.LeftX, d.Height - 2*d.opts.BorderTop
}

func (d *Diagram) placeLanes(jugglers int) {
	d.LeftX = int(d.opts.BorderSides * float64(d.Width))
	d.RightX = d.Width - d.LeftX
	if jugglers < 2 {
		return
	}
	first := int(d.opts.PassingBorderSides * float64(d.Width))
	offset := int(float64(d.Width-2*first) / float64(jugglers-1))
	d.JugglerX = make([]int, jugglers)
	for j := range d.JugglerX {
		d.JugglerX[j] = first + j*offset
	}
}

// handX is the lane of a hand.
func (d *Diagram) handX(hand timeline.Hand, juggler int) int {
	if len(d.JugglerX) > 0 && juggler < len(d.JugglerX) {
		spread := 2 * d.opts.TransitionRadius
		if hand == timeline.LeftHand {
			return d.JugglerX[juggler] - spread
		}
		return d.JugglerX[juggler] + spread
	}
	if hand == timeline.LeftHand {
		return d.LeftX
	}
	return d.RightX
}

// slotX is the lane position of multiplexing slot k of a hand. Slots move
// inwards: rightwards from the left lane, leftwards from the right lane.
func (d *Diagram) slotX(hand timeline.Hand, juggler, k int) int {
	x := d.handX(hand, juggler)
	offset := (k + 1) * 2 * d.opts.TransitionRadius
	if hand == timeline.LeftHand {
		return x + offset
	}
	return x - offset
}

func (d *Diagram) placeMarkers(tl *timeline.Timeline) {
	r := d.opts.TransitionRadius
	for i, ev := range tl.EventsInPeriod() {
		y := d.TimeToY(ev.T) - r
		x := d.handX(ev.Hand, ev.Juggler) - r
		owner := len(d.Markers)
		d.Markers = append(d.Markers, EventMarker{
			Kind: KindEvent, Event: i, Transition: -1, Owner: owner,
			XLow: x, XHigh: x + 2*r, YLow: y, YHigh: y + 2*r,
		})
		for k := range ev.Transitions {
			tx := d.slotX(ev.Hand, ev.Juggler, k) - r
			d.Markers = append(d.Markers, EventMarker{
				Kind: KindTransition, Event: i, Transition: k, Owner: owner,
				XLow: tx, XHigh: tx + 2*r, YLow: y, YHigh: y + 2*r,
			})
		}
	}
}

// placeSegments creates one segment per path link. Links arriving after
// loop_end are repeated one period earlier, so that their arrival shows at
// the top of the ladder; these copies come first, as they start earlier.
func (d *Diagram) placeSegments(tl *timeline.Timeline) {
	links := tl.Links()
	period := tl.Period()
	var wrapped, primary []PathSegment
	for li, link := range links {
		ts, te := tl.LinkTimes(link)
		primary = append(primary, d.segment(tl, li, link, ts, te, false))
		if te > d.loopEnd {
			wrapped = append(wrapped, d.segment(tl, li, link, ts-period, te-period, true))
		}
	}
	d.Segments = append(wrapped, primary...)
}

func (d *Diagram) segment(tl *timeline.Timeline, li int, link timeline.PathLink,
	ts, te float64, wrapped bool) PathSegment {
	//
	start := tl.Event(link.Start.Event)
	end := tl.Event(link.End.Event)
	seg := PathSegment{
		Path:      link.Path,
		Link:      li,
		StartSlot: link.Start.Transition,
		EndSlot:   catchSlot(end, link.Path),
		Wrapped:   wrapped,
	}
	switch {
	case link.InHand:
		seg.Type = TypeHold
	case start.Hand == end.Hand:
		seg.Type = TypeSelf
	default:
		seg.Type = TypeCross
	}
	seg.XStart = d.slotX(start.Hand, start.Juggler, seg.StartSlot)
	seg.YStart = d.TimeToY(ts)
	seg.XEnd = d.slotX(end.Hand, end.Juggler, seg.EndSlot)
	seg.YEnd = d.TimeToY(te)
	if seg.Type == TypeSelf {
		d.selfArc(&seg, end.Hand)
	}
	return seg
}

// catchSlot finds the slot of the catching transition, which in general
// differs from the slot the object was thrown from.
func catchSlot(ev timeline.Event, path int) int {
	if slot := ev.Slot(path); slot >= 0 {
		return slot
	}
	tracer().Errorf("no transition for path %d at %s", path, ev)
	return 0
}

// selfArc finds a circle through both endpoints of a self throw. The center
// sits on the chord's perpendicular bisector, at a distance growing with
// the chord length; short throws are clamped to half the target width.
// Left-hand and right-hand throws bulge to opposite sides.
func (d *Diagram) selfArc(seg *PathSegment, catcher timeline.Hand) {
	zs, ze := seg.StartPoint(), seg.EndPoint()
	a := 0.5 * ladder.Dist(zs, ze)
	mid := ladder.Midpoint(zs, ze)
	b := d.opts.SelfThrowWidth * float64(d.Width)
	bulge := 0.0
	if b > 0 {
		bulge = 0.5 * (a*a/b - b)
		if bulge < 0.5*b {
			bulge = 0.5 * b
		}
	}
	seg.Bulge = bulge
	if ladder.Is0(a) {
		seg.Center, seg.Radius = mid, 0
		return
	}
	mult := 1.0
	if catcher == timeline.LeftHand {
		mult = -1.0
	}
	xc := mid.X() + mult*bulge*(mid.Y()-zs.Y())/a
	yc := mid.Y() + mult*bulge*(zs.X()-mid.X())/a
	seg.Center = ladder.P(xc, yc)
	seg.Radius = math.Hypot(zs.X()-xc, zs.Y()-yc)
}

func (d *Diagram) placeGuides() {
	w, h, bt := d.Width, d.Height, d.opts.BorderTop
	if len(d.JugglerX) > 0 {
		for _, x := range d.JugglerX {
			d.Guides = append(d.Guides, GuideLine{Kind: GuideJuggler, X1: x, Y1: bt, X2: x, Y2: h - bt, Width: 3})
		}
		return
	}
	d.Guides = append(d.Guides,
		GuideLine{Kind: GuideBorder, X1: 0, Y1: bt, X2: w, Y2: bt, Width: 1},
		GuideLine{Kind: GuideBorder, X1: 0, Y1: h - bt, X2: w, Y2: h - bt, Width: 1},
	)
	if d.Symmetry.HasSwitch {
		lx, rx := d.LeftX, d.RightX
		ym := h - bt/2
		d.Guides = append(d.Guides,
			GuideLine{Kind: GuideSwitch, X1: lx, Y1: ym, X2: rx, Y2: ym, Width: 1},
			GuideLine{Kind: GuideSwitch, X1: lx, Y1: ym, X2: lx + lx, Y2: h - bt*3/4, Width: 1},
			GuideLine{Kind: GuideSwitch, X1: lx, Y1: ym, X2: lx + lx, Y2: h - bt/4, Width: 1},
			GuideLine{Kind: GuideSwitch, X1: rx, Y1: ym, X2: rx - lx, Y2: h - bt*3/4, Width: 1},
			GuideLine{Kind: GuideSwitch, X1: rx, Y1: ym, X2: rx - lx, Y2: h - bt/4, Width: 1},
		)
	}
	if d.Symmetry.HasSwitchDelay {
		d.Guides = append(d.Guides, GuideLine{Kind: GuideSwitchDelay, X1: 0, Y1: h / 2, X2: w, Y2: h / 2, Width: 1})
	}
	d.Guides = append(d.Guides,
		GuideLine{Kind: GuideHand, X1: d.LeftX, Y1: bt, X2: d.LeftX, Y2: h - bt, Width: 3},
		GuideLine{Kind: GuideHand, X1: d.RightX, Y1: bt, X2: d.RightX, Y2: h - bt, Width: 3},
	)
}
