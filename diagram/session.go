/*
Package diagram implements an interactive ladder diagram session: the
query interface a presentation layer talks to.

A Session owns one timeline, its current layout, per-path colors, the
tracker position and the render cache. Layout is recomputed on resize or
model replacement; picking and painting operate on the current layout.

Sessions are independent of each other. A single session is meant to be
driven by one logical owner (an event loop or a request handler) and is
not safe for concurrent use.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package diagram

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/gogpu/gg"
	"github.com/npillmayer/ladder/layout"
	"github.com/npillmayer/ladder/pick"
	"github.com/npillmayer/ladder/rcache"
	"github.com/npillmayer/ladder/render"
	"github.com/npillmayer/ladder/timeline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'diagram'
func tracer() tracing.Trace {
	return tracing.Select("diagram")
}

// DefaultPathSlop is the default picking tolerance for paths, in pixels.
const DefaultPathSlop = 5

// Session is an interactive ladder diagram for one pattern.
type Session struct {
	tl            *timeline.Timeline
	opts          layout.Options
	painter       *render.Painter
	settle        int
	width, height int
	d             *layout.Diagram
	simTime       float64
	trackerY      int
	colors        *treemap.Map // path number → gg.RGBA
	cache         *rcache.Controller
	cached        *gg.ImageBuf
}

// Option configures a session.
type Option func(*Session)

// WithLayout sets the layout proportions.
func WithLayout(opts layout.Options) Option {
	return func(s *Session) {
		s.opts = opts
	}
}

// WithStyle sets the colors of the diagram.
func WithStyle(st render.Style) Option {
	return func(s *Session) {
		s.painter = render.NewPainter(st)
	}
}

// WithSettleFrames sets the number of directly painted frames after each
// change, before the background is cached.
func WithSettleFrames(n int) Option {
	return func(s *Session) {
		s.settle = n
	}
}

// WithSize sets the initial viewport size.
func WithSize(width, height int) Option {
	return func(s *Session) {
		s.width, s.height = width, height
	}
}

// New creates a session for a timeline. Without WithSize, the viewport is
// empty until the first Resize or Frame.
func New(tl *timeline.Timeline, opts ...Option) *Session {
	s := &Session{
		tl:     tl,
		opts:   layout.DefaultOptions(),
		settle: rcache.DefaultSettleFrames,
		colors: treemap.NewWithIntComparator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.painter == nil {
		s.painter = render.NewPainter(render.DefaultStyle())
	}
	if tl != nil {
		s.simTime, _ = tl.PeriodBounds()
	}
	s.cache = rcache.New(s.settle)
	s.relayout()
	return s
}

// relayout recomputes all primitives and invalidates the render cache.
func (s *Session) relayout() {
	s.d = layout.Compute(s.tl, s.width, s.height, s.opts)
	s.trackerY = s.d.TimeToY(s.simTime)
	s.cache.Invalidate()
	s.cached = nil
}

// Resize changes the viewport. It returns false if the size is unchanged,
// in which case the layout is kept as is.
func (s *Session) Resize(width, height int) bool {
	if width == s.width && height == s.height {
		return false
	}
	tracer().Debugf("resize %dx%d -> %dx%d", s.width, s.height, width, height)
	s.width, s.height = width, height
	s.relayout()
	return true
}

// Replace swaps in the timeline of a new pattern. Path colors are reset.
func (s *Session) Replace(tl *timeline.Timeline) {
	s.tl = tl
	s.colors.Clear()
	if tl != nil {
		s.simTime, _ = tl.PeriodBounds()
	}
	s.relayout()
}

// Timeline returns the current model.
func (s *Session) Timeline() *timeline.Timeline {
	return s.tl
}

// Diagram returns the current layout. It is replaced, never modified, by
// subsequent calls to Resize or Replace.
func (s *Session) Diagram() *layout.Diagram {
	return s.d
}

// Size returns the viewport size.
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// SetTime moves the tracker to simulation time t and returns its row.
func (s *Session) SetTime(t float64) int {
	if t == s.simTime {
		return s.trackerY
	}
	s.simTime = t
	s.trackerY = s.d.TimeToY(t)
	return s.trackerY
}

// Time returns the simulation time of the tracker.
func (s *Session) Time() float64 {
	return s.simTime
}

// TrackerY returns the row of the tracker line.
func (s *Session) TrackerY() int {
	return s.trackerY
}

// SetPathColor sets the color of all segments of a path.
func (s *Session) SetPathColor(path int, color gg.RGBA) {
	s.colors.Put(path, color)
	s.cache.Invalidate()
}

// PathColor returns the color of a path.
func (s *Session) PathColor(path int) gg.RGBA {
	if c, ok := s.colors.Get(path); ok {
		return c.(gg.RGBA)
	}
	return s.painter.DefaultPathColor()
}

// ColoredPaths returns the paths with explicit colors, ascending.
func (s *Session) ColoredPaths() []int {
	keys := s.colors.Keys()
	paths := make([]int, len(keys))
	for i, k := range keys {
		paths[i] = k.(int)
	}
	return paths
}

// PickEvent returns the first event marker containing (x, y).
func (s *Session) PickEvent(x, y int) (layout.EventMarker, bool) {
	return pick.Event(s.d, x, y)
}

// PickPath returns the path segment nearest to (x, y) within tolerance.
func (s *Session) PickPath(x, y, tolerance int) (layout.PathSegment, bool) {
	return pick.Path(s.d, x, y, tolerance)
}

// CacheState returns the state of the render cache.
func (s *Session) CacheState() rcache.State {
	return s.cache.State()
}
