/*
Package rcache decides, frame by frame, whether the static background of a
ladder diagram is painted directly, composited into a cached image, or
blitted from that image.

Every change of the model or the viewport invalidates the cache. The
following frames are painted directly until a settle counter runs out;
only then is the background composited once and reused. Rapid resizing or
scrubbing thus never recomposites on every frame, while the cache is
refreshed as soon as changes settle.

The controller is advanced exactly once per call to OnFrame, never by a
timer. It is not safe for concurrent use.
*/
package rcache

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rcache'
func tracer() tracing.Trace {
	return tracing.Select("rcache")
}

// DefaultSettleFrames is the number of directly painted frames after a
// change, before the background is cached.
const DefaultSettleFrames = 5

// State is the state of the cache.
type State int8

// Cache states.
const (
	Clean            State = iota // cached image is current
	DirtyRecomputing              // invalidated, no frame painted since
	DirtySettling                 // painting directly, counting down
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case DirtyRecomputing:
		return "dirty-recomputing"
	case DirtySettling:
		return "dirty-settling"
	}
	return fmt.Sprintf("state(%d)", int8(s))
}

// Action tells the painter what to do with the background of a frame.
type Action int8

// Painting actions.
const (
	Blit        Action = iota // draw the cached image
	PaintDirect               // paint the background onto the frame, do not cache
	Composite                 // paint the background into a new cached image, then blit it
)

func (a Action) String() string {
	switch a {
	case Blit:
		return "blit"
	case PaintDirect:
		return "paint-direct"
	case Composite:
		return "composite"
	}
	return fmt.Sprintf("action(%d)", int8(a))
}

// Controller is the render-cache state machine. A new controller starts
// out dirty, as nothing has been cached yet.
type Controller struct {
	state  State
	frames int // settle frames after each invalidation
	left   int // frames left before compositing
}

// New creates a controller settling for the given number of frames.
// Negative values are treated as 0, i.e. composite on the first frame.
func New(frames int) *Controller {
	if frames < 0 {
		frames = 0
	}
	c := &Controller{frames: frames}
	c.Invalidate()
	return c
}

// Invalidate marks the cached image stale and restarts the settle counter.
func (c *Controller) Invalidate() {
	c.state = DirtyRecomputing
	c.left = c.frames
}

// OnFrame advances the state machine by one repaint and returns what to do
// with the background of this frame.
func (c *Controller) OnFrame() Action {
	if c.state == Clean {
		return Blit
	}
	if c.left == 0 {
		c.state = Clean
		tracer().Debugf("render cache: composite")
		return Composite
	}
	c.left--
	c.state = DirtySettling
	return PaintDirect
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// FramesLeft returns the number of direct frames before compositing.
func (c *Controller) FramesLeft() int {
	return c.left
}
