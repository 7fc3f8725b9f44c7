/*
Package render rasterizes a laid out ladder diagram with gogpu/gg.

Painting is split the way the diagram is cached: Background paints the
static part (guide lines, lanes, paths), Events paints the event markers
and Tracker the time line. Only the background ever goes into a cached
image.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/npillmayer/ladder/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ladder.render'
func tracer() tracing.Trace {
	return tracing.Select("ladder.render")
}

// ErrInvalidColor indicates a color string that is not a hex color.
var ErrInvalidColor = errors.New("invalid color")

// Style holds the colors of a diagram as hex strings ("#rrggbb").
type Style struct {
	Background string `yaml:"background"`
	Guide      string `yaml:"guide"`
	Lane       string `yaml:"lane"`
	Path       string `yaml:"path"`
	Event      string `yaml:"event"`
	Tracker    string `yaml:"tracker"`
}

// DefaultStyle is black on white, with light gray guides and a red tracker.
func DefaultStyle() Style {
	return Style{
		Background: "#ffffff",
		Guide:      "#c0c0c0",
		Lane:       "#000000",
		Path:       "#000000",
		Event:      "#000000",
		Tracker:    "#ff0000",
	}
}

// Validate checks that all colors parse.
func (s Style) Validate() error {
	for name, c := range map[string]string{
		"background": s.Background, "guide": s.Guide, "lane": s.Lane,
		"path": s.Path, "event": s.Event, "tracker": s.Tracker,
	} {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (gg.RGBA, error) {
	h := s
	if h != "" && h[0] == '#' {
		h = h[1:]
	}
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	for _, r := range h {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return gg.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
		}
	}
	return gg.Hex(h), nil
}

// PathColors looks up the color of a path by its number.
type PathColors interface {
	PathColor(path int) gg.RGBA
}

// Painter paints diagrams in a fixed style.
type Painter struct {
	bg, guide, lane, path, event, tracker gg.RGBA
}

// NewPainter creates a painter. Colors that fail to parse fall back to
// the default style.
func NewPainter(st Style) *Painter {
	def := DefaultStyle()
	pick := func(c, fallback string) gg.RGBA {
		col, err := ParseColor(c)
		if err != nil {
			tracer().Errorf("render: %v, using %s", err, fallback)
			col = gg.Hex(fallback)
		}
		return col
	}
	return &Painter{
		bg:      pick(st.Background, def.Background),
		guide:   pick(st.Guide, def.Guide),
		lane:    pick(st.Lane, def.Lane),
		path:    pick(st.Path, def.Path),
		event:   pick(st.Event, def.Event),
		tracker: pick(st.Tracker, def.Tracker),
	}
}

// DefaultPathColor returns the color of paths without an explicit color.
func (p *Painter) DefaultPathColor() gg.RGBA {
	return p.path
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// Background paints the static part of a diagram: guide lines, lanes and
// path segments. colors may be nil.
func (p *Painter) Background(dc *gg.Context, d *layout.Diagram, colors PathColors) error {
	dc.ClearWithColor(p.bg)
	if d.Empty() {
		return nil
	}
	for _, g := range d.Guides {
		switch g.Kind {
		case layout.GuideHand, layout.GuideJuggler:
			setColor(dc, p.lane)
		default:
			setColor(dc, p.guide)
		}
		dc.SetLineWidth(float64(g.Width))
		dc.DrawLine(float64(g.X1), float64(g.Y1), float64(g.X2), float64(g.Y2))
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	dc.SetLineWidth(1)
	cx, cy, cw, ch := d.PathClip()
	top, _ := d.Band()
	for _, s := range d.Segments {
		col := p.path
		if colors != nil {
			col = colors.PathColor(s.Path)
		}
		setColor(dc, col)
		dc.Push()
		dc.ClipRect(float64(cx), float64(cy), float64(cw), float64(ch))
		if s.IsArc() {
			if s.YEnd < top || s.Radius <= 0 {
				dc.Pop()
				continue
			}
			dc.ClipRect(float64(cx), float64(s.YStart), float64(cw), float64(s.YEnd-s.YStart))
			dc.DrawCircle(s.Center.X(), s.Center.Y(), s.Radius)
		} else {
			dc.DrawLine(float64(s.XStart), float64(s.YStart), float64(s.XEnd), float64(s.YEnd))
		}
		err := dc.Stroke()
		dc.Pop()
		if err != nil {
			return err
		}
	}
	tracer().Debugf("painted background: %d guides, %d segments", len(d.Guides), len(d.Segments))
	return nil
}

// Events paints event dots and transition rings.
func (p *Painter) Events(dc *gg.Context, d *layout.Diagram) error {
	if d == nil {
		return nil
	}
	dc.SetLineWidth(1)
	for _, m := range d.Markers {
		c := m.Center()
		r := float64(m.XHigh-m.XLow) / 2
		if m.Kind == layout.KindEvent {
			setColor(dc, p.event)
			dc.DrawCircle(c.X(), c.Y(), r)
			if err := dc.Fill(); err != nil {
				return err
			}
			continue
		}
		setColor(dc, p.bg)
		dc.DrawCircle(c.X(), c.Y(), r)
		if err := dc.Fill(); err != nil {
			return err
		}
		setColor(dc, p.event)
		dc.DrawCircle(c.X(), c.Y(), r)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// Tracker paints the horizontal time line at row y.
func (p *Painter) Tracker(dc *gg.Context, d *layout.Diagram, y int) error {
	if d == nil || d.Width <= 0 {
		return nil
	}
	setColor(dc, p.tracker)
	dc.SetLineWidth(1)
	dc.DrawLine(0, float64(y), float64(d.Width), float64(y))
	return dc.Stroke()
}
