package diagram

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/ladder/rcache"
)

// Frame paints one frame onto dc and advances the render cache by one step.
// If dc's size differs from the viewport, the session is resized first.
//
// The background is blitted from the cache, painted directly or composited
// into a fresh cached image, as the cache controller decides. Event markers
// and the tracker are painted on every frame.
func (s *Session) Frame(dc *gg.Context) (rcache.Action, error) {
	s.Resize(dc.Width(), dc.Height())
	action := s.cache.OnFrame()
	if s.width <= 0 || s.height <= 0 {
		return action, nil
	}
	if action == rcache.Blit && s.cached == nil {
		tracer().Errorf("render cache clean without image, compositing")
		action = rcache.Composite
	}
	switch action {
	case rcache.Blit:
		dc.DrawImage(s.cached, 0, 0)
	case rcache.PaintDirect:
		if err := s.painter.Background(dc, s.d, s); err != nil {
			return action, err
		}
	case rcache.Composite:
		if err := s.composite(); err != nil {
			return action, err
		}
		dc.DrawImage(s.cached, 0, 0)
	}
	if err := s.painter.Events(dc, s.d); err != nil {
		return action, err
	}
	return action, s.painter.Tracker(dc, s.d, s.trackerY)
}

func (s *Session) composite() error {
	bg := gg.NewContext(s.width, s.height)
	defer bg.Close()
	if err := s.painter.Background(bg, s.d, s); err != nil {
		return err
	}
	s.cached = gg.ImageBufFromImage(bg.Image())
	tracer().Debugf("composited %dx%d background", s.width, s.height)
	return nil
}
