package diagram

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/ladder/layout"
	"github.com/npillmayer/ladder/rcache"
	"github.com/npillmayer/ladder/timeline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crossTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	one := func(k timeline.TransitionKind) []timeline.Transition {
		return []timeline.Transition{{Kind: k, Path: 1}}
	}
	tl, err := timeline.New(timeline.Description{
		LoopStart: 0, LoopEnd: 3, Jugglers: 1,
		Events: []timeline.Event{
			{T: 0, Hand: timeline.RightHand, Transitions: one(timeline.Throw)},
			{T: 1.5, Hand: timeline.LeftHand, Transitions: one(timeline.Catch)},
			{T: 2, Hand: timeline.LeftHand, Transitions: one(timeline.Throw)},
			{T: 2.5, Hand: timeline.RightHand, Transitions: one(timeline.Catch)},
		},
	})
	require.NoError(t, err)
	return tl
}

func TestSetTimeIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(crossTimeline(t), WithSize(400, 300))
	assert.Equal(t, 25, s.TrackerY())
	y := s.SetTime(1.5)
	assert.Equal(t, s.Diagram().TimeToY(1.5), y)
	assert.Equal(t, y, s.TrackerY())
	assert.Equal(t, y, s.SetTime(1.5))
	assert.Equal(t, y, s.TrackerY())
	assert.Equal(t, 1.5, s.Time())
}

func TestResizeDeterminism(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(crossTimeline(t))
	assert.True(t, s.Diagram().Empty())
	assert.True(t, s.Resize(400, 300))
	first := *s.Diagram()
	assert.True(t, s.Resize(200, 100))
	assert.True(t, s.Resize(400, 300))
	assert.Equal(t, first, *s.Diagram())
	assert.False(t, s.Resize(400, 300), "same size twice is a no-op")
	assert.Equal(t, first, *s.Diagram())
	s.SetTime(3)
	s.Resize(400, 600)
	assert.Equal(t, 575, s.TrackerY(), "tracker follows the layout")
}

func TestCacheInvalidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(crossTimeline(t), WithSize(400, 300), WithSettleFrames(0))
	dc := gg.NewContext(400, 300)
	defer dc.Close()
	a, err := s.Frame(dc)
	require.NoError(t, err)
	assert.Equal(t, rcache.Composite, a)
	assert.Equal(t, rcache.Clean, s.CacheState())
	s.Resize(400, 300)
	assert.Equal(t, rcache.Clean, s.CacheState())
	s.SetTime(1)
	assert.Equal(t, rcache.Clean, s.CacheState(), "tracker is not part of the cache")
	s.SetPathColor(1, gg.Red)
	assert.Equal(t, rcache.DirtyRecomputing, s.CacheState())
	assert.Equal(t, gg.Red, s.PathColor(1))
	assert.Equal(t, gg.Black, s.PathColor(2))
	assert.Equal(t, []int{1}, s.ColoredPaths())
	s.Replace(crossTimeline(t))
	assert.Empty(t, s.ColoredPaths())
	assert.Equal(t, rcache.DirtyRecomputing, s.CacheState())
}

func TestFrameSequence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(crossTimeline(t))
	dc := gg.NewContext(400, 300)
	defer dc.Close()
	var actions []rcache.Action
	for i := 0; i < rcache.DefaultSettleFrames+2; i++ {
		a, err := s.Frame(dc)
		require.NoError(t, err)
		actions = append(actions, a)
	}
	w, h := s.Size()
	assert.Equal(t, 400, w, "frame resizes the session")
	assert.Equal(t, 300, h)
	assert.Equal(t, []rcache.Action{
		rcache.PaintDirect, rcache.PaintDirect, rcache.PaintDirect, rcache.PaintDirect, rcache.PaintDirect,
		rcache.Composite, rcache.Blit,
	}, actions)
}

func TestFramePixels(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(crossTimeline(t), WithSettleFrames(0))
	dc := gg.NewContext(400, 300)
	defer dc.Close()
	s.SetTime(1)
	for i := 0; i < 2; i++ { // composite, then blit
		_, err := s.Frame(dc)
		require.NoError(t, err)
	}
	y := s.TrackerY()
	require.Equal(t, s.Diagram().TimeToY(1), y)
	img := dc.Image()
	lane := s.Diagram().LeftX
	r, g, b, _ := img.At(lane, 200).RGBA()
	assert.Less(t, r+g+b, uint32(3*0x8000), "hand lane is dark")
	r, g, b, _ = img.At(5, 5).RGBA()
	assert.Greater(t, b, uint32(0xc000), "background is white")
	red := false
	for _, row := range []int{y - 1, y} {
		r, g, _, _ = img.At(200, row).RGBA()
		if r > g+0x3000 {
			red = true
		}
	}
	assert.True(t, red, "tracker line at row %d", y)
}

func TestPicking(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New(nil)
	_, ok := s.PickEvent(10, 10)
	assert.False(t, ok)
	_, ok = s.PickPath(10, 10, DefaultPathSlop)
	assert.False(t, ok)
	s.Replace(crossTimeline(t))
	s.Resize(400, 300)
	m, ok := s.PickEvent(340, 25)
	require.True(t, ok)
	assert.Equal(t, layout.KindEvent, m.Kind)
	p, ok := s.PickPath(200, 88, DefaultPathSlop)
	require.True(t, ok)
	assert.Equal(t, 1, p.Path)
}
