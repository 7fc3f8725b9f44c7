package timeline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One object thrown right→left at t=0, passed back left→right at t=2.
func crossDescription() Description {
	return Description{
		LoopStart: 0,
		LoopEnd:   3,
		Jugglers:  1,
		Events: []Event{
			{T: 0, Hand: RightHand, Transitions: []Transition{{Kind: Throw, Path: 1}}},
			{T: 1.5, Hand: LeftHand, Transitions: []Transition{{Kind: Catch, Path: 1}}},
			{T: 2, Hand: LeftHand, Transitions: []Transition{{Kind: Throw, Path: 1}}},
			{T: 2.5, Hand: RightHand, Transitions: []Transition{{Kind: Catch, Path: 1}}},
		},
		Symmetries: []Symmetry{{Type: SymDelay, Delay: 3}},
	}
}

func TestNewResolvesLinks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(crossDescription())
	require.NoError(t, err)
	links := tl.Links()
	require.Len(t, links, 4)
	assert.Equal(t, TransitionRef{Event: 0, Transition: 0}, links[0].Start)
	assert.Equal(t, TransitionRef{Event: 1, Transition: 0}, links[0].End)
	assert.False(t, links[0].InHand)
	assert.True(t, links[1].InHand, "catch followed by throw is held")
	assert.False(t, links[0].Wraps)
	assert.True(t, links[3].Wraps)
	ts, te := tl.LinkTimes(links[3])
	assert.InDelta(t, 2.5, ts, 1e-9)
	assert.InDelta(t, 3.0, te, 1e-9)
	for _, l := range links {
		ts, te := tl.LinkTimes(l)
		assert.Greater(t, te, ts)
	}
	in, ok := tl.IncomingLink(TransitionRef{Event: 0, Transition: 0})
	require.True(t, ok)
	assert.Equal(t, links[3], in)
	out, ok := tl.OutgoingLink(TransitionRef{Event: 2, Transition: 0})
	require.True(t, ok)
	assert.Equal(t, links[2], out)
	_, ok = tl.OutgoingLink(TransitionRef{Event: 9, Transition: 0})
	assert.False(t, ok)
	assert.Equal(t, []int{1}, tl.PathNumbers())
}

func TestAccessors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl := MustNew(crossDescription())
	ls, le := tl.PeriodBounds()
	assert.Equal(t, 0.0, ls)
	assert.Equal(t, 3.0, le)
	assert.Equal(t, 3.0, tl.Period())
	assert.Equal(t, 1, tl.JugglerCount())
	syms := tl.Symmetries()
	require.Len(t, syms, 1)
	syms[0].Type = SymSwitch // must not leak into the model
	assert.Equal(t, SymDelay, tl.Symmetries()[0].Type)
	assert.Equal(t, 4, tl.EventCount())
	assert.Equal(t, 0, tl.Next(3))
	assert.Equal(t, 3, tl.Prev(0))
	assert.Equal(t, tl.Event(1), tl.Event(5))
	assert.Equal(t, tl.Event(3), tl.Event(-1))
}

func TestEventsInPeriodRestartable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl := MustNew(crossDescription())
	collect := func() []int {
		var idx []int
		for i, ev := range tl.EventsInPeriod() {
			assert.Equal(t, tl.Event(i).T, ev.T)
			idx = append(idx, i)
		}
		return idx
	}
	assert.Equal(t, []int{0, 1, 2, 3}, collect())
	assert.Equal(t, []int{0, 1, 2, 3}, collect())
	count := 0
	for range tl.EventsInPeriod() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestMultiplexSlots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	desc := Description{
		LoopStart: 0, LoopEnd: 2, Jugglers: 1,
		Events: []Event{
			{T: 0, Hand: RightHand, Transitions: []Transition{{Kind: Throw, Path: 1}, {Kind: Throw, Path: 2}}},
			{T: 1, Hand: RightHand, Transitions: []Transition{{Kind: Catch, Path: 2}, {Kind: Catch, Path: 1}}},
		},
	}
	tl, err := New(desc)
	require.NoError(t, err)
	out, ok := tl.OutgoingLink(TransitionRef{Event: 0, Transition: 0})
	require.True(t, ok)
	assert.Equal(t, TransitionRef{Event: 1, Transition: 1}, out.End)
	assert.Equal(t, 1, tl.Event(1).Slot(1))
	assert.Equal(t, -1, tl.Event(1).Slot(7))
}

func TestConstructionErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	throwOnly := []Event{{T: 0, Hand: RightHand, Transitions: []Transition{{Kind: Throw, Path: 1}}}}
	cases := []struct {
		name string
		desc Description
		err  error
	}{
		{"empty period", Description{LoopStart: 1, LoopEnd: 1, Jugglers: 1}, ErrInvalidPeriod},
		{"no juggler", Description{LoopStart: 0, LoopEnd: 1}, ErrNoJugglers},
		{"out of period", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: []Event{{T: 1, Hand: LeftHand}}}, ErrEventOutOfPeriod},
		{"order", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: []Event{{T: 0.5, Hand: LeftHand}, {T: 0.2, Hand: LeftHand}}}, ErrEventOrder},
		{"juggler", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: []Event{{T: 0.5, Hand: LeftHand, Juggler: 1}}}, ErrInvalidEvent},
		{"hand", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: []Event{{T: 0.5, Hand: Hand(3)}}}, ErrInvalidEvent},
		{"duplicate", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: []Event{{T: 0, Hand: LeftHand, Transitions: []Transition{
				{Kind: Throw, Path: 1}, {Kind: Catch, Path: 1}}}}}, ErrDuplicatePath},
		{"thrown, never caught", Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1,
			Events: throwOnly}, ErrUnresolvedLink},
		{"leaves hand without throw", Description{LoopStart: 0, LoopEnd: 2, Jugglers: 1,
			Events: []Event{
				{T: 0, Hand: LeftHand, Transitions: []Transition{{Kind: Catch, Path: 1}}},
				{T: 1, Hand: RightHand, Transitions: []Transition{{Kind: Throw, Path: 1}}},
			}}, ErrUnresolvedLink},
		{"zero flight time", Description{LoopStart: 0, LoopEnd: 2, Jugglers: 1,
			Events: []Event{
				{T: 0, Hand: LeftHand, Transitions: []Transition{{Kind: Throw, Path: 1}}},
				{T: 0, Hand: RightHand, Transitions: []Transition{{Kind: Catch, Path: 1}}},
			}}, ErrUnresolvedLink},
	}
	for _, c := range cases {
		_, err := New(c.desc)
		assert.ErrorIs(t, err, c.err, c.name)
	}
	assert.Panics(t, func() {
		MustNew(Description{LoopStart: 0, LoopEnd: 1, Jugglers: 1, Events: throwOnly})
	})
}

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, Classification{}, Classify(nil))
	c := Classify([]Symmetry{{Type: SymDelay}, {Type: SymmetryType(42)}, {Type: SymSwitch}})
	assert.True(t, c.HasSwitch)
	assert.False(t, c.HasSwitchDelay)
	c = Classify([]Symmetry{{Type: SymSwitchDelay, Permutation: "(1,2)"}})
	assert.Equal(t, Classification{HasSwitchDelay: true}, c)
	tl := MustNew(crossDescription())
	assert.Equal(t, Classification{}, tl.Classification())
}
