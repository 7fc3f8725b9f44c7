package timeline

import (
	"fmt"
	"iter"
	"sort"
)

// Timeline is the cyclic, time-ordered model of one period of a juggling
// pattern. Events are owned by the timeline and addressed by index;
// neighbours wrap around modulo the event count.
//
// A Timeline is immutable after construction and safe to share read-only.
type Timeline struct {
	loopStart, loopEnd float64
	jugglers           int
	events             []Event
	symmetries         []Symmetry
	links              []PathLink
	outgoing           [][]int // event → slot → link index
	incoming           [][]int // event → slot → link index
}

// New builds a timeline from a description and resolves all path links.
// Any inconsistency of the description is reported as an error; no partial
// model is ever returned.
func New(desc Description) (*Timeline, error) {
	if !(desc.LoopEnd > desc.LoopStart) {
		tracer().Errorf("loop [%g,%g) is empty", desc.LoopStart, desc.LoopEnd)
		return nil, ErrInvalidPeriod
	}
	if desc.Jugglers < 1 {
		return nil, ErrNoJugglers
	}
	tl := &Timeline{
		loopStart:  desc.LoopStart,
		loopEnd:    desc.LoopEnd,
		jugglers:   desc.Jugglers,
		events:     make([]Event, len(desc.Events)),
		symmetries: append([]Symmetry(nil), desc.Symmetries...),
	}
	for i, ev := range desc.Events {
		if err := tl.checkEvent(i, ev); err != nil {
			tracer().Errorf("timeline: %v", err)
			return nil, err
		}
		ev.Transitions = append([]Transition(nil), ev.Transitions...)
		tl.events[i] = ev
	}
	if err := tl.resolveLinks(); err != nil {
		tracer().Errorf("timeline: %v", err)
		return nil, err
	}
	tracer().Debugf("timeline with %d events, %d links, period [%g,%g)",
		len(tl.events), len(tl.links), tl.loopStart, tl.loopEnd)
	return tl, nil
}

// MustNew is like New, but panics if the description cannot be resolved.
// A broken model is a violated precondition of the notation compiler.
func MustNew(desc Description) *Timeline {
	tl, err := New(desc)
	if err != nil {
		panic(err)
	}
	return tl
}

func (tl *Timeline) checkEvent(i int, ev Event) error {
	if ev.T < tl.loopStart || ev.T >= tl.loopEnd {
		return fmt.Errorf("event #%d at t=%g: %w", i, ev.T, ErrEventOutOfPeriod)
	}
	if i > 0 && ev.T < tl.events[i-1].T {
		return fmt.Errorf("event #%d at t=%g precedes t=%g: %w", i, ev.T, tl.events[i-1].T, ErrEventOrder)
	}
	if !ev.Hand.Valid() {
		return fmt.Errorf("event #%d has %s: %w", i, ev.Hand, ErrInvalidEvent)
	}
	if ev.Juggler < 0 || ev.Juggler >= tl.jugglers {
		return fmt.Errorf("event #%d references juggler %d of %d: %w", i, ev.Juggler, tl.jugglers, ErrInvalidEvent)
	}
	seen := make(map[int]bool, len(ev.Transitions))
	for _, tr := range ev.Transitions {
		if seen[tr.Path] {
			return fmt.Errorf("event #%d, path %d: %w", i, tr.Path, ErrDuplicatePath)
		}
		seen[tr.Path] = true
	}
	return nil
}

// resolveLinks connects every transition with the next occurrence of its
// path in cyclic order, starting just after its own event.
func (tl *Timeline) resolveLinks() error {
	n := len(tl.events)
	tl.outgoing = make([][]int, n)
	tl.incoming = make([][]int, n)
	for i, ev := range tl.events {
		tl.outgoing[i] = make([]int, len(ev.Transitions))
		tl.incoming[i] = make([]int, len(ev.Transitions))
		for k := range ev.Transitions {
			tl.incoming[i][k] = -1
		}
	}
	for i, ev := range tl.events {
		for k, tr := range ev.Transitions {
			link, err := tl.resolve(i, k, tr)
			if err != nil {
				return err
			}
			end := link.End
			if tl.incoming[end.Event][end.Transition] >= 0 {
				return fmt.Errorf("path %d caught twice at event #%d: %w", tr.Path, end.Event, ErrUnresolvedLink)
			}
			tl.outgoing[i][k] = len(tl.links)
			tl.incoming[end.Event][end.Transition] = len(tl.links)
			tl.links = append(tl.links, link)
		}
	}
	return nil
}

func (tl *Timeline) resolve(i, k int, tr Transition) (PathLink, error) {
	n := len(tl.events)
	start := tl.events[i]
	for step := 1; step <= n; step++ {
		j := (i + step) % n
		slot := tl.events[j].Slot(tr.Path)
		if slot < 0 {
			continue
		}
		end := tl.events[j]
		link := PathLink{
			Start:  TransitionRef{Event: i, Transition: k},
			End:    TransitionRef{Event: j, Transition: slot},
			Path:   tr.Path,
			InHand: tr.InHand(),
			Wraps:  i+step >= n,
		}
		next := end.Transitions[slot]
		if !tr.InHand() && next.Kind != Catch {
			return link, fmt.Errorf("throw of path %d at event #%d ends in %s at event #%d: %w",
				tr.Path, i, next.Kind, j, ErrUnresolvedLink)
		}
		if tr.InHand() {
			if next.Kind == Catch {
				return link, fmt.Errorf("path %d caught at event #%d while held: %w", tr.Path, j, ErrUnresolvedLink)
			}
			if end.Hand != start.Hand || end.Juggler != start.Juggler {
				return link, fmt.Errorf("path %d leaves hand at event #%d without a throw: %w",
					tr.Path, i, ErrUnresolvedLink)
			}
		}
		if _, te := tl.LinkTimes(link); !(te > start.T) {
			return link, fmt.Errorf("path %d from event #%d takes no time: %w", tr.Path, i, ErrUnresolvedLink)
		}
		return link, nil
	}
	return PathLink{}, fmt.Errorf("path %d at event #%d: %w", tr.Path, i, ErrUnresolvedLink)
}

// PeriodBounds returns (loop_start, loop_end).
func (tl *Timeline) PeriodBounds() (float64, float64) {
	return tl.loopStart, tl.loopEnd
}

// Period is the length of one loop of the pattern.
func (tl *Timeline) Period() float64 {
	return tl.loopEnd - tl.loopStart
}

// JugglerCount returns the number of jugglers.
func (tl *Timeline) JugglerCount() int {
	return tl.jugglers
}

// Symmetries returns a copy of the declared symmetries.
func (tl *Timeline) Symmetries() []Symmetry {
	return append([]Symmetry(nil), tl.symmetries...)
}

// EventCount returns the number of events in one period.
func (tl *Timeline) EventCount() int {
	return len(tl.events)
}

// Event returns event i, with i taken modulo the event count.
func (tl *Timeline) Event(i int) Event {
	return tl.events[tl.wrap(i)]
}

// Next returns the index of the event following i, wrapping around.
func (tl *Timeline) Next(i int) int {
	return tl.wrap(i + 1)
}

// Prev returns the index of the event preceding i, wrapping around.
func (tl *Timeline) Prev(i int) int {
	return tl.wrap(i - 1)
}

func (tl *Timeline) wrap(i int) int {
	n := len(tl.events)
	if n == 0 {
		panic("timeline has no events")
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// EventsInPeriod iterates over the events with time in [loop_start, loop_end),
// in cyclic order beginning with the first event at or after loop_start.
// The sequence may be iterated any number of times.
func (tl *Timeline) EventsInPeriod() iter.Seq2[int, Event] {
	return func(yield func(int, Event) bool) {
		n := len(tl.events)
		first := sort.Search(n, func(i int) bool {
			return tl.events[i].T >= tl.loopStart
		})
		for step := 0; step < n; step++ {
			i := (first + step) % n
			ev := tl.events[i]
			if ev.T < tl.loopStart || ev.T >= tl.loopEnd {
				continue
			}
			if !yield(i, ev) {
				return
			}
		}
	}
}

// Links returns all path links, ordered by start event and slot.
func (tl *Timeline) Links() []PathLink {
	return append([]PathLink(nil), tl.links...)
}

// OutgoingLink returns the link starting at a transition.
func (tl *Timeline) OutgoingLink(ref TransitionRef) (PathLink, bool) {
	return tl.linkAt(tl.outgoing, ref)
}

// IncomingLink returns the link ending at a transition.
func (tl *Timeline) IncomingLink(ref TransitionRef) (PathLink, bool) {
	return tl.linkAt(tl.incoming, ref)
}

func (tl *Timeline) linkAt(table [][]int, ref TransitionRef) (PathLink, bool) {
	if ref.Event < 0 || ref.Event >= len(table) {
		return PathLink{}, false
	}
	slots := table[ref.Event]
	if ref.Transition < 0 || ref.Transition >= len(slots) || slots[ref.Transition] < 0 {
		return PathLink{}, false
	}
	return tl.links[slots[ref.Transition]], true
}

// LinkTimes returns start and end time of a link. The end time is unwrapped,
// i.e. shifted by one period if the link crosses loop_end, and is therefore
// always greater than the start time.
func (tl *Timeline) LinkTimes(link PathLink) (float64, float64) {
	ts := tl.events[link.Start.Event].T
	te := tl.events[link.End.Event].T
	if link.Wraps {
		te += tl.Period()
	}
	return ts, te
}

// PathNumbers returns the distinct path numbers of the pattern, ascending.
func (tl *Timeline) PathNumbers() []int {
	seen := make(map[int]bool)
	var paths []int
	for _, l := range tl.links {
		if !seen[l.Path] {
			seen[l.Path] = true
			paths = append(paths, l.Path)
		}
	}
	sort.Ints(paths)
	return paths
}
