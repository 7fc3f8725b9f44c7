package timeline

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'timeline'
func tracer() tracing.Trace {
	return tracing.Select("timeline")
}

var (
	// ErrInvalidPeriod indicates loop_end <= loop_start.
	ErrInvalidPeriod = errors.New("loop end must be after loop start")
	// ErrNoJugglers indicates a pattern without jugglers.
	ErrNoJugglers = errors.New("pattern needs at least one juggler")
	// ErrEventOutOfPeriod indicates an event time outside [loop_start, loop_end).
	ErrEventOutOfPeriod = errors.New("event time outside of loop period")
	// ErrEventOrder indicates events not in non-decreasing time order.
	ErrEventOrder = errors.New("events not in time order")
	// ErrInvalidEvent indicates a bad hand or juggler reference.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrDuplicatePath indicates a path number used twice within one event.
	ErrDuplicatePath = errors.New("path appears twice in one event")
	// ErrUnresolvedLink indicates a transition without a valid partner.
	ErrUnresolvedLink = errors.New("unresolved path link")
)

// Hand identifies one of the two hands of a juggler.
type Hand int8

// Hands of a juggler.
const (
	LeftHand Hand = iota
	RightHand
)

func (h Hand) String() string {
	switch h {
	case LeftHand:
		return "left"
	case RightHand:
		return "right"
	}
	return fmt.Sprintf("hand(%d)", int8(h))
}

// Valid is a predicate: is h one of the two hands?
func (h Hand) Valid() bool {
	return h == LeftHand || h == RightHand
}

// TransitionKind tells a throw from a catch or a hold.
type TransitionKind int8

// Kinds of transitions.
const (
	Throw TransitionKind = iota
	Catch
	Hold
)

func (k TransitionKind) String() string {
	switch k {
	case Throw:
		return "throw"
	case Catch:
		return "catch"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Transition is one throw, catch or hold of an event. Its position within
// the event's transition list is its multiplexing slot.
type Transition struct {
	Kind TransitionKind
	Path int // path number, unique within the pattern
}

// InHand is true for transitions where the object stays in the hand
// afterwards.
func (tr Transition) InHand() bool {
	return tr.Kind != Throw
}

// Event is a juggling action of one hand at one instant.
type Event struct {
	T           float64
	Hand        Hand
	Juggler     int // 0-based
	Transitions []Transition
}

// NumberOfTransitions is the count of transitions bundled in this event.
func (ev Event) NumberOfTransitions() int {
	return len(ev.Transitions)
}

// Slot returns the index of the transition carrying path, or -1.
func (ev Event) Slot(path int) int {
	for i, tr := range ev.Transitions {
		if tr.Path == path {
			return i
		}
	}
	return -1
}

func (ev Event) String() string {
	return fmt.Sprintf("event[t=%g %s j%d |tr|=%d]", ev.T, ev.Hand, ev.Juggler, len(ev.Transitions))
}

// TransitionRef addresses a transition by event index and slot.
type TransitionRef struct {
	Event      int
	Transition int
}

// PathLink connects a transition to the next transition of the same path.
// For thrown transitions this is the catch; for in-hand transitions it is
// the next throw or hold of the same hand.
type PathLink struct {
	Start  TransitionRef
	End    TransitionRef
	Path   int
	InHand bool
	Wraps  bool // end lies in the following period
}

// SymmetryType tags a declared invariance of a pattern.
type SymmetryType int8

// Symmetry types. Only switch and switch-delay matter for diagrams.
const (
	SymNone SymmetryType = iota
	SymSwitch
	SymSwitchDelay
	SymDelay
)

func (s SymmetryType) String() string {
	switch s {
	case SymNone:
		return "none"
	case SymSwitch:
		return "switch"
	case SymSwitchDelay:
		return "switchdelay"
	case SymDelay:
		return "delay"
	}
	return fmt.Sprintf("symmetry(%d)", int8(s))
}

// Symmetry is a declared invariance of a pattern. Permutation and delay are
// kept for completeness; diagrams only look at the type.
type Symmetry struct {
	Type        SymmetryType
	Permutation string
	Delay       float64
}

// Description is the validated input handed over by a notation compiler.
type Description struct {
	LoopStart  float64
	LoopEnd    float64
	Jugglers   int
	Events     []Event
	Symmetries []Symmetry
}
