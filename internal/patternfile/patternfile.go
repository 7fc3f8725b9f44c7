/*
Package patternfile reads juggling patterns from YAML files.

A pattern file mirrors a timeline description:

	loop_start: 0
	loop_end: 3
	jugglers: 1
	symmetries:
	  - type: delay
	    delay: 3
	events:
	  - t: 0
	    hand: right
	    transitions:
	      - {kind: throw, path: 1}

Jugglers are numbered from 1 in files; an event without a juggler belongs
to juggler 1.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package patternfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/ladder/timeline"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'patternfile'
func tracer() tracing.Trace {
	return tracing.Select("patternfile")
}

// ErrSyntax indicates a pattern file with unknown names or values.
var ErrSyntax = errors.New("pattern file syntax")

// File is the YAML form of a pattern.
type File struct {
	LoopStart  float64    `yaml:"loop_start"`
	LoopEnd    float64    `yaml:"loop_end"`
	Jugglers   int        `yaml:"jugglers"`
	Symmetries []Symmetry `yaml:"symmetries"`
	Events     []Event    `yaml:"events"`
}

// Symmetry is the YAML form of a declared symmetry.
type Symmetry struct {
	Type        string  `yaml:"type"`
	Permutation string  `yaml:"permutation,omitempty"`
	Delay       float64 `yaml:"delay,omitempty"`
}

// Event is the YAML form of an event.
type Event struct {
	T           float64      `yaml:"t"`
	Hand        string       `yaml:"hand"`
	Juggler     int          `yaml:"juggler,omitempty"`
	Transitions []Transition `yaml:"transitions"`
}

// Transition is the YAML form of a transition.
type Transition struct {
	Kind string `yaml:"kind"`
	Path int    `yaml:"path"`
}

// Load reads a pattern file and builds its timeline.
func Load(path string) (*timeline.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	tl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded pattern %s: %d events", path, tl.EventCount())
	return tl, nil
}

// Parse decodes a pattern and builds its timeline.
func Parse(data []byte) (*timeline.Timeline, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pattern: %w", err)
	}
	desc, err := f.Description()
	if err != nil {
		return nil, err
	}
	return timeline.New(desc)
}

// Description converts a file to a timeline description.
func (f File) Description() (timeline.Description, error) {
	desc := timeline.Description{
		LoopStart: f.LoopStart,
		LoopEnd:   f.LoopEnd,
		Jugglers:  f.Jugglers,
	}
	if desc.Jugglers == 0 {
		desc.Jugglers = 1
	}
	for i, s := range f.Symmetries {
		typ, err := symmetryType(s.Type)
		if err != nil {
			return desc, fmt.Errorf("symmetry %d: %w", i, err)
		}
		desc.Symmetries = append(desc.Symmetries, timeline.Symmetry{
			Type:        typ,
			Permutation: s.Permutation,
			Delay:       s.Delay,
		})
	}
	for i, e := range f.Events {
		ev, err := e.event()
		if err != nil {
			return desc, fmt.Errorf("event %d: %w", i, err)
		}
		desc.Events = append(desc.Events, ev)
	}
	return desc, nil
}

func (e Event) event() (timeline.Event, error) {
	ev := timeline.Event{T: e.T}
	if e.Juggler != 0 {
		ev.Juggler = e.Juggler - 1
	}
	switch e.Hand {
	case "left", "l", "L":
		ev.Hand = timeline.LeftHand
	case "right", "r", "R":
		ev.Hand = timeline.RightHand
	default:
		return ev, fmt.Errorf("hand %q: %w", e.Hand, ErrSyntax)
	}
	for _, tr := range e.Transitions {
		kind, err := transitionKind(tr.Kind)
		if err != nil {
			return ev, err
		}
		ev.Transitions = append(ev.Transitions, timeline.Transition{Kind: kind, Path: tr.Path})
	}
	return ev, nil
}

func transitionKind(s string) (timeline.TransitionKind, error) {
	switch s {
	case "throw":
		return timeline.Throw, nil
	case "catch":
		return timeline.Catch, nil
	case "hold", "holding":
		return timeline.Hold, nil
	}
	return 0, fmt.Errorf("transition kind %q: %w", s, ErrSyntax)
}

func symmetryType(s string) (timeline.SymmetryType, error) {
	switch s {
	case "switch":
		return timeline.SymSwitch, nil
	case "switchdelay", "switch-delay":
		return timeline.SymSwitchDelay, nil
	case "delay":
		return timeline.SymDelay, nil
	case "", "none":
		return timeline.SymNone, nil
	}
	return 0, fmt.Errorf("symmetry type %q: %w", s, ErrSyntax)
}
