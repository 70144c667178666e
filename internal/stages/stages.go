// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stages drives the simulated progress of the five-stage
// evaluation pipeline.
//
// The real pipeline reports nothing until it finishes, so progress is a
// fixed timeline started at submit time. Every tick carries the generation
// of the submission that scheduled it; consumers drop ticks whose
// generation is no longer current.
package stages

import (
	"errors"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Count is the number of pipeline stages.
const Count = 5

// Names are the display labels, in pipeline order.
var Names = [Count]string{
	"Screening message",
	"Drafting reply",
	"Critic review",
	"Sending email",
	"Recording history",
}

// =============================================================================
// STATUS
// =============================================================================

// Status is the display state of one stage.
type Status int

const (
	Pending Status = iota
	Active
	Done
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Done:
		return "done"
	default:
		return "pending"
	}
}

// Transition is a timed change applied to one stage.
type Transition int

const (
	Activate Transition = iota
	Complete
)

// String returns the transition name.
func (t Transition) String() string {
	if t == Complete {
		return "complete"
	}
	return "activate"
}

// =============================================================================
// BOARD
// =============================================================================

// Board holds the status of every stage. It is a value: Apply returns a
// new board and never mutates the receiver.
type Board [Count]Status

// Stage pairs a name with its status for rendering.
type Stage struct {
	Name   string
	Status Status
}

// NewBoard returns an all-pending board.
func NewBoard() Board {
	return Board{}
}

// Apply returns the board with one transition applied. Activate sets the
// stage active and Complete sets it done, unconditionally, so applying the
// same tick twice is harmless. Out-of-range indexes are ignored.
func (b Board) Apply(index int, tr Transition) Board {
	if index < 0 || index >= Count {
		return b
	}
	switch tr {
	case Activate:
		b[index] = Active
	case Complete:
		b[index] = Done
	}
	return b
}

// Stages returns the board as named stages in pipeline order.
func (b Board) Stages() []Stage {
	out := make([]Stage, Count)
	for i := range b {
		out[i] = Stage{Name: Names[i], Status: b[i]}
	}
	return out
}

// DoneCount returns how many stages are done.
func (b Board) DoneCount() int {
	n := 0
	for _, s := range b {
		if s == Done {
			n++
		}
	}
	return n
}

// =============================================================================
// TIMELINE
// =============================================================================

// Timeline holds, per stage, the offsets from submit time at which the
// stage activates and completes.
type Timeline struct {
	Activate [Count]time.Duration
	Complete [Count]time.Duration
}

// DefaultTimeline returns the stock schedule (activate at 300ms, 1.5s, 3s,
// 5s, 7s; complete at 1.4s, 2.9s, 4.9s, 6.9s, 9s).
func DefaultTimeline() Timeline {
	ms := time.Millisecond
	return Timeline{
		Activate: [Count]time.Duration{300 * ms, 1500 * ms, 3000 * ms, 5000 * ms, 7000 * ms},
		Complete: [Count]time.Duration{1400 * ms, 2900 * ms, 4900 * ms, 6900 * ms, 9000 * ms},
	}
}

// NewTimeline builds a timeline from per-stage offset slices.
func NewTimeline(activate, complete []time.Duration) (Timeline, error) {
	var t Timeline
	if len(activate) != Count || len(complete) != Count {
		return t, fmt.Errorf("timeline needs %d activate and %d complete offsets, got %d and %d",
			Count, Count, len(activate), len(complete))
	}
	copy(t.Activate[:], activate)
	copy(t.Complete[:], complete)
	return t, t.Validate()
}

// ErrInvalidTimeline is wrapped by Validate failures.
var ErrInvalidTimeline = errors.New("invalid stage timeline")

// Validate rejects negative offsets and stages that complete before they
// activate.
func (t Timeline) Validate() error {
	for i := 0; i < Count; i++ {
		if t.Activate[i] < 0 || t.Complete[i] < 0 {
			return fmt.Errorf("%w: stage %d has a negative offset", ErrInvalidTimeline, i+1)
		}
		if t.Complete[i] < t.Activate[i] {
			return fmt.Errorf("%w: stage %d completes at %s before activating at %s",
				ErrInvalidTimeline, i+1, t.Complete[i], t.Activate[i])
		}
	}
	return nil
}

// Total returns the offset of the last transition.
func (t Timeline) Total() time.Duration {
	var max time.Duration
	for i := 0; i < Count; i++ {
		if t.Complete[i] > max {
			max = t.Complete[i]
		}
		if t.Activate[i] > max {
			max = t.Activate[i]
		}
	}
	return max
}

// =============================================================================
// TICKS
// =============================================================================

// TickMsg is delivered when a scheduled transition fires.
type TickMsg struct {
	Gen        uint64
	Index      int
	Transition Transition
}

// Event is one scheduled transition.
type Event struct {
	At  time.Duration
	Msg TickMsg
}

// Events lists all 2*Count transitions ordered by firing time. Ties keep
// stage order, activation before completion.
func (t Timeline) Events(gen uint64) []Event {
	events := make([]Event, 0, 2*Count)
	for i := 0; i < Count; i++ {
		events = append(events,
			Event{At: t.Activate[i], Msg: TickMsg{Gen: gen, Index: i, Transition: Activate}},
			Event{At: t.Complete[i], Msg: TickMsg{Gen: gen, Index: i, Transition: Complete}},
		)
	}
	sort.SliceStable(events, func(a, b int) bool { return events[a].At < events[b].At })
	return events
}

// Schedule returns one timer command per transition. The timers are never
// cancelled; stale ones are filtered by generation on arrival.
func Schedule(gen uint64, t Timeline) []tea.Cmd {
	events := t.Events(gen)
	cmds := make([]tea.Cmd, 0, len(events))
	for _, ev := range events {
		msg := ev.Msg
		cmds = append(cmds, tea.Tick(ev.At, func(time.Time) tea.Msg { return msg }))
	}
	return cmds
}
