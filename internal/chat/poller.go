package chat

import (
	"time"

	"parley/internal/protocol"
)

const (
	// DefaultVisibleInterval is the poll delay while the UI has focus.
	DefaultVisibleInterval = 2 * time.Second
	// DefaultHiddenInterval is the poll delay while backgrounded.
	DefaultHiddenInterval = 4 * time.Second
	// DefaultMaxPerCycle bounds events applied per poll cycle. Excess
	// events queue for the next cycle; they are never dropped.
	DefaultMaxPerCycle = 10
)

// Scheduler owns the poll cadence and the per-cycle work bound. The loop
// itself lives in the UI runtime (each cycle schedules the next); the
// scheduler decides the delay for the next cycle and meters how many queued
// events one cycle may apply. A failed poll changes nothing here: the next
// cycle retries naturally.
type Scheduler struct {
	visibleInterval time.Duration
	hiddenInterval  time.Duration
	maxPerCycle     int
	visible         bool
	pending         []protocol.Event
}

func NewScheduler(visible, hidden time.Duration, maxPerCycle int) *Scheduler {
	if visible <= 0 {
		visible = DefaultVisibleInterval
	}
	if hidden <= 0 {
		hidden = DefaultHiddenInterval
	}
	if maxPerCycle <= 0 {
		maxPerCycle = DefaultMaxPerCycle
	}
	return &Scheduler{
		visibleInterval: visible,
		hiddenInterval:  hidden,
		maxPerCycle:     maxPerCycle,
		visible:         true,
	}
}

// SetVisible records UI focus state; the delay adapts on the next cycle.
func (s *Scheduler) SetVisible(visible bool) {
	s.visible = visible
}

func (s *Scheduler) Visible() bool {
	return s.visible
}

// Delay returns how long to wait before the next poll cycle.
func (s *Scheduler) Delay() time.Duration {
	if s.visible {
		return s.visibleInterval
	}
	return s.hiddenInterval
}

// Enqueue adds a freshly polled batch to the pending queue.
func (s *Scheduler) Enqueue(events []protocol.Event) {
	s.pending = append(s.pending, events...)
}

// NextBatch pops up to maxPerCycle pending events for this cycle.
func (s *Scheduler) NextBatch() []protocol.Event {
	n := len(s.pending)
	if n == 0 {
		return nil
	}
	if n > s.maxPerCycle {
		n = s.maxPerCycle
	}
	batch := s.pending[:n]
	s.pending = s.pending[n:]
	return batch
}

// Pending reports how many events are queued for later cycles.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
