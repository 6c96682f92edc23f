package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory (circular buffer).
type RingTracer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	level    Level
}

// NewRingTracer creates a new RingTracer with specified capacity.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

// Emit stores a copy of ev. At LevelError every event is kept so that the
// ring can be dumped when a run fails.
func (t *RingTracer) Emit(ev *Event) {
	if t.level != LevelError && !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.head] = stored
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		result := make([]Event, t.head)
		copy(result, t.events[:t.head])
		return result
	}
	result := make([]Event, t.capacity)
	copy(result, t.events[t.head:])
	copy(result[t.capacity-t.head:], t.events[:t.head])
	return result
}

// DumpFailed writes run events and the events of target spans that contain
// a span ended as "failed". When the ring holds no such span, or it wrapped
// past the failing target's begin event, everything is written.
func (t *RingTracer) DumpFailed(w io.Writer, format Format) error {
	events := FailedTargets(t.Snapshot())
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// FailedTargets filters events down to the run scope and the subtrees of
// failing target spans.
func FailedTargets(events []Event) []Event {
	parent := make(map[uint64]uint64)
	scope := make(map[uint64]Scope)
	for _, ev := range events {
		if ev.Kind == KindSpanBegin {
			parent[ev.SpanID] = ev.ParentID
			scope[ev.SpanID] = ev.Scope
		}
	}
	// target returns the enclosing target span of id, 0 when unknown.
	target := func(id uint64) uint64 {
		for id != 0 {
			if scope[id] == ScopeTarget {
				return id
			}
			next, ok := parent[id]
			if !ok {
				return 0
			}
			id = next
		}
		return 0
	}

	failed := make(map[uint64]bool)
	for _, ev := range events {
		if ev.Kind == KindSpanEnd && ev.Detail == "failed" {
			if id := target(ev.SpanID); id != 0 {
				failed[id] = true
			}
		}
	}
	if len(failed) == 0 {
		return events
	}

	out := events[:0:0]
	for _, ev := range events {
		id := ev.SpanID
		if ev.Kind == KindPoint || id == 0 {
			id = ev.ParentID
		}
		if ev.Scope == ScopeRun || ev.Kind == KindHeartbeat || failed[target(id)] {
			out = append(out, ev)
		}
	}
	return out
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
