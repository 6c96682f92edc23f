package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeRun    Scope = iota + 1 // one CLI command
	ScopeTarget                  // one (package, type) target
	ScopeStage                   // load, inspect, render, write
	ScopeMember                  // one discovered member
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeTarget:
		return "target"
	case ScopeStage:
		return "stage"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "generate", "inspect", "target:./fruit.Fruit"
	Detail   string
	Elapsed  time.Duration // set on span ends
	Extra    map[string]string
}
