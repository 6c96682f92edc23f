package driver

import (
	"time"

	"enumkit/pkg/enumset"
)

//go:generate go run enumkit/cmd/enumgen generate --type Stage --trimprefix Stage --transform lower

// Stage is one step of generating a target.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageInspect
	StageRender
	StageWrite
)

// Stages is the set of completed stages of a target.
type Stages = enumset.Set[Stage]

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the target is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusCached indicates the stage was answered from the cache.
	StatusCached Status = "cached"
	// StatusDone indicates the target finished.
	StatusDone Status = "done"
	// StatusError indicates the target failed.
	StatusError Status = "error"
)

// Event reports progress for a target, or for the whole run when Target is
// empty.
type Event struct {
	Target  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) { f(evt) }
