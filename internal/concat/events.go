package concat

import "time"

// Status captures the state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being read or cleaned.
	StatusWorking Status = "working"
	// StatusDone indicates the file made it into the output.
	StatusDone Status = "done"
	// StatusSkipped indicates the file was filtered out (size, binary).
	StatusSkipped Status = "skipped"
	// StatusError indicates the file could not be read.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Reason  string
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from workers.
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

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
