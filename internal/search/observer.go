package search

import (
	"fmt"
	"io"

	"github.com/roach88/ntm/internal/machine"
)

// EventKind distinguishes observer events.
type EventKind string

const (
	EventExpand EventKind = "expand"
	EventAccept EventKind = "accept"
	EventReject EventKind = "reject"
)

// Event describes one point of a search.
//
// Config is only valid for the duration of the callback: the engine
// consumes expanded configurations.
type Event struct {
	Kind     EventKind
	Seq      int64
	Depth    int
	Frontier int
	Config   *machine.Configuration
}

// Observer receives search events. Implementations must not retain
// Event.Config.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

type observers []Observer

func (o observers) OnEvent(e Event) {
	for _, obs := range o {
		obs.OnEvent(e)
	}
}

// TraceEvent is a rendered, retainable copy of an Event.
type TraceEvent struct {
	Seq      int64     `json:"seq"`
	Kind     EventKind `json:"kind"`
	Depth    int       `json:"depth"`
	State    string    `json:"state,omitempty"`
	Position int       `json:"position"`
	Tape     string    `json:"tape,omitempty"`
}

// Trace collects every event of a search.
type Trace struct {
	desc   *machine.Description
	Events []TraceEvent
}

// NewTrace creates a Trace that renders configurations with desc.
func NewTrace(desc *machine.Description) *Trace {
	return &Trace{desc: desc}
}

func (t *Trace) OnEvent(e Event) {
	te := TraceEvent{Seq: e.Seq, Kind: e.Kind, Depth: e.Depth}
	if e.Config != nil {
		te.State = t.desc.StateName(e.Config.State())
		te.Position = e.Config.Position()
		te.Tape = t.desc.Decode(e.Config.Tape())
	}
	t.Events = append(t.Events, te)
}

// Recorder prints every expanded configuration, one per line, followed by a
// blank line whenever the depth changes.
type Recorder struct {
	w     io.Writer
	desc  *machine.Description
	depth int
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w io.Writer, desc *machine.Description) *Recorder {
	return &Recorder{w: w, desc: desc}
}

func (r *Recorder) OnEvent(e Event) {
	if e.Kind != EventExpand {
		return
	}
	if e.Depth != r.depth {
		fmt.Fprintln(r.w)
		r.depth = e.Depth
	}
	fmt.Fprintln(r.w, r.desc.Render(e.Config))
}
