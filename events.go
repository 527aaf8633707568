package covault

// Event is an append-only record describing a state change, published
// for external observers. Events are never consumed internally and no
// ordering is guaranteed beyond the causal order of the triggering
// calls.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attr is a shorthand constructor for an event attribute.
func Attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Emitter publishes events to whatever side channel the host provides.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc makes a plain function usable as an Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) {
	f(ev)
}

// NopEmitter drops all events.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}

// Recorder is an Emitter that collects all events in memory. Useful for
// tests and for hosts that drain the record stream in batches.
type Recorder struct {
	events []Event
}

var _ Emitter = (*Recorder)(nil)

func (r *Recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

// Events returns all records emitted so far, in emission order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reset drops all collected records.
func (r *Recorder) Reset() {
	r.events = nil
}
