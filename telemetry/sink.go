package telemetry

// Sink receives events; implementations must not block the tick loop
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})

// Fanout forwards each event to every sink in order
type Fanout []Sink

func (f Fanout) Emit(e Event) {
	for _, s := range f {
		s.Emit(e)
	}
}

// Filter forwards only the listed kinds
func Filter(next Sink, kinds ...Kind) Sink {
	var mask uint64
	for _, k := range kinds {
		mask |= 1 << k
	}
	return SinkFunc(func(e Event) {
		if mask&(1<<e.Kind) != 0 {
			next.Emit(e)
		}
	})
}
