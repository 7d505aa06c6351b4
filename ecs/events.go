package ecs

// EventType names a kind of event. Packages that raise events declare their
// own constants.
type EventType string

// Event is one entry of the world event queue.
type Event struct {
	Type EventType
	// Tick is the world update that raised the event.
	Tick uint64
	Data any
}

// EventQueue holds the events raised during one world update. The world
// clears it at the start of the next update.
type EventQueue struct {
	items []Event
	tick  uint64
}

// Push queues an event stamped with the current tick.
func (q *EventQueue) Push(typ EventType, data any) {
	if q == nil {
		return
	}
	q.items = append(q.items, Event{Type: typ, Tick: q.tick, Data: data})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) reset(tick uint64) {
	q.items = nil
	q.tick = tick
}

// Payloads returns, in order, the data of every event of type typ whose
// payload is a T. Events of that type carrying anything else are skipped.
func Payloads[T any](events []Event, typ EventType) []T {
	var out []T
	for _, evt := range events {
		if evt.Type != typ {
			continue
		}
		if v, ok := evt.Data.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
