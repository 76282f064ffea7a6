package layers

// EventKind identifies layer store changes.
type EventKind string

const (
	LayerAdded           EventKind = "added"
	LayerRemoved         EventKind = "removed"
	LayersReordered      EventKind = "reordered"
	LayerSelected        EventKind = "selected"
	LayerDeselected      EventKind = "deselected"
	LayerRenamed         EventKind = "renamed"
	LayerParallaxChanged EventKind = "parallax"
)

// Event is emitted for every successful store mutation.
type Event struct {
	Kind EventKind
	// Layer is the affected layer; empty for reorders.
	Layer string
	// Previous holds the old name for renames and the previously selected
	// layer for selection changes.
	Previous string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
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

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
