package tooni

import "github.com/phanxgames/tooni/catalog"

// EventType identifies a change to the composition.
type EventType uint8

const (
	EventItemAdded         EventType = iota // an overlay was attached
	EventItemRemoved                        // an overlay was detached
	EventBackgroundSet                      // a background image was installed
	EventBackgroundCleared                  // the background image was removed
	EventExported                           // the composition was exported
)

var eventTypeNames = [...]string{
	EventItemAdded:         "item-added",
	EventItemRemoved:       "item-removed",
	EventBackgroundSet:     "background-set",
	EventBackgroundCleared: "background-cleared",
	EventExported:          "exported",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event describes one composition change. ItemID and Category are set for
// item events; Active is the size of the Active Overlay Set afterwards.
type Event struct {
	Type     EventType
	ItemID   string
	Category catalog.Category
	Active   int
}

// EventSink receives composition events. Events are emitted on the event
// loop goroutine.
type EventSink interface {
	EmitEvent(event Event)
}
