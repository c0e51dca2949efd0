package model

import (
	"reflect"
	"time"
)

// Event describes a change that has already been decided for an aggregate.
type Event interface {
	EventID() ID
	EventCorrelationID() CorrelationID
	EventCausationID() CausationID
	EventVersion() Version
	EventAt() time.Time
}

// EventTyper is an optional interface that an Event can implement to give
// it a stable persisted type tag different from the struct name.
type EventTyper interface {
	EventType() string
}

// EventModel provides a default implementation of an Event.
type EventModel struct {
	// ID is opaque and generated fresh at construction. Version, not ID,
	// is the ordering key.
	ID ID `json:"event_id"`

	// CorrelationID is copied from the command that produced the event.
	CorrelationID CorrelationID `json:"correlation_id"`

	// CausationID is the CommandID of the producing command.
	CausationID CausationID `json:"causation_id"`

	// Version is the aggregate version this event produces.
	Version Version `json:"version"`

	// At is the time the change was decided.
	At time.Time `json:"at"`
}

// NewEventModel stamps the common part of an event from the producing
// command and the version it yields.
func NewEventModel(cmd Command, version Version, at time.Time) EventModel {
	return EventModel{
		ID:            NewID(),
		CorrelationID: cmd.CommandCorrelationID(),
		CausationID:   CausationID(cmd.CommandID()),
		Version:       version,
		At:            at,
	}
}

func (m EventModel) EventID() ID {
	return m.ID
}

func (m EventModel) EventCorrelationID() CorrelationID {
	return m.CorrelationID
}

func (m EventModel) EventCausationID() CausationID {
	return m.CausationID
}

func (m EventModel) EventVersion() Version {
	return m.Version
}

func (m EventModel) EventAt() time.Time {
	return m.At
}

// EventType extracts the persisted type tag of the event along with its
// reflect.Type. Primarily useful for serializers that need to marshal and
// unmarshal instances of Event to a []byte.
func EventType(event Event) (string, reflect.Type) {
	t := reflect.TypeOf(event)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if v, ok := event.(EventTyper); ok {
		return v.EventType(), t
	}

	return t.Name(), t
}
