package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/golang/snappy"
)

// Encode marshals v to snappy-compressed JSON.
func Encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

// Decode unmarshals snappy-compressed JSON produced by Encode.
func Decode(data []byte, v interface{}) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

type taggedEvent struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Serializer converts between Events and EventDocuments. Polymorphic
// events are stored behind a discriminated-union kind tag.
type Serializer struct {
	eventTypes map[string]reflect.Type
}

// NewSerializer constructs a Serializer and binds the specified events.
// Bind may be subsequently called to add more.
func NewSerializer(events ...model.Event) *Serializer {
	s := &Serializer{eventTypes: map[string]reflect.Type{}}
	s.Bind(events...)
	return s
}

// Bind registers the specified events with the serializer; may be called
// more than once.
func (s *Serializer) Bind(events ...model.Event) {
	for _, event := range events {
		kind, t := model.EventType(event)
		s.eventTypes[kind] = t
	}
}

// MarshalEvent converts an event into its persistent type, EventDocument.
func (s *Serializer) MarshalEvent(partition model.ID, streamID model.StreamID, event model.Event) (*EventDocument, error) {
	const op errors.Op = "docstore/Serializer.MarshalEvent"

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	kind, _ := model.EventType(event)
	data, err := json.Marshal(taggedEvent{
		Kind:    kind,
		Payload: json.RawMessage(payload),
	})
	if err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	return &EventDocument{
		ID:        event.EventID(),
		Partition: partition,
		StreamID:  streamID,
		Version:   event.EventVersion(),
		Timestamp: event.EventAt(),
		Data:      snappy.Encode(nil, data),
	}, nil
}

// UnmarshalEvent converts the persistent type, EventDocument, back into an
// Event instance.
func (s *Serializer) UnmarshalEvent(doc *EventDocument) (model.Event, error) {
	const op errors.Op = "docstore/Serializer.UnmarshalEvent"

	data, err := snappy.Decode(nil, doc.Data)
	if err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	var wrapper taggedEvent
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	t, ok := s.eventTypes[wrapper.Kind]
	if !ok {
		return nil, errors.E(op, errors.Internal, fmt.Sprintf("unbound event kind %q", wrapper.Kind))
	}

	v := reflect.New(t).Interface()
	if err := json.Unmarshal(wrapper.Payload, v); err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	return v.(model.Event), nil
}
