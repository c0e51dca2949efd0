package docstore

import (
	"testing"
	"time"

	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteAdded struct {
	model.EventModel
	Text string
}

func TestEncodeDecode(t *testing.T) {
	type payload struct {
		Name  string
		Count int
	}

	data, err := Encode(payload{Name: "foo", Count: 3})
	require.NoError(t, err)

	var decoded payload
	require.NoError(t, Decode(data, &decoded))
	assert.Equal(t, payload{Name: "foo", Count: 3}, decoded)
}

func TestDecode_Garbage(t *testing.T) {
	var v struct{}
	assert.Error(t, Decode([]byte("not snappy"), &v))
}

func TestSerializer_Roundtrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := noteAdded{
		EventModel: model.EventModel{
			ID:            "event-1",
			CorrelationID: "corr-1",
			CausationID:   "cmd-1",
			Version:       4,
			At:            at,
		},
		Text: "hello",
	}

	serializer := NewSerializer(noteAdded{})

	doc, err := serializer.MarshalEvent("partition-1", "stream-1", event)
	require.NoError(t, err)
	assert.Equal(t, model.ID("event-1"), doc.ID)
	assert.Equal(t, model.ID("partition-1"), doc.Partition)
	assert.Equal(t, model.StreamID("stream-1"), doc.StreamID)
	assert.Equal(t, model.Version(4), doc.Version)
	assert.Equal(t, at, doc.Timestamp)

	v, err := serializer.UnmarshalEvent(doc)
	require.NoError(t, err)

	found, ok := v.(*noteAdded)
	require.True(t, ok)
	assert.Equal(t, &event, found)
}

func TestSerializer_UnboundKind(t *testing.T) {
	event := noteAdded{EventModel: model.EventModel{ID: "event-1", Version: 1}}

	bound := NewSerializer(noteAdded{})
	doc, err := bound.MarshalEvent("partition-1", "stream-1", event)
	require.NoError(t, err)

	empty := NewSerializer()
	_, err = empty.UnmarshalEvent(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Internal, err))
}
