// Package docstore persists aggregate snapshots and the events that
// produced them to a partitioned document store. A save is atomic and
// guarded by an optimistic version compare-and-swap, so two writers racing
// on the same stale snapshot cannot both succeed.
package docstore

import (
	"context"
	"time"

	"github.com/commercestore/commercestore/internal/model"
)

// AggregateDocument is the persisted shape of an aggregate snapshot.
type AggregateDocument struct {
	ID        model.ID
	Partition model.ID
	Kind      string
	StreamID  model.StreamID
	Version   model.Version
	Timestamp time.Time

	// Data contains the snapshot in serialized form.
	Data []byte
}

// EventDocument is the persisted shape of one event.
type EventDocument struct {
	ID        model.ID
	Partition model.ID
	StreamID  model.StreamID
	Version   model.Version
	Timestamp time.Time

	// Data contains the event in serialized form.
	Data []byte
}

// Store provides an abstraction for the document database.
type Store interface {
	// Get returns the latest snapshot document of the aggregate, or a
	// NotFound error when the aggregate has never been persisted.
	Get(ctx context.Context, partition model.ID, id model.ID) (*AggregateDocument, error)

	// BatchUpdate persists the snapshot and its new events as a single
	// atomic write. The write succeeds only if the currently stored
	// version equals aggregate.Version minus len(events); otherwise a
	// Conflict error is returned and nothing is written.
	BatchUpdate(ctx context.Context, aggregate *AggregateDocument, events []*EventDocument) error
}
