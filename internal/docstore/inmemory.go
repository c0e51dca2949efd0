package docstore

import (
	"context"
	"sync"

	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/sirupsen/logrus"
)

type memoryKey struct {
	partition model.ID
	id        model.ID
}

// InMemory is a Store backed by process memory, used in tests and when no
// database is configured.
type InMemory struct {
	mux        sync.Mutex
	aggregates map[memoryKey]*AggregateDocument
	events     map[memoryKey][]*EventDocument

	logger logrus.FieldLogger
}

func NewInMemory(logger logrus.FieldLogger) *InMemory {
	return &InMemory{
		aggregates: map[memoryKey]*AggregateDocument{},
		events:     map[memoryKey][]*EventDocument{},
		logger:     logger.WithField("component", "in-memory"),
	}
}

// Get implements the Store interface.
func (m *InMemory) Get(ctx context.Context, partition model.ID, id model.ID) (*AggregateDocument, error) {
	const op errors.Op = "docstore/InMemory.Get"

	m.mux.Lock()
	defer m.mux.Unlock()

	doc, ok := m.aggregates[memoryKey{partition, id}]
	if !ok {
		return nil, errors.E(op, id, errors.NotFound)
	}

	clone := *doc
	return &clone, nil
}

// BatchUpdate implements the Store interface.
func (m *InMemory) BatchUpdate(ctx context.Context, aggregate *AggregateDocument, events []*EventDocument) error {
	const op errors.Op = "docstore/InMemory.BatchUpdate"
	m.logger.Debugf("save aggregate %s at version %d", aggregate.ID, aggregate.Version)

	m.mux.Lock()
	defer m.mux.Unlock()

	key := memoryKey{aggregate.Partition, aggregate.ID}

	var current model.Version
	if doc, ok := m.aggregates[key]; ok {
		current = doc.Version
	}

	if expected := aggregate.Version - model.Version(len(events)); current != expected {
		return errors.E(op, aggregate.ID, errors.Conflict,
			errors.Errorf("stored version %d, expected %d", current, expected))
	}

	clone := *aggregate
	m.aggregates[key] = &clone
	m.events[key] = append(m.events[key], events...)

	return nil
}

// History returns the stored events of one aggregate in save order.
// Intended for tests.
func (m *InMemory) History(partition model.ID, id model.ID) []*EventDocument {
	m.mux.Lock()
	defer m.mux.Unlock()

	return append([]*EventDocument(nil), m.events[memoryKey{partition, id}]...)
}
