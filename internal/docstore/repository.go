package docstore

import (
	"context"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/sirupsen/logrus"
)

// Observer is notified of every event committed through a Repository.
type Observer func(event model.Event)

// Repository provides the primary abstraction for loading and persisting
// one aggregate type.
type Repository[A engine.Aggregate] struct {
	kind       string
	store      Store
	serializer *Serializer
	observers  []Observer
	logger     logrus.FieldLogger
}

// NewRepository returns a Repository for aggregates persisted under the
// given document kind.
func NewRepository[A engine.Aggregate](kind string, store Store, serializer *Serializer, logger logrus.FieldLogger, observers ...Observer) *Repository[A] {
	return &Repository[A]{
		kind:       kind,
		store:      store,
		serializer: serializer,
		observers:  observers,
		logger:     logger.WithField("component", "repository").WithField("kind", kind),
	}
}

// Load retrieves the latest snapshot of the aggregate from the store.
func (r *Repository[A]) Load(ctx context.Context, partition model.ID, id model.ID) (A, error) {
	const op errors.Op = "docstore/Repository.Load"

	var agg A
	doc, err := r.store.Get(ctx, partition, id)
	if err != nil {
		return agg, err
	}

	if err := Decode(doc.Data, &agg); err != nil {
		return agg, errors.E(op, id, errors.Internal, err)
	}

	r.logger.Debugf("loaded %s at version %d", id, doc.Version)

	return agg, nil
}

// Commit persists the handled command's outcome, snapshot and events, as
// one atomic write. A Conflict error means another writer advanced the
// aggregate first; callers retry the whole load-decide-persist cycle.
func (r *Repository[A]) Commit(ctx context.Context, partition model.ID, result engine.Result[A]) error {
	const op errors.Op = "docstore/Repository.Commit"

	if len(result.Events) == 0 {
		return nil
	}

	agg := result.Aggregate
	meta := agg.AggregateMeta()

	data, err := Encode(agg)
	if err != nil {
		return errors.E(op, agg.AggregateID(), errors.Internal, err)
	}

	doc := &AggregateDocument{
		ID:        agg.AggregateID(),
		Partition: partition,
		Kind:      r.kind,
		StreamID:  meta.StreamID,
		Version:   meta.Version,
		Timestamp: meta.Timestamp,
		Data:      data,
	}

	docs := make([]*EventDocument, 0, len(result.Events))
	for _, event := range result.Events {
		eventDoc, err := r.serializer.MarshalEvent(partition, meta.StreamID, event)
		if err != nil {
			return err
		}
		docs = append(docs, eventDoc)
	}

	if err := r.store.BatchUpdate(ctx, doc, docs); err != nil {
		return err
	}

	for _, event := range result.Events {
		for _, observer := range r.observers {
			observer(event)
		}
	}

	r.logger.Debugf("committed %d event(s) for %s, now at version %d",
		len(result.Events), agg.AggregateID(), meta.Version)

	return nil
}
