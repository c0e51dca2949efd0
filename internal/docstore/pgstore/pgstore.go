// Package pgstore implements the document store on Postgres. The snapshot
// upsert and event inserts of one command run in a single transaction,
// with the version compare-and-swap taken under a row lock.
package pgstore

import (
	"context"
	"strings"

	"github.com/commercestore/commercestore/internal/docstore"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/go-pg/pg/v10"
	"github.com/sirupsen/logrus"
)

var (
	selectAggregateSQL = strings.TrimSpace(`
		SELECT id, partition, kind, stream_id, version, timestamp, data FROM aggregates
		WHERE partition = ? AND id = ?
	`)
	selectVersionForUpdateSQL = "SELECT version FROM aggregates WHERE partition = ? AND id = ? FOR UPDATE"
	upsertAggregateSQL        = strings.TrimSpace(`
		INSERT INTO aggregates (id, partition, kind, stream_id, version, timestamp, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (partition, id) DO UPDATE SET version = EXCLUDED.version,
			timestamp = EXCLUDED.timestamp, data = EXCLUDED.data
	`)
	insertEventSQL = strings.TrimSpace(`
		INSERT INTO events (id, partition, stream_id, version, timestamp, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
)

type PgStore struct {
	db     *pg.DB
	logger logrus.FieldLogger
}

// New returns a Postgres backed store.
func New(options *pg.Options, logger logrus.FieldLogger) *PgStore {
	logger = logger.WithField("component", "pgstore")
	logger.Infof("Postgres store: connection=postgresql://%s/%s", options.Addr, options.Database)

	db := pg.Connect(options)
	db.AddQueryHook(NewDebugHook(logger))

	return &PgStore{
		db:     db,
		logger: logger,
	}
}

// Get implements the docstore.Store interface.
func (p *PgStore) Get(ctx context.Context, partition model.ID, id model.ID) (*docstore.AggregateDocument, error) {
	const op errors.Op = "pgstore/PgStore.Get"

	doc := &docstore.AggregateDocument{}
	_, err := p.db.WithContext(ctx).QueryOne(
		pg.Scan(&doc.ID, &doc.Partition, &doc.Kind, &doc.StreamID, &doc.Version, &doc.Timestamp, &doc.Data),
		selectAggregateSQL, partition, id)
	if err == pg.ErrNoRows {
		return nil, errors.E(op, id, errors.NotFound)
	}
	if err != nil {
		return nil, errors.E(op, id, errors.Internal, err)
	}

	return doc, nil
}

// BatchUpdate implements the docstore.Store interface.
func (p *PgStore) BatchUpdate(ctx context.Context, aggregate *docstore.AggregateDocument, events []*docstore.EventDocument) error {
	const op errors.Op = "pgstore/PgStore.BatchUpdate"

	if len(events) == 0 {
		return nil
	}

	err := p.db.WithContext(ctx).RunInTransaction(ctx, func(tx *pg.Tx) error {
		var current model.Version
		_, err := tx.QueryOne(pg.Scan(&current), selectVersionForUpdateSQL, aggregate.Partition, aggregate.ID)
		if err != nil && err != pg.ErrNoRows {
			return errors.E(op, aggregate.ID, errors.Internal, err)
		}

		if expected := aggregate.Version - model.Version(len(events)); current != expected {
			return errors.E(op, aggregate.ID, errors.Conflict,
				errors.Errorf("stored version %d, expected %d", current, expected))
		}

		if _, err := tx.Exec(upsertAggregateSQL,
			aggregate.ID, aggregate.Partition, aggregate.Kind, aggregate.StreamID,
			aggregate.Version, aggregate.Timestamp, aggregate.Data); err != nil {
			return errors.E(op, aggregate.ID, errors.Internal, err)
		}

		for _, event := range events {
			if _, err := tx.Exec(insertEventSQL,
				event.ID, event.Partition, event.StreamID,
				event.Version, event.Timestamp, event.Data); err != nil {
				return errors.E(op, aggregate.ID, errors.Internal, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	p.logger.Debugf("saved aggregate %s at version %d with %d event(s)",
		aggregate.ID, aggregate.Version, len(events))

	return nil
}
