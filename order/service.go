package order

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/commercestore/commercestore/internal/cache"
	"github.com/commercestore/commercestore/internal/docstore"
	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/commercestore/commercestore/internal/worker"
	"github.com/sirupsen/logrus"
)

// Kind is the document kind orders are persisted under.
const Kind = "order"

// DefaultExpiration is set to never expire.
var DefaultExpiration = time.Duration(0)

var MaxWorkerSize = runtime.NumCPU()
var MaxQueueSize = MaxWorkerSize * 4

const MaxConflictRetries = 3

func NewCacheKey(prefix string, customerID model.CustomerID, id model.OrderID) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s:%s", Kind, customerID, id)
	}

	return fmt.Sprintf("%s:%s:%s:%s", prefix, Kind, customerID, id)
}

func NewSerializer() *docstore.Serializer {
	events := []model.Event{
		OrderCreated{},
		OrderCompleted{},
		OrderCancelled{},
	}

	return docstore.NewSerializer(events...)
}

type Service struct {
	cache         cache.Service
	cachePrefix   string
	orders        *docstore.Repository[Order]
	handler       *engine.Handler[Order, Command]
	jobDispatcher *worker.Dispatcher
	jobQueue      chan worker.Job
	logger        logrus.FieldLogger
}

type Config struct {
	Cache          cache.Service
	CacheKeyPrefix string
	Logger         logrus.FieldLogger
	Observers      []docstore.Observer
	Store          docstore.Store
}

func New(cfg *Config) *Service {
	jobQueue := make(chan worker.Job, MaxQueueSize)
	dispatcher := worker.NewDispatcher(jobQueue, MaxWorkerSize, cfg.Logger)
	dispatcher.Run()

	return &Service{
		cache:         cfg.Cache,
		cachePrefix:   cfg.CacheKeyPrefix,
		orders:        docstore.NewRepository[Order](Kind, cfg.Store, NewSerializer(), cfg.Logger, cfg.Observers...),
		handler:       NewHandler(),
		jobDispatcher: dispatcher,
		jobQueue:      jobQueue,
		logger:        cfg.Logger.WithField("component", "order-service"),
	}
}

// GetOrder returns the order snapshot, from the cache when possible.
func (s *Service) GetOrder(ctx context.Context, customerID model.CustomerID, orderID model.OrderID) (Order, error) {
	const op errors.Op = "order/Service.GetOrder"
	s.logger.Infof("%s: customer=%s, order=%s", op, customerID, orderID)

	if orderID == "" {
		return Order{}, errors.E(op, errors.Invalid, "order ID is required")
	}

	if customerID == "" {
		return Order{}, errors.E(op, errors.Invalid, "customer ID is required")
	}

	key := NewCacheKey(s.cachePrefix, customerID, orderID)

	var cached Order
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(errors.NotFound, err) {
		return Order{}, err
	}

	loaded, err := s.orders.Load(ctx, model.ID(customerID), orderID.ID())
	if err != nil {
		return Order{}, err
	}

	s.enqueueCacheSet(loaded)

	return loaded, nil
}

// CreateOrder opens a new order.
func (s *Service) CreateOrder(ctx context.Context, cmd CreateOrder) (Order, error) {
	const op errors.Op = "order/Service.CreateOrder"
	s.logger.Infof("%s: customer=%s", op, cmd.CustomerID)

	if cmd.CustomerID == "" {
		return Order{}, errors.E(op, errors.Invalid, "customer ID is required")
	}

	result, errs := s.handler.HandleNew(cmd)
	if errs != nil {
		return Order{}, errs
	}

	if err := s.orders.Commit(ctx, model.ID(cmd.CustomerID), result); err != nil {
		return Order{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

// CompleteOrder marks an existing order fulfilled.
func (s *Service) CompleteOrder(ctx context.Context, customerID model.CustomerID, orderID model.OrderID, cmd CompleteOrder) (Order, error) {
	const op errors.Op = "order/Service.CompleteOrder"
	s.logger.Infof("%s: customer=%s, order=%s", op, customerID, orderID)

	return s.mutate(ctx, customerID, orderID, cmd)
}

// CancelOrder voids an existing order.
func (s *Service) CancelOrder(ctx context.Context, customerID model.CustomerID, orderID model.OrderID, cmd CancelOrder) (Order, error) {
	const op errors.Op = "order/Service.CancelOrder"
	s.logger.Infof("%s: customer=%s, order=%s", op, customerID, orderID)

	return s.mutate(ctx, customerID, orderID, cmd)
}

func (s *Service) mutate(ctx context.Context, customerID model.CustomerID, orderID model.OrderID, cmd Command) (Order, error) {
	partition := model.ID(customerID)

	var result engine.Result[Order]
	try := func() error {
		loaded, err := s.orders.Load(ctx, partition, orderID.ID())
		if err != nil {
			return backoff.Permanent(err)
		}

		res, errs := s.handler.HandleExisting(cmd, loaded)
		if errs != nil {
			return backoff.Permanent(error(errs))
		}

		if err := s.orders.Commit(ctx, partition, res); err != nil {
			if errors.Is(errors.Conflict, err) {
				return err
			}
			return backoff.Permanent(err)
		}

		result = res
		return nil
	}

	strategy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MaxConflictRetries), ctx)
	if err := backoff.Retry(try, strategy); err != nil {
		return Order{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

func (s *Service) enqueueCacheSet(o Order) {
	key := NewCacheKey(s.cachePrefix, o.CustomerID, o.ID)
	s.jobQueue <- worker.NewJob(fmt.Sprintf("set-order-cache-%s", key), NewSetOrderToCacheHandler(o, s))
}
