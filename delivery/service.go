package delivery

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

// Kind is the document kind deliveries are persisted under.
const Kind = "delivery"

// DefaultExpiration is set to never expire.
var DefaultExpiration = time.Duration(0)

var MaxWorkerSize = runtime.NumCPU()
var MaxQueueSize = MaxWorkerSize * 4

const MaxConflictRetries = 3

func NewCacheKey(prefix string, orderID model.OrderID, id model.DeliveryID) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s:%s", Kind, orderID, id)
	}

	return fmt.Sprintf("%s:%s:%s:%s", prefix, Kind, orderID, id)
}

func NewSerializer() *docstore.Serializer {
	events := []model.Event{
		DeliveryCreated{},
		DeliveryCompleted{},
	}

	return docstore.NewSerializer(events...)
}

type Service struct {
	cache         cache.Service
	cachePrefix   string
	deliveries    *docstore.Repository[Delivery]
	handler       *engine.Handler[Delivery, Command]
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
		deliveries:    docstore.NewRepository[Delivery](Kind, cfg.Store, NewSerializer(), cfg.Logger, cfg.Observers...),
		handler:       NewHandler(),
		jobDispatcher: dispatcher,
		jobQueue:      jobQueue,
		logger:        cfg.Logger.WithField("component", "delivery-service"),
	}
}

// GetDelivery returns the delivery snapshot, from the cache when possible.
func (s *Service) GetDelivery(ctx context.Context, orderID model.OrderID, deliveryID model.DeliveryID) (Delivery, error) {
	const op errors.Op = "delivery/Service.GetDelivery"
	s.logger.Infof("%s: order=%s, delivery=%s", op, orderID, deliveryID)

	if deliveryID == "" {
		return Delivery{}, errors.E(op, errors.Invalid, "delivery ID is required")
	}

	if orderID == "" {
		return Delivery{}, errors.E(op, errors.Invalid, "order ID is required")
	}

	key := NewCacheKey(s.cachePrefix, orderID, deliveryID)

	var cached Delivery
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(errors.NotFound, err) {
		return Delivery{}, err
	}

	loaded, err := s.deliveries.Load(ctx, model.ID(orderID), deliveryID.ID())
	if err != nil {
		return Delivery{}, err
	}

	s.enqueueCacheSet(loaded)

	return loaded, nil
}

// CreateDelivery schedules a new delivery for an order.
func (s *Service) CreateDelivery(ctx context.Context, cmd CreateDelivery) (Delivery, error) {
	const op errors.Op = "delivery/Service.CreateDelivery"
	s.logger.Infof("%s: order=%s", op, cmd.OrderID)

	if cmd.OrderID == "" {
		return Delivery{}, errors.E(op, errors.Invalid, "order ID is required")
	}

	if cmd.Address == "" {
		return Delivery{}, errors.E(op, errors.Invalid, "address is required")
	}

	result, errs := s.handler.HandleNew(cmd)
	if errs != nil {
		return Delivery{}, errs
	}

	if err := s.deliveries.Commit(ctx, model.ID(cmd.OrderID), result); err != nil {
		return Delivery{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

// CompleteDelivery marks an existing delivery as delivered.
func (s *Service) CompleteDelivery(ctx context.Context, orderID model.OrderID, deliveryID model.DeliveryID, cmd CompleteDelivery) (Delivery, error) {
	const op errors.Op = "delivery/Service.CompleteDelivery"
	s.logger.Infof("%s: order=%s, delivery=%s", op, orderID, deliveryID)

	return s.mutate(ctx, orderID, deliveryID, cmd)
}

func (s *Service) mutate(ctx context.Context, orderID model.OrderID, deliveryID model.DeliveryID, cmd Command) (Delivery, error) {
	partition := model.ID(orderID)

	var result engine.Result[Delivery]
	try := func() error {
		loaded, err := s.deliveries.Load(ctx, partition, deliveryID.ID())
		if err != nil {
			return backoff.Permanent(err)
		}

		res, errs := s.handler.HandleExisting(cmd, loaded)
		if errs != nil {
			return backoff.Permanent(error(errs))
		}

		if err := s.deliveries.Commit(ctx, partition, res); err != nil {
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
		return Delivery{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

func (s *Service) enqueueCacheSet(d Delivery) {
	key := NewCacheKey(s.cachePrefix, d.OrderID, d.ID)
	s.jobQueue <- worker.NewJob(fmt.Sprintf("set-delivery-cache-%s", key), NewSetDeliveryToCacheHandler(d, s))
}
