package product

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

// Kind is the document kind products are persisted under. A product is
// its own partition.
const Kind = "product"

// DefaultExpiration is set to never expire.
var DefaultExpiration = time.Duration(0)

var MaxWorkerSize = runtime.NumCPU()
var MaxQueueSize = MaxWorkerSize * 4

const MaxConflictRetries = 3

func NewCacheKey(prefix string, id model.ProductID) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s", Kind, id)
	}

	return fmt.Sprintf("%s:%s:%s", prefix, Kind, id)
}

func NewSerializer() *docstore.Serializer {
	events := []model.Event{
		ProductCreated{},
		ProductUpdated{},
	}

	return docstore.NewSerializer(events...)
}

type Service struct {
	cache         cache.Service
	cachePrefix   string
	products      *docstore.Repository[Product]
	handler       *engine.Handler[Product, Command]
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
		products:      docstore.NewRepository[Product](Kind, cfg.Store, NewSerializer(), cfg.Logger, cfg.Observers...),
		handler:       NewHandler(),
		jobDispatcher: dispatcher,
		jobQueue:      jobQueue,
		logger:        cfg.Logger.WithField("component", "product-service"),
	}
}

// GetProduct returns the product snapshot, from the cache when possible.
func (s *Service) GetProduct(ctx context.Context, productID model.ProductID) (Product, error) {
	const op errors.Op = "product/Service.GetProduct"
	s.logger.Infof("%s: product=%s", op, productID)

	if productID == "" {
		return Product{}, errors.E(op, errors.Invalid, "product ID is required")
	}

	key := NewCacheKey(s.cachePrefix, productID)

	var cached Product
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(errors.NotFound, err) {
		return Product{}, err
	}

	loaded, err := s.products.Load(ctx, productID.ID(), productID.ID())
	if err != nil {
		return Product{}, err
	}

	s.enqueueCacheSet(loaded)

	return loaded, nil
}

// CreateProduct registers a new catalogue product.
func (s *Service) CreateProduct(ctx context.Context, cmd CreateProduct) (Product, error) {
	const op errors.Op = "product/Service.CreateProduct"
	s.logger.Infof("%s: name=%s", op, cmd.Name)

	if cmd.Name == "" {
		return Product{}, errors.E(op, errors.Invalid, "name is required")
	}

	result, errs := s.handler.HandleNew(cmd)
	if errs != nil {
		return Product{}, errs
	}

	if err := s.products.Commit(ctx, result.Aggregate.AggregateID(), result); err != nil {
		return Product{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

// UpdateProduct replaces name and price of an existing product.
func (s *Service) UpdateProduct(ctx context.Context, cmd UpdateProduct) (Product, error) {
	const op errors.Op = "product/Service.UpdateProduct"
	s.logger.Infof("%s: product=%s", op, cmd.ProductID)

	partition := cmd.ProductID.ID()

	var result engine.Result[Product]
	try := func() error {
		loaded, err := s.products.Load(ctx, partition, cmd.ProductID.ID())
		if err != nil {
			return backoff.Permanent(err)
		}

		res, errs := s.handler.HandleExisting(cmd, loaded)
		if errs != nil {
			return backoff.Permanent(error(errs))
		}

		if err := s.products.Commit(ctx, partition, res); err != nil {
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
		return Product{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

func (s *Service) enqueueCacheSet(p Product) {
	key := NewCacheKey(s.cachePrefix, p.ID)
	s.jobQueue <- worker.NewJob(fmt.Sprintf("set-product-cache-%s", key), NewSetProductToCacheHandler(p, s))
}
