package cart

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

// Kind is the document kind carts are persisted under.
const Kind = "cart"

// DefaultExpiration is set to never expire.
var DefaultExpiration = time.Duration(0)

var MaxWorkerSize = runtime.NumCPU()
var MaxQueueSize = MaxWorkerSize * 4

// MaxConflictRetries bounds how often a load-decide-persist cycle is
// replayed after an optimistic-concurrency conflict.
const MaxConflictRetries = 3

func NewCacheKey(prefix string, customerID model.CustomerID, id model.CartID) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s:%s", Kind, customerID, id)
	}

	return fmt.Sprintf("%s:%s:%s:%s", prefix, Kind, customerID, id)
}

func NewSerializer() *docstore.Serializer {
	events := []model.Event{
		CartItemAdded{},
		CartItemRemoved{},
		CartItemUpdated{},
	}

	return docstore.NewSerializer(events...)
}

type Service struct {
	cache         cache.Service
	cachePrefix   string
	carts         *docstore.Repository[Cart]
	handler       *engine.Handler[Cart, Command]
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
		carts:         docstore.NewRepository[Cart](Kind, cfg.Store, NewSerializer(), cfg.Logger, cfg.Observers...),
		handler:       NewHandler(),
		jobDispatcher: dispatcher,
		jobQueue:      jobQueue,
		logger:        cfg.Logger.WithField("component", "cart-service"),
	}
}

// GetCart returns the cart snapshot, from the cache when possible.
func (s *Service) GetCart(ctx context.Context, customerID model.CustomerID, cartID model.CartID) (Cart, error) {
	const op errors.Op = "cart/Service.GetCart"
	s.logger.Infof("%s: customer=%s, cart=%s", op, customerID, cartID)

	if cartID == "" {
		return Cart{}, errors.E(op, errors.Invalid, "cart ID is required")
	}

	if customerID == "" {
		return Cart{}, errors.E(op, errors.Invalid, "customer ID is required")
	}

	key := NewCacheKey(s.cachePrefix, customerID, cartID)

	var cached Cart
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(errors.NotFound, err) {
		return Cart{}, err
	}

	// Cache miss
	loaded, err := s.carts.Load(ctx, model.ID(customerID), cartID.ID())
	if err != nil {
		return Cart{}, err
	}

	s.enqueueCacheSet(loaded)

	return loaded, nil
}

// AddItem handles the create-or-append command. A nil CartID creates a new
// cart; a concrete one appends to the existing cart.
func (s *Service) AddItem(ctx context.Context, cmd AddItemToCart) (Cart, error) {
	const op errors.Op = "cart/Service.AddItem"
	s.logger.Infof("%s: customer=%s, sku=%s", op, cmd.CustomerID, cmd.SKU)

	if cmd.CustomerID == "" {
		return Cart{}, errors.E(op, errors.Invalid, "customer ID is required")
	}

	if cmd.CartID == nil {
		return s.create(ctx, cmd.CustomerID, cmd)
	}

	return s.mutate(ctx, cmd.CustomerID, *cmd.CartID, cmd)
}

// RemoveItem removes a SKU from an existing cart.
func (s *Service) RemoveItem(ctx context.Context, customerID model.CustomerID, cmd RemoveItemFromCart) (Cart, error) {
	const op errors.Op = "cart/Service.RemoveItem"
	s.logger.Infof("%s: customer=%s, cart=%s, sku=%s", op, customerID, cmd.CartID, cmd.SKU)

	return s.mutate(ctx, customerID, cmd.CartID, cmd)
}

// UpdateItem replaces the quantity of a SKU in an existing cart.
func (s *Service) UpdateItem(ctx context.Context, customerID model.CustomerID, cmd UpdateCartItem) (Cart, error) {
	const op errors.Op = "cart/Service.UpdateItem"
	s.logger.Infof("%s: customer=%s, cart=%s, sku=%s", op, customerID, cmd.CartID, cmd.SKU)

	return s.mutate(ctx, customerID, cmd.CartID, cmd)
}

func (s *Service) create(ctx context.Context, customerID model.CustomerID, cmd Command) (Cart, error) {
	result, errs := s.handler.HandleNew(cmd)
	if errs != nil {
		return Cart{}, errs
	}

	if err := s.carts.Commit(ctx, model.ID(customerID), result); err != nil {
		return Cart{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

// mutate replays the whole load-decide-persist cycle on an
// optimistic-concurrency conflict.
func (s *Service) mutate(ctx context.Context, customerID model.CustomerID, cartID model.CartID, cmd Command) (Cart, error) {
	partition := model.ID(customerID)

	var result engine.Result[Cart]
	try := func() error {
		loaded, err := s.carts.Load(ctx, partition, cartID.ID())
		if err != nil {
			return backoff.Permanent(err)
		}

		res, errs := s.handler.HandleExisting(cmd, loaded)
		if errs != nil {
			return backoff.Permanent(error(errs))
		}

		if err := s.carts.Commit(ctx, partition, res); err != nil {
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
		return Cart{}, err
	}

	s.enqueueCacheSet(result.Aggregate)

	return result.Aggregate, nil
}

func (s *Service) enqueueCacheSet(c Cart) {
	key := NewCacheKey(s.cachePrefix, c.CustomerID, c.ID)
	s.jobQueue <- worker.NewJob(fmt.Sprintf("set-cart-cache-%s", key), NewSetCartToCacheHandler(c, s))
}
