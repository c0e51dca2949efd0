package api

import (
	"net/http"

	"github.com/commercestore/commercestore/cart"
	"github.com/commercestore/commercestore/delivery"
	"github.com/commercestore/commercestore/internal/cache"
	"github.com/commercestore/commercestore/internal/cache/rediscache"
	"github.com/commercestore/commercestore/internal/docstore"
	"github.com/commercestore/commercestore/internal/docstore/pgstore"
	"github.com/commercestore/commercestore/internal/server"
	"github.com/commercestore/commercestore/order"
	"github.com/commercestore/commercestore/product"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheKeyPrefix is used to define caching keys.
const CacheKeyPrefix = "commercestore"

// DefaultCacheSize bounds the in-memory cache used when no Redis
// address is configured.
const DefaultCacheSize = 4096

type Service interface {
	Run() error
	Shutdown()
}

type service struct {
	cache      cache.Service
	carts      *cart.Service
	cfg        Config
	deliveries *delivery.Service
	logger     logrus.FieldLogger
	orders     *order.Service
	products   *product.Service

	run func() error
}

func New(cfg Config) *service {
	if cfg.Server.LoggerLevel != "debug" {
		gin.SetMode("release")
	}

	// Logger
	logger := server.NewLogger(cfg.Server.LoggerLevel, cfg.Server.LoggerFormat)

	// Document Store
	var store docstore.Store
	if cfg.Database == nil {
		store = docstore.NewInMemory(logger)
	} else {
		store = pgstore.New(cfg.Database, logger)
	}

	// Snapshot Cache
	var snapshots cache.Service
	if cfg.Cache == nil {
		snapshots = cache.NewInMemory(DefaultCacheSize)
	} else {
		snapshots = rediscache.New(redis.NewClient(cfg.Cache))
	}

	cartSvc := cart.New(&cart.Config{
		Cache:          snapshots,
		CacheKeyPrefix: CacheKeyPrefix,
		Store:          store,
		Logger:         logger,
	})

	orderSvc := order.New(&order.Config{
		Cache:          snapshots,
		CacheKeyPrefix: CacheKeyPrefix,
		Store:          store,
		Logger:         logger,
	})

	productSvc := product.New(&product.Config{
		Cache:          snapshots,
		CacheKeyPrefix: CacheKeyPrefix,
		Store:          store,
		Logger:         logger,
	})

	deliverySvc := delivery.New(&delivery.Config{
		Cache:          snapshots,
		CacheKeyPrefix: CacheKeyPrefix,
		Store:          store,
		Logger:         logger,
	})

	// Main Service
	svc := &service{
		cache:      snapshots,
		carts:      cartSvc,
		cfg:        cfg,
		deliveries: deliverySvc,
		logger:     logger.WithField("component", "API"),
		orders:     orderSvc,
		products:   productSvc,
	}

	srv := server.New(cfg.Server, logger)
	srv.HTTPServer = server.NewHTTPServer(cfg.Server, svc.HTTPHandler())
	srv.Shutdown = svc.Shutdown
	svc.run = srv.Run

	return svc
}

func (s *service) Run() error {
	s.logger.Info("Commercestore: Starting API")

	if err := s.cache.Run(); err != nil {
		s.logger.Errorf("unable to connect to cache: %v", err)
	} else if s.cfg.Cache != nil {
		s.logger.Infof("Connected to Redis at %v", s.cfg.Cache.Addr)
	}

	return s.run()
}

func (s *service) Shutdown() {
	s.logger.Info("Commercestore: Stopping API")

	if err := s.cache.Shutdown(); err != nil {
		s.logger.Error(err)
	}
}

func (s *service) RootHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Commercestore: Event-Sourced Commerce API",
	})
}
