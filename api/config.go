package api

import (
	"github.com/commercestore/commercestore/internal/server"
	"github.com/go-pg/pg/v10"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Server   server.Config
	Database *pg.Options
	Cache    *redis.Options
}
