package order

import (
	"context"
)

func NewSetOrderToCacheHandler(o Order, svc *Service) func() error {
	return func() error {
		key := NewCacheKey(svc.cachePrefix, o.CustomerID, o.ID)
		if err := svc.cache.Set(context.Background(), key, o, DefaultExpiration); err != nil {
			return err
		}

		return nil
	}
}
