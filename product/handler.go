package product

import (
	"context"
)

func NewSetProductToCacheHandler(p Product, svc *Service) func() error {
	return func() error {
		key := NewCacheKey(svc.cachePrefix, p.ID)
		if err := svc.cache.Set(context.Background(), key, p, DefaultExpiration); err != nil {
			return err
		}

		return nil
	}
}
