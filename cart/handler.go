package cart

import (
	"context"
)

func NewSetCartToCacheHandler(c Cart, svc *Service) func() error {
	return func() error {
		key := NewCacheKey(svc.cachePrefix, c.CustomerID, c.ID)
		if err := svc.cache.Set(context.Background(), key, c, DefaultExpiration); err != nil {
			return err
		}

		return nil
	}
}
