package delivery

import (
	"context"
)

func NewSetDeliveryToCacheHandler(d Delivery, svc *Service) func() error {
	return func() error {
		key := NewCacheKey(svc.cachePrefix, d.OrderID, d.ID)
		if err := svc.cache.Set(context.Background(), key, d, DefaultExpiration); err != nil {
			return err
		}

		return nil
	}
}
