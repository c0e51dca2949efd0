// Package cache provides the set-aside cache for aggregate snapshots.
// Values are stored JSON-encoded; the cache is advisory and a miss always
// falls through to the document store.
package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/commercestore/commercestore/internal/errors"
)

// DefaultExpiration is set to never expire.
const DefaultExpiration = time.Duration(0)

type Service interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, expires time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
	Run() error
	Shutdown() error
}

type item struct {
	key        string
	data       []byte
	expiration *time.Time
}

func (i *item) expired() bool {
	return i.expiration != nil && i.expiration.Before(time.Now())
}

// InMemory is a bounded in-process cache with LRU eviction.
type InMemory struct {
	mux      sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
	maxItems int
}

// NewInMemory returns an in-memory cache holding at most maxItems entries.
// A maxItems of 0 means unbounded.
func NewInMemory(maxItems int) *InMemory {
	return &InMemory{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		maxItems: maxItems,
	}
}

func (c *InMemory) Get(ctx context.Context, key string, value interface{}) error {
	const op errors.Op = "cache/InMemory.Get"

	c.mux.Lock()
	defer c.mux.Unlock()

	el, exists := c.items[key]
	if !exists {
		return errors.E(op, errors.NotFound)
	}

	entry := el.Value.(*item)
	if entry.expired() {
		c.remove(el)
		return errors.E(op, errors.NotFound)
	}

	c.eviction.MoveToFront(el)

	if err := json.Unmarshal(entry.data, value); err != nil {
		return errors.E(op, errors.Internal, err)
	}

	return nil
}

func (c *InMemory) Set(ctx context.Context, key string, value interface{}, expiresIn time.Duration) error {
	const op errors.Op = "cache/InMemory.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return errors.E(op, errors.Internal, err)
	}

	var expiration *time.Time
	if expiresIn > 0 {
		t := time.Now().Add(expiresIn)
		expiration = &t
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	if el, exists := c.items[key]; exists {
		entry := el.Value.(*item)
		entry.data = data
		entry.expiration = expiration
		c.eviction.MoveToFront(el)
		return nil
	}

	c.items[key] = c.eviction.PushFront(&item{key: key, data: data, expiration: expiration})

	if c.maxItems > 0 && c.eviction.Len() > c.maxItems {
		if oldest := c.eviction.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	return nil
}

func (c *InMemory) Delete(ctx context.Context, key string) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if el, exists := c.items[key]; exists {
		c.remove(el)
	}

	return nil
}

func (c *InMemory) Flush(ctx context.Context) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.items = make(map[string]*list.Element)
	c.eviction.Init()

	return nil
}

func (c *InMemory) Run() error {
	return nil
}

func (c *InMemory) Shutdown() error {
	return nil
}

// remove expects c.mux to be held.
func (c *InMemory) remove(el *list.Element) {
	c.eviction.Remove(el)
	delete(c.items, el.Value.(*item).key)
}
