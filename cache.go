package flavors

import (
	"context"
	"sync"
	"time"
)

// Cache is a flyweight factory for Flavor values. Lookup returns the
// interned Flavor for a name, creating and recording it on first
// request. The registry only grows; nothing is ever evicted.
//
// The in-process intern map guarantees a single logical instance per
// name; the backing Store records the distinct-name set so the
// registry can be shared across processes or persisted.
type Cache struct {
	store    Store
	observer Observer

	mu       sync.RWMutex
	interned map[string]Flavor
}

// NewCache creates a flyweight cache bound to a concrete store.
// @group Cache
//
// Example: cache from store
//
//	ctx := context.Background()
//	s := flavors.NewMemoryStore(ctx)
//	c := flavors.NewCache(s)
//	fmt.Println(c.Driver()) // memory
func NewCache(store Store) *Cache {
	return &Cache{
		store:    store,
		interned: make(map[string]Flavor),
	}
}

// WithObserver attaches an observer to receive operation events.
func (c *Cache) WithObserver(o Observer) *Cache {
	c.observer = o
	return c
}

// Store returns the underlying store implementation.
// @group Cache
func (c *Cache) Store() Store {
	return c.store
}

// Driver reports the underlying store driver.
// @group Cache
func (c *Cache) Driver() Driver {
	return c.store.Driver()
}

// Lookup returns the Flavor for name, creating it on first request.
// Repeated lookups with the same name return an equal Flavor.
// @group Cache
//
// Example: lookup interns on first request
//
//	ctx := context.Background()
//	c := flavors.NewCache(flavors.NewMemoryStore(ctx))
//	first, _ := c.Lookup("vanilla")
//	second, _ := c.Lookup("vanilla")
//	fmt.Println(first.Equal(second)) // true
func (c *Cache) Lookup(name string) (Flavor, error) {
	return c.LookupCtx(context.Background(), name)
}

func (c *Cache) LookupCtx(ctx context.Context, name string) (Flavor, error) {
	start := time.Now()

	c.mu.RLock()
	flavor, ok := c.interned[name]
	c.mu.RUnlock()
	if ok {
		c.observe(ctx, "lookup", name, true, nil, start)
		return flavor, nil
	}

	body, found, err := c.store.Get(ctx, name)
	if err != nil {
		c.observe(ctx, "lookup", name, false, err, start)
		return Flavor{}, err
	}
	if found {
		flavor, err = decodeFlavor(name, body)
		if err != nil {
			c.observe(ctx, "lookup", name, false, err, start)
			return Flavor{}, err
		}
		c.intern(flavor)
		c.observe(ctx, "lookup", name, true, nil, start)
		return flavor, nil
	}

	flavor = Flavor{name: name}
	body, err = encodeFlavor(flavor)
	if err != nil {
		c.observe(ctx, "lookup", name, false, err, start)
		return Flavor{}, err
	}
	// created=false means another caller won the insert; the value is
	// interchangeable either way.
	if _, err := c.store.Add(ctx, name, body); err != nil {
		c.observe(ctx, "lookup", name, false, err, start)
		return Flavor{}, err
	}
	c.intern(flavor)
	c.observe(ctx, "lookup", name, false, nil, start)
	return flavor, nil
}

// Has reports whether name is already registered, without creating it.
// @group Cache
func (c *Cache) Has(name string) (bool, error) {
	return c.HasCtx(context.Background(), name)
}

func (c *Cache) HasCtx(ctx context.Context, name string) (bool, error) {
	start := time.Now()

	c.mu.RLock()
	_, ok := c.interned[name]
	c.mu.RUnlock()
	if ok {
		c.observe(ctx, "has", name, true, nil, start)
		return true, nil
	}

	_, found, err := c.store.Get(ctx, name)
	c.observe(ctx, "has", name, found, err, start)
	return found, err
}

// Len returns the number of distinct names ever registered.
// @group Cache
//
// Example: registry only grows
//
//	ctx := context.Background()
//	c := flavors.NewCache(flavors.NewMemoryStore(ctx))
//	_, _ = c.Lookup("mint")
//	_, _ = c.Lookup("mint")
//	n, _ := c.Len()
//	fmt.Println(n) // 1
func (c *Cache) Len() (int64, error) {
	return c.LenCtx(context.Background())
}

func (c *Cache) LenCtx(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := c.store.Count(ctx)
	c.observe(ctx, "len", "", err == nil, err, start)
	return n, err
}

// Names enumerates the registered names. Order is unspecified.
// @group Cache
func (c *Cache) Names() ([]string, error) {
	return c.NamesCtx(context.Background())
}

func (c *Cache) NamesCtx(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := c.store.Names(ctx)
	c.observe(ctx, "names", "", err == nil, err, start)
	return names, err
}

func (c *Cache) intern(flavor Flavor) {
	c.mu.Lock()
	if _, ok := c.interned[flavor.name]; !ok {
		c.interned[flavor.name] = flavor
	}
	c.mu.Unlock()
}

func (c *Cache) observe(ctx context.Context, op, name string, hit bool, err error, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.OnFlavorOp(ctx, op, name, hit, err, time.Since(start), c.Driver())
}
