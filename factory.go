package flavors

import "context"

// NewStore returns a concrete registry store for the requested driver.
// Caller is responsible for providing any driver-specific dependencies.
// SQL, NATS and DynamoDB backends live in driver subpackages and are
// constructed through their own Config types.
// @group Constructors
//
// Example: select driver explicitly
//
//	ctx := context.Background()
//	store := flavors.NewStore(ctx, flavors.StoreConfig{
//		Driver: flavors.DriverMemory,
//	})
//	fmt.Println(store.Driver()) // memory
func NewStore(_ context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	switch cfg.Driver {
	case DriverRedis:
		return newRedisStore(cfg.RedisClient, cfg.Prefix)
	case DriverNull:
		return newNullStore()
	default:
		return newMemoryStore()
	}
}

// NewStoreWith builds a store using a driver and a set of functional options.
// Required data (e.g., Redis client) must be provided via options when needed.
// @group Constructors
//
// Example: redis store (options)
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
//	store := flavors.NewStoreWith(ctx, flavors.DriverRedis,
//		flavors.WithRedisClient(redisClient),
//		flavors.WithPrefix("parlor"),
//	)
//	fmt.Println(store.Driver()) // redis
func NewStoreWith(ctx context.Context, driver Driver, opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewStore(ctx, cfg)
}

// NewMemoryStore is a convenience for an in-process registry store.
// @group Constructors
//
// Example: memory helper
//
//	ctx := context.Background()
//	store := flavors.NewMemoryStore(ctx)
//	fmt.Println(store.Driver()) // memory
func NewMemoryStore(ctx context.Context, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverMemory, opts...)
}

// NewRedisStore is a convenience for a redis-backed registry. Redis client is required.
// @group Constructors
//
// Example: redis helper
//
//	ctx := context.Background()
//	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
//	store := flavors.NewRedisStore(ctx, redisClient, flavors.WithPrefix("parlor"))
//	fmt.Println(store.Driver()) // redis
func NewRedisStore(ctx context.Context, client RedisClient, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverRedis, append([]StoreOption{WithRedisClient(client)}, opts...)...)
}

// NewNullStore is a convenience for a registry that records nothing.
// @group Constructors
func NewNullStore(ctx context.Context, opts ...StoreOption) Store {
	return NewStoreWith(ctx, DriverNull, opts...)
}
