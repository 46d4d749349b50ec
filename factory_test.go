package flavors

import (
	"context"
	"testing"
)

func TestNewStoreDefaultsToMemory(t *testing.T) {
	store := NewStore(context.Background(), StoreConfig{})
	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory default, got %s", store.Driver())
	}
}

func TestNewStoreSelectsDriver(t *testing.T) {
	ctx := context.Background()

	if d := NewStore(ctx, StoreConfig{Driver: DriverNull}).Driver(); d != DriverNull {
		t.Fatalf("expected null driver, got %s", d)
	}
	if d := NewStore(ctx, StoreConfig{Driver: DriverRedis, RedisClient: newStubRedisClient()}).Driver(); d != DriverRedis {
		t.Fatalf("expected redis driver, got %s", d)
	}
}

func TestNewStoreWithOptions(t *testing.T) {
	ctx := context.Background()
	client := newStubRedisClient()

	store := NewStoreWith(ctx, DriverRedis,
		WithRedisClient(client),
		WithPrefix("parlor"),
	)
	if store.Driver() != DriverRedis {
		t.Fatalf("expected redis driver, got %s", store.Driver())
	}

	if _, err := store.Add(ctx, "vanilla", []byte("record")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, exists := client.store["parlor:vanilla"]; !exists {
		t.Fatalf("expected prefix option applied, have %v", client.store)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	ctx := context.Background()

	if d := NewMemoryStore(ctx).Driver(); d != DriverMemory {
		t.Fatalf("expected memory driver, got %s", d)
	}
	if d := NewNullStore(ctx).Driver(); d != DriverNull {
		t.Fatalf("expected null driver, got %s", d)
	}
	if d := NewRedisStore(ctx, newStubRedisClient()).Driver(); d != DriverRedis {
		t.Fatalf("expected redis driver, got %s", d)
	}
}

func TestStoreConfigDefaults(t *testing.T) {
	cfg := StoreConfig{}.withDefaults()
	if cfg.Driver != DriverMemory {
		t.Fatalf("expected memory default driver, got %s", cfg.Driver)
	}
	if cfg.Prefix != defaultRegistryPrefix {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}

	cfg = StoreConfig{Driver: DriverNull, Prefix: "custom"}.withDefaults()
	if cfg.Driver != DriverNull || cfg.Prefix != "custom" {
		t.Fatalf("expected explicit values preserved, got %+v", cfg)
	}
}
