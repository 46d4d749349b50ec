package flavorfake

import (
	"testing"
)

func TestFakeCountsStoreOps(t *testing.T) {
	fake := New()
	cache := fake.Cache()

	if _, err := cache.Lookup("vanilla"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	// Second lookup is served from the intern map; the store stays quiet.
	if _, err := cache.Lookup("vanilla"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	fake.AssertCalled(t, OpGet, "vanilla", 1)
	fake.AssertCalled(t, OpAdd, "vanilla", 1)
	fake.AssertNotCalled(t, OpGet, "mint")

	if _, err := cache.Len(); err != nil {
		t.Fatalf("len failed: %v", err)
	}
	fake.AssertTotal(t, OpCount, 1)

	if _, err := cache.Names(); err != nil {
		t.Fatalf("names failed: %v", err)
	}
	fake.AssertTotal(t, OpNames, 1)
}

func TestFakeTotalsAcrossNames(t *testing.T) {
	fake := New()
	cache := fake.Cache()

	for _, name := range []string{"mint", "mocha", "peach"} {
		if _, err := cache.Lookup(name); err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
	}

	fake.AssertTotal(t, OpGet, 3)
	fake.AssertTotal(t, OpAdd, 3)
	if got := fake.Count(OpGet, "mocha"); got != 1 {
		t.Fatalf("expected one get for mocha, got %d", got)
	}
}

func TestFakeReset(t *testing.T) {
	fake := New()
	if _, err := fake.Cache().Lookup("vanilla"); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	fake.Reset()
	fake.AssertNotCalled(t, OpGet, "vanilla")
	fake.AssertTotal(t, OpAdd, 0)

	// The cache itself keeps its state; only counters reset.
	n, err := fake.Cache().Len()
	if err != nil || n != 1 {
		t.Fatalf("expected registry retained after reset: n=%d err=%v", n, err)
	}
	fake.AssertTotal(t, OpCount, 1)
}
