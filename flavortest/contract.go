package flavortest

import (
	"context"
	"strings"
	"testing"

	"github.com/goforj/flavors/flavorcore"
)

// Options configures shared store contract checks.
type Options struct {
	// CaseName is used to namespace names. Defaults to t.Name().
	CaseName string
	// NullSemantics enables relaxed expectations for the null store.
	NullSemantics bool
	// SkipCloneCheck disables the "get returns a cloned value" assertion.
	SkipCloneCheck bool
	// SkipEnumeration disables Count/Names assertions for backends where
	// enumeration is expensive or unavailable.
	SkipEnumeration bool
}

// Store is the minimal contract required by RunStoreContract.
type Store = flavorcore.Store

// RunStoreContract runs a backend-agnostic registry contract suite.
func RunStoreContract(t *testing.T, store Store, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}
	ctx := context.Background()
	name := func(s string) string {
		return sanitize(caseName) + ":" + s
	}

	// Unknown names miss.
	if _, ok, err := store.Get(ctx, name("unknown")); err != nil || ok {
		t.Fatalf("expected miss for unknown name: ok=%v err=%v", ok, err)
	}

	var baseCount int64
	if !opts.SkipEnumeration {
		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		baseCount = n
	}

	// First add creates the entry.
	created, err := store.Add(ctx, name("alpha"), []byte("record"))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !created {
		t.Fatalf("expected first add to create entry")
	}

	body, ok, err := store.Get(ctx, name("alpha"))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected miss for null semantics")
		}
	} else {
		if !ok || string(body) != "record" {
			t.Fatalf("unexpected get result: ok=%v body=%q", ok, string(body))
		}
		if !opts.SkipCloneCheck {
			body[0] = 'X'
			body2, ok2, err2 := store.Get(ctx, name("alpha"))
			if err2 != nil || !ok2 || string(body2) != "record" {
				t.Fatalf("expected stored value unchanged, got ok=%v body=%q err=%v", ok2, string(body2), err2)
			}
		}
	}

	// Duplicate add keeps the first record.
	created, err = store.Add(ctx, name("alpha"), []byte("other"))
	if err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}
	if opts.NullSemantics {
		if !created {
			t.Fatalf("expected null-like add duplicate to report created=true")
		}
	} else {
		if created {
			t.Fatalf("expected duplicate add to return created=false")
		}
		body, ok, err = store.Get(ctx, name("alpha"))
		if err != nil || !ok || string(body) != "record" {
			t.Fatalf("expected first record to win: ok=%v body=%q err=%v", ok, string(body), err)
		}
	}

	if _, err := store.Add(ctx, name("beta"), []byte("record")); err != nil {
		t.Fatalf("add beta failed: %v", err)
	}

	if !opts.SkipEnumeration {
		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		wantDelta := int64(2)
		if opts.NullSemantics {
			wantDelta = 0
		}
		if n-baseCount != wantDelta {
			t.Fatalf("expected count delta %d, got %d (base %d, now %d)", wantDelta, n-baseCount, baseCount, n)
		}

		names, err := store.Names(ctx)
		if err != nil {
			t.Fatalf("names failed: %v", err)
		}
		if !opts.NullSemantics {
			if !contains(names, name("alpha")) || !contains(names, name("beta")) {
				t.Fatalf("expected enumeration to include added names, got %v", names)
			}
		}
	}
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
