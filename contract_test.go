package flavors_test

import (
	"context"
	"testing"

	flavors "github.com/goforj/flavors"
	"github.com/goforj/flavors/flavortest"
)

func TestMemoryStoreContract(t *testing.T) {
	store := flavors.NewMemoryStore(context.Background())
	flavortest.RunStoreContract(t, store, flavortest.Options{})
}

func TestNullStoreContract(t *testing.T) {
	store := flavors.NewNullStore(context.Background())
	flavortest.RunStoreContract(t, store, flavortest.Options{NullSemantics: true})
}
