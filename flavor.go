package flavors

import (
	"encoding/json"
	"fmt"
)

// Flavor is an immutable shared value identified by its name. Flavors
// are vended exclusively by a Cache, which guarantees at most one
// logical instance per distinct name for the cache's lifetime.
type Flavor struct {
	name string
}

// Name returns the identifying name of the flavor.
func (f Flavor) Name() string { return f.name }

// String implements fmt.Stringer.
func (f Flavor) String() string { return f.name }

// Equal reports whether two flavors are interchangeable.
func (f Flavor) Equal(other Flavor) bool { return f.name == other.name }

// flavorRecord is the wire form written to registry backends.
type flavorRecord struct {
	Name string `json:"name"`
}

func encodeFlavor(f Flavor) ([]byte, error) {
	return json.Marshal(flavorRecord{Name: f.name})
}

func decodeFlavor(name string, body []byte) (Flavor, error) {
	var rec flavorRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return Flavor{}, fmt.Errorf("decode flavor record %q: %w", name, err)
	}
	if rec.Name == "" {
		rec.Name = name
	}
	return Flavor{name: rec.Name}, nil
}
