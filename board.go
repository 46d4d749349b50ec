package flavors

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"
)

// Board collects table orders, resolving every flavor through its
// owned Cache. At most one flavor is bound per table; taking a new
// order for a table overwrites the previous binding.
type Board struct {
	cache  *Cache
	render Transformer

	mu     sync.RWMutex
	orders map[int]Flavor
}

// BoardOption configures a Board at construction.
type BoardOption func(*Board)

// WithRenderer sets the Transformer applied to flavor names when the
// board prints itself. Defaults to Identity.
func WithRenderer(t Transformer) BoardOption {
	return func(b *Board) {
		if t != nil {
			b.render = t
		}
	}
}

// NewBoard creates an order board backed by cache.
// @group Board
//
// Example: take and serve orders
//
//	ctx := context.Background()
//	board := flavors.NewBoard(flavors.NewCache(flavors.NewMemoryStore(ctx)))
//	_ = board.TakeOrder("chocolate", 2)
//	for table, flavor := range board.Serve() {
//		fmt.Println(table, flavor) // 2 chocolate
//	}
func NewBoard(cache *Cache, opts ...BoardOption) *Board {
	b := &Board{
		cache:  cache,
		render: Identity,
		orders: make(map[int]Flavor),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Cache returns the flavor cache owned by the board.
func (b *Board) Cache() *Cache {
	return b.cache
}

// TakeOrder binds table to the flavor for name, overwriting any
// previous binding for that table.
// @group Board
func (b *Board) TakeOrder(name string, table int) error {
	return b.TakeOrderCtx(context.Background(), name, table)
}

func (b *Board) TakeOrderCtx(ctx context.Context, name string, table int) error {
	flavor, err := b.cache.LookupCtx(ctx, name)
	if err != nil {
		return fmt.Errorf("take order for table %d: %w", table, err)
	}
	b.mu.Lock()
	b.orders[table] = flavor
	b.mu.Unlock()
	return nil
}

// Serve enumerates the current table bindings. Enumeration order is
// unspecified; re-enumerating in the same state yields the same set.
// @group Board
func (b *Board) Serve() iter.Seq2[int, Flavor] {
	b.mu.RLock()
	snapshot := make(map[int]Flavor, len(b.orders))
	for table, flavor := range b.orders {
		snapshot[table] = flavor
	}
	b.mu.RUnlock()

	return func(yield func(int, Flavor) bool) {
		for table, flavor := range snapshot {
			if !yield(table, flavor) {
				return
			}
		}
	}
}

// Len returns the number of tables with an order.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// Print writes one line per table binding to w, rendering flavor
// names through the board's Transformer.
// @group Board
func (b *Board) Print(w io.Writer) error {
	for table, flavor := range b.Serve() {
		if _, err := fmt.Fprintf(w, "table %d: %s\n", table, b.render.Transform(flavor.Name())); err != nil {
			return err
		}
	}
	return nil
}
