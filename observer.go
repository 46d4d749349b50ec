package flavors

import (
	"context"
	"time"
)

// Observer receives events for registry operations.
// It is called from Cache helpers after each operation completes.
type Observer interface {
	OnFlavorOp(ctx context.Context, op string, name string, hit bool, err error, dur time.Duration, driver Driver)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, name string, hit bool, err error, dur time.Duration, driver Driver)

// OnFlavorOp implements Observer.
func (f ObserverFunc) OnFlavorOp(ctx context.Context, op string, name string, hit bool, err error, dur time.Duration, driver Driver) {
	if f == nil {
		return
	}
	f(ctx, op, name, hit, err, dur, driver)
}
