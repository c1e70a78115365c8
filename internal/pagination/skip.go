package pagination

import (
	"context"
	"errors"
	"time"
)

// DefaultListerTimeout bounds a single Lister call.
const DefaultListerTimeout = 2 * time.Second

// ResolutionState is the three-way outcome of resolving a start position.
type ResolutionState int

const (
	// StateFulfilled means the Lister produced a window at the offset.
	StateFulfilled ResolutionState = iota

	// StateDegraded means the Lister could not resolve the offset within
	// its latency budget. The call still succeeds: an empty page plus a
	// continuation token retargeting the same offset keeps the client
	// engaged instead of erroring.
	StateDegraded

	// StateExhausted means the offset is at or beyond the end of the
	// collection. The call succeeds with an empty page and no token.
	StateExhausted
)

// Resolution carries the outcome and the effective absolute offset the call
// resolved to (cursor position plus skip).
type Resolution[T any] struct {
	State  ResolutionState
	Offset int64

	// Window is set only when State is StateFulfilled.
	Window *Window[T]
}

// Resolver computes the effective start position for a list call and invokes
// the Lister under a timeout. Skip always counts individual items from the
// current cursor position, never pages.
type Resolver[T any] struct {
	lister  Lister[T]
	timeout time.Duration
}

// NewResolver creates a resolver. A zero timeout selects the default.
func NewResolver[T any](lister Lister[T], timeout time.Duration) *Resolver[T] {
	if timeout <= 0 {
		timeout = DefaultListerTimeout
	}
	return &Resolver[T]{lister: lister, timeout: timeout}
}

func (r *Resolver[T]) Resolve(ctx context.Context, nr *NormalizedRequest) (*Resolution[T], error) {
	offset := nr.Offset + int64(nr.Skip)

	wctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	w, err := r.lister.Window(wctx, nr.Parent, nr.Filter, offset, nr.PageSize)
	if err != nil {
		// Client cancellation aborts the call outright; no cursor state
		// has been written, so nothing needs cleanup.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnresolved) {
			return &Resolution[T]{State: StateDegraded, Offset: offset}, nil
		}
		return nil, err
	}

	if len(w.Items) == 0 && !w.HasMore {
		return &Resolution[T]{State: StateExhausted, Offset: offset}, nil
	}
	return &Resolution[T]{State: StateFulfilled, Offset: offset, Window: w}, nil
}
