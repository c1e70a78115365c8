package pagination

import "context"

// Filter is the caller-supplied query shape that must stay identical across
// a pagination sequence. It is folded into the token fingerprint; the core
// never interprets it beyond that.
type Filter struct {
	Collection string
	Kind       string
}

// Window is one slice of the underlying collection, in the Lister's order.
type Window[T any] struct {
	Items   []T
	HasMore bool

	// Total, when known, is the collection size under the current filter.
	// TotalIsEstimate marks planner-style approximations.
	Total           *int64
	TotalIsEstimate bool
}

// Lister is the external capability that fetches up to limit items starting
// at offset within the parent scope. Implementations enforce the caller's
// own authorization on every call and must honor ctx deadlines. A Lister
// that cannot resolve a deep offset in time returns ErrUnresolved (or lets
// the deadline fire); both take the degraded path rather than failing the
// request.
type Lister[T any] interface {
	Window(ctx context.Context, parent string, f Filter, offset int64, limit int32) (*Window[T], error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc[T any] func(ctx context.Context, parent string, f Filter, offset int64, limit int32) (*Window[T], error)

func (fn ListerFunc[T]) Window(ctx context.Context, parent string, f Filter, offset int64, limit int32) (*Window[T], error) {
	return fn(ctx, parent, f, offset, limit)
}
