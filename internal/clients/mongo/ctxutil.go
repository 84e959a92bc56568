package mongo

import (
	"context"
	"time"
)

// OpTimeout caps every repository round-trip against the database.
const OpTimeout = 5 * time.Second

// WithRepoTimeout bounds ctx by d unless ctx already expires sooner.
// The cancel func is never nil, so call sites can always write:
//
//	ctx, cancel := WithRepoTimeout(parentCtx, d)
//	defer cancel()
//
// A dead or tighter parent is handed back untouched with a no-op cancel.
func WithRepoTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx.Err() != nil {
		return ctx, func() {}
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= d {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
