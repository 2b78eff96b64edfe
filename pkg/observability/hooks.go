package observability

import (
	"context"
	"time"

	"github.com/aretw0/passage/pkg/domain"
)

// DeriveEvent describes a successfully answered request.
type DeriveEvent struct {
	CallID      string
	Origin      domain.CountryCode
	Destination domain.CountryCode
	Purpose     domain.Purpose
	VisaNeeded  bool
	Documents   int
	CacheHit    bool
	Duration    time.Duration
}

// ErrorEvent describes a rejected request.
type ErrorEvent struct {
	CallID string
	Err    error
}

// CacheEvent describes a cache lookup outcome.
type CacheEvent struct {
	CallID string
	Result string // hit, miss or error
}

// Hooks are optional callbacks invoked by the service. Nil fields are skipped.
type Hooks struct {
	OnDerive func(ctx context.Context, e *DeriveEvent)
	OnError  func(ctx context.Context, e *ErrorEvent)
	OnCache  func(ctx context.Context, e *CacheEvent)
}

// Merge returns hooks that call every non-nil callback of each input, in order.
func Merge(all ...Hooks) Hooks {
	return Hooks{
		OnDerive: func(ctx context.Context, e *DeriveEvent) {
			for _, h := range all {
				if h.OnDerive != nil {
					h.OnDerive(ctx, e)
				}
			}
		},
		OnError: func(ctx context.Context, e *ErrorEvent) {
			for _, h := range all {
				if h.OnError != nil {
					h.OnError(ctx, e)
				}
			}
		},
		OnCache: func(ctx context.Context, e *CacheEvent) {
			for _, h := range all {
				if h.OnCache != nil {
					h.OnCache(ctx, e)
				}
			}
		},
	}
}
