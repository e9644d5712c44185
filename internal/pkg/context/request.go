// Package context carries per-request metadata that handlers fill in and
// the access log reads back once the handler returns.
package context

import (
	"context"
	"sync"
)

type requestKey struct{}

type request struct {
	id string

	mu    sync.Mutex
	place string
}

func from(ctx context.Context) *request {
	req, _ := ctx.Value(requestKey{}).(*request)
	return req
}

// WithRequestID starts the request metadata. Values set later through the
// returned context stay visible to middleware holding the same context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, &request{id: id})
}

func RequestID(ctx context.Context) string {
	if req := from(ctx); req != nil {
		return req.id
	}
	return ""
}

// SetPlace records the "City, ST" a handler resolved. No-op outside a request.
func SetPlace(ctx context.Context, place string) {
	req := from(ctx)
	if req == nil {
		return
	}
	req.mu.Lock()
	req.place = place
	req.mu.Unlock()
}

func Place(ctx context.Context) string {
	req := from(ctx)
	if req == nil {
		return ""
	}
	req.mu.Lock()
	defer req.mu.Unlock()
	return req.place
}
