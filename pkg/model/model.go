// Package model defines the handler contract and the immutable model registry.
package model

import "context"

// Context is the caller-supplied input object passed to a model per request.
// No schema is enforced beyond "JSON object".
type Context map[string]any

// Params is the optional caller-supplied auxiliary input object. nil means absent.
type Params map[string]any

// Handler is a pure computation unit invocable by the dispatcher.
// Implementations must not hold state across invocations and must not
// mutate mctx or params.
type Handler interface {
	Invoke(ctx context.Context, mctx Context, params Params) (any, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, mctx Context, params Params) (any, error)

func (f HandlerFunc) Invoke(ctx context.Context, mctx Context, params Params) (any, error) {
	return f(ctx, mctx, params)
}
