// Package handlers carries the built-in model handlers and the catalog
// that binds implementation names to them.
package handlers

import (
	"context"

	"github.com/modelwire/mcpd/pkg/model"
)

// Echo returns the request context unchanged under the "echo" key.
func Echo(_ context.Context, mctx model.Context, _ model.Params) (any, error) {
	return map[string]any{"echo": mctx}, nil
}
