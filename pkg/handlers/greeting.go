package handlers

import (
	"context"
	"fmt"

	"github.com/modelwire/mcpd/pkg/model"
)

// Greeting greets the "name" found in the request context, defaulting to
// "World" when the key is absent.
func Greeting(_ context.Context, mctx model.Context, _ model.Params) (any, error) {
	name, ok := mctx["name"]
	if !ok {
		name = "World"
	}
	return map[string]any{"greeting": fmt.Sprintf("Hello, %v!", name)}, nil
}
