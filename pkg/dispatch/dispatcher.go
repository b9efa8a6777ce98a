package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/modelwire/mcpd/pkg/model"
)

// Dispatcher owns the model registry and performs lookup + invoke per request.
// It is safe for concurrent use; the registry is read-only after construction.
type Dispatcher struct {
	reg *model.Registry
	log *zap.Logger
}

// New creates a Dispatcher over reg. log may be nil.
func New(reg *model.Registry, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{reg: reg, log: log}
}

// Invoke looks up modelID and runs its handler synchronously with
// (mctx, params). The outcome is always a well-formed envelope:
//   - unknown id        -> 404 detail, message names the offending id
//   - handler error     -> 500 detail with the error text
//   - handler panic     -> 500 detail; the panic stops here
//
// No timeout or retry is applied; the call is atomic from the caller's view.
func (d *Dispatcher) Invoke(ctx context.Context, modelID string, mctx model.Context, params model.Params) Outcome {
	h, ok := d.reg.Lookup(modelID)
	if !ok {
		d.log.Info("model not found", zap.String("modelId", modelID))
		return Outcome{
			ModelID: modelID,
			Err: &ErrorDetail{
				Code:    http.StatusNotFound,
				Message: fmt.Sprintf("Model '%s' not found.", modelID),
			},
		}
	}

	result, err := d.safeInvoke(ctx, h, mctx, params)
	if err != nil {
		// Error text goes to the caller unsanitized; see DESIGN.md.
		d.log.Warn("handler failed",
			zap.String("modelId", modelID),
			zap.Error(err),
		)
		return Outcome{
			ModelID: modelID,
			Err: &ErrorDetail{
				Code:    http.StatusInternalServerError,
				Message: err.Error(),
			},
		}
	}
	return Outcome{ModelID: modelID, Result: result}
}

// safeInvoke converts a handler panic into an error so nothing escapes the
// dispatch boundary.
func (d *Dispatcher) safeInvoke(ctx context.Context, h model.Handler, mctx model.Context, params model.Params) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return h.Invoke(ctx, mctx, params)
}

// ModelIDs lists the ids the dispatcher serves, for startup logging.
func (d *Dispatcher) ModelIDs() []string { return d.reg.IDs() }
