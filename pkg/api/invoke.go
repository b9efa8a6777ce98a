package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/modelwire/mcpd/pkg/codec"
	"github.com/modelwire/mcpd/pkg/dispatch"
	"github.com/modelwire/mcpd/pkg/middleware/metrics"
	"github.com/modelwire/mcpd/pkg/model"
)

// invokeRequest is the POST /invoke body. Raw fields let validation tell
// "absent" apart from "present with the wrong type".
type invokeRequest struct {
	ModelID    string          `json:"model_id"`
	Context    json.RawMessage `json:"context"`
	Parameters json.RawMessage `json:"parameters"`
}

// fieldError mirrors one request-validation failure.
type fieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// validationError is the 422 body. It is owned by this transport layer;
// the dispatcher never sees requests that fail here.
type validationError struct {
	Detail []fieldError `json:"detail"`
}

func handleInvoke(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeValidationError(w, fieldError{Loc: []string{"body"}, Msg: "unreadable request body"})
			return
		}

		var req invokeRequest
		if err := codec.JSONLenient.Unmarshal(body, &req); err != nil {
			writeValidationError(w, fieldError{Loc: []string{"body"}, Msg: "invalid JSON body"})
			return
		}

		var errs []fieldError
		if strings.TrimSpace(req.ModelID) == "" {
			errs = append(errs, fieldError{Loc: []string{"body", "model_id"}, Msg: "field required"})
		}

		mctx, ferr := decodeObject(req.Context, "context", true)
		if ferr != nil {
			errs = append(errs, *ferr)
		}
		params, ferr := decodeObject(req.Parameters, "parameters", false)
		if ferr != nil {
			errs = append(errs, *ferr)
		}
		if len(errs) > 0 {
			writeValidationError(w, errs...)
			return
		}

		out := d.Invoke(r.Context(), req.ModelID, model.Context(mctx), model.Params(params))
		metrics.ObserveInvocation(out.ModelID, outcomeLabel(out))

		payload, status := out.Envelope()
		writeJSON(w, status, payload)
	}
}

// decodeObject parses a JSON-object field. required distinguishes "context"
// (must be present) from "parameters" (may be absent or null).
func decodeObject(raw json.RawMessage, field string, required bool) (map[string]any, *fieldError) {
	if len(raw) == 0 {
		if required {
			return nil, &fieldError{Loc: []string{"body", field}, Msg: "field required"}
		}
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &fieldError{Loc: []string{"body", field}, Msg: "value is not a valid object"}
	}
	if m == nil {
		// literal null
		if required {
			return nil, &fieldError{Loc: []string{"body", field}, Msg: "value is not a valid object"}
		}
		return nil, nil
	}
	return m, nil
}

func outcomeLabel(o dispatch.Outcome) string {
	switch {
	case o.OK():
		return "ok"
	case o.Err.Code == http.StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

func writeValidationError(w http.ResponseWriter, errs ...fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, validationError{Detail: errs})
}
