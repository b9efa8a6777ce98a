// Package api builds the HTTP surface: liveness, model invocation, metrics.
package api

import (
	"net/http"

	chimd "github.com/go-chi/chi/v5/middleware"

	"github.com/modelwire/mcpd/pkg/codec"
	"github.com/modelwire/mcpd/pkg/dispatch"
	"github.com/modelwire/mcpd/pkg/middleware/logger"
	"github.com/modelwire/mcpd/pkg/middleware/metrics"
	"github.com/modelwire/mcpd/pkg/transport/httpx"
)

type BuildDeps struct {
	LogMW      *logger.Middleware
	Metrics    http.Handler
	Dispatcher *dispatch.Dispatcher
	Router     httpx.Router
}

// BuildRouter wires middleware and routes onto the provided router.
func BuildRouter(d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(metrics.Collect())

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Get("/", http.HandlerFunc(handleRoot))
	r.Post("/invoke", handleInvoke(d.Dispatcher))

	return r.Mux()
}

// handleRoot reports liveness regardless of dispatcher state.
func handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "MCP Server is running"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := codec.JSONStrict.Marshal(v)
	if err != nil {
		http.Error(w, "encode failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", codec.JSONStrict.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
