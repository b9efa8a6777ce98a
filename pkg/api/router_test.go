package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelwire/mcpd/pkg/dispatch"
	"github.com/modelwire/mcpd/pkg/handlers"
	"github.com/modelwire/mcpd/pkg/middleware/metrics"
	"github.com/modelwire/mcpd/pkg/model"
	"github.com/modelwire/mcpd/pkg/transport/httpx"
)

// newTestServer wires the full router over the reference handlers plus a
// failing model and an invocation counter.
func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var invoked atomic.Int64
	counting := func(h model.HandlerFunc) model.HandlerFunc {
		return func(ctx context.Context, mctx model.Context, p model.Params) (any, error) {
			invoked.Add(1)
			return h(ctx, mctx, p)
		}
	}

	reg := model.NewRegistry(map[string]model.Handler{
		"echo-model":     counting(handlers.Echo),
		"greeting-model": counting(handlers.Greeting),
		"failing-model": counting(func(context.Context, model.Context, model.Params) (any, error) {
			return nil, errors.New("synthetic failure")
		}),
	})

	h := BuildRouter(BuildDeps{
		Metrics:    metrics.NewPromHttpHandler(),
		Dispatcher: dispatch.New(reg, nil),
		Router:     httpx.NewChi(),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, &invoked
}

func postInvoke(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/invoke", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestRoot_Liveness(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, map[string]any{"message": "MCP Server is running"}, decoded)
}

func TestInvoke_EchoModel(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postInvoke(t, srv, `{"model_id": "echo-model", "context": {"key": "value", "number": 123}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "echo-model", body["model_id"])
	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"key": "value", "number": float64(123)}, result["echo"])
}

func TestInvoke_GreetingModel_WithName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postInvoke(t, srv, `{"model_id": "greeting-model", "context": {"name": "Jules"}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "greeting-model", body["model_id"])
	assert.Equal(t, map[string]any{"greeting": "Hello, Jules!"}, body["result"])
}

func TestInvoke_GreetingModel_DefaultName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postInvoke(t, srv, `{"model_id": "greeting-model", "context": {}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"greeting": "Hello, World!"}, body["result"])
}

func TestInvoke_WithParameters(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := postInvoke(t, srv, `{"model_id": "echo-model", "context": {}, "parameters": {"temperature": 0.7}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvoke_ModelNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postInvoke(t, srv, `{"model_id": "non-existent-model", "context": {}}`)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	detail, ok := body["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "non-existent-model", detail["model_id"])

	errObj, ok := detail["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(404), errObj["code"])
	assert.Contains(t, errObj["message"], "not found")
	assert.Contains(t, errObj["message"], "non-existent-model")
}

func TestInvoke_HandlerFailure(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postInvoke(t, srv, `{"model_id": "failing-model", "context": {}}`)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	detail, ok := body["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "failing-model", detail["model_id"])

	errObj, ok := detail["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(500), errObj["code"])
	assert.Equal(t, "synthetic failure", errObj["message"])
}

func TestInvoke_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing model_id", `{"context": {}}`},
		{"empty model_id", `{"model_id": "", "context": {}}`},
		{"missing context", `{"model_id": "echo-model"}`},
		{"null context", `{"model_id": "echo-model", "context": null}`},
		{"context wrong type", `{"model_id": "echo-model", "context": "nope"}`},
		{"parameters wrong type", `{"model_id": "echo-model", "context": {}, "parameters": 7}`},
		{"model_id wrong type", `{"model_id": 42, "context": {}}`},
		{"not json", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, invoked := newTestServer(t)

			resp, body := postInvoke(t, srv, tc.body)

			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, body, "detail")
			assert.Equal(t, int64(0), invoked.Load(), "validation failures must not reach a handler")
		})
	}
}

func TestInvoke_IgnoresUnknownTopLevelFields(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := postInvoke(t, srv, `{"model_id": "echo-model", "context": {}, "trace": true}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHeartbeat(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
