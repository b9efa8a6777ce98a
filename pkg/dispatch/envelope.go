// Package dispatch routes model invocation requests to registered handlers
// and shapes the outcome into a response envelope.
package dispatch

import "net/http"

// ErrorDetail holds structured error information exposed to the caller.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Outcome is the explicit result of one dispatch: either Result is set
// (Err == nil) or Err describes the failure. Exactly one of the two holds.
type Outcome struct {
	ModelID string
	Result  any
	Err     *ErrorDetail
}

// OK reports whether the invocation succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Envelope is the success response body: {model_id, result}.
type Envelope struct {
	ModelID string `json:"model_id"`
	Result  any    `json:"result"`
}

// ErrorBody is the {model_id, error} payload nested under "detail" in
// error responses.
type ErrorBody struct {
	ModelID string      `json:"model_id"`
	Error   ErrorDetail `json:"error"`
}

// ErrorEnvelope wraps ErrorBody the way the HTTP surface emits it.
type ErrorEnvelope struct {
	Detail ErrorBody `json:"detail"`
}

// Envelope renders the outcome as the JSON-serializable response body and
// the HTTP status it maps to.
func (o Outcome) Envelope() (any, int) {
	if o.Err != nil {
		return ErrorEnvelope{Detail: ErrorBody{ModelID: o.ModelID, Error: *o.Err}}, o.Err.Code
	}
	return Envelope{ModelID: o.ModelID, Result: o.Result}, http.StatusOK
}
