package services

import "net/http"

// Result is the envelope every user and diary operation returns. Code
// mirrors an HTTP status and callers branch on it.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK reports whether the operation succeeded.
func (r *Result) OK() bool {
	return r.Code == http.StatusOK
}

func resultOK(message string, data any) *Result {
	return &Result{Code: http.StatusOK, Message: message, Data: data}
}

func resultError(code int, message string) *Result {
	return &Result{Code: code, Message: message}
}
