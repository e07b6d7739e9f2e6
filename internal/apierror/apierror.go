// Package apierror provides the error response envelope for the API. All
// 4xx/5xx responses go through this package so clients see a consistent
// shape and internals (stack traces, SQL errors) never leak by accident.
package apierror

// APIError is the canonical error envelope. Detail is optional diagnostic
// context; Error is always a human-readable message.
type APIError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// WithDetail attaches diagnostic detail to a generic message. Used for 500
// responses where the message stays generic but the detail helps debugging.
func WithDetail(msg, detail string) *APIError {
	return &APIError{Error: msg, Detail: detail}
}
