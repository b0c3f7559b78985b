package sinks

import (
	"encoding/json"
	"time"
)

// Result is one successful customers operation, emitted downstream.
type Result struct {
	Operation  string          `json:"operation"`
	Method     string          `json:"method"`
	URL        string          `json:"url"`
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	ReceivedAt time.Time       `json:"received_at"`
}

// NewResult constructs a Result stamped with the current time.
func NewResult(operation, method, url string, statusCode int, body json.RawMessage) Result {
	return Result{
		Operation:  operation,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
		ReceivedAt: time.Now().UTC(),
	}
}
