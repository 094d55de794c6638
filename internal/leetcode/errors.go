package leetcode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when the API answers successfully but knows no
// user by the requested username (matchedUser is null).
var ErrUserNotFound = errors.New("user not found")

// APIError is returned when the API answers with a non-200 status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leetcode API returned status %d", e.StatusCode)
}

// UpstreamError is returned when the GraphQL endpoint answers 200 but reports
// query-level errors in the response payload.
type UpstreamError struct {
	Payload json.RawMessage
}

func (e *UpstreamError) Error() string {
	return "leetcode query failed: " + e.Detail()
}

// Detail renders the raw errors payload as compact JSON for display.
func (e *UpstreamError) Detail() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, e.Payload); err != nil {
		return string(e.Payload)
	}
	return buf.String()
}

// ParseError is returned when the response body cannot be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid API response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
