package activities

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TransportError means the request never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("activities %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Detail is empty when the body had none.
type APIError struct {
	Op     string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("activities %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("activities %s: status %d: %s", e.Op, e.Status, e.Detail)
}

// DecodeError is a 2xx response whose body could not be parsed.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("activities %s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Detail returns the server-provided detail carried by err, or fallback.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail accepts {"detail": "text"} and the validation form
// {"detail": [{"msg": "..."}]}.
func parseDetail(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(parsed.Detail, &text); err == nil {
		return text
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(parsed.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
