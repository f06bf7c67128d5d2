package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("backend unavailable")

	// ErrUnexpectedShape means the backend answered 2xx with a body the
	// client could not interpret.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// APIError is a non-2xx backend answer. Detail holds the backend's "detail"
// (or "message") text when it sent one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend: %d %s", e.Status, e.Detail)
}

// Unwrap maps the status onto the package sentinels so errors.Is works on
// *APIError values.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	}
	return nil
}

// Message returns the text to show the user for err: the backend detail,
// else message, else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func decodeAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	e := &APIError{Status: status}
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}

	e.Detail = detailText(payload.Detail)
	if e.Detail == "" {
		e.Detail = payload.Message
	}
	return e
}

// detailText accepts a plain string or a list of validation errors
// ([{"msg": "..."}]).
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
