package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound matches a StatusError carrying a 404.
	ErrNotFound = errors.New("resource not found")
	// ErrDecode wraps failures to parse a response body as JSON.
	ErrDecode = errors.New("decode response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Service    string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s returned status %d: %s", e.Service, e.URL, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
