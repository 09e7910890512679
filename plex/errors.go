package plex

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

var _ error = &HTTPError{}

// HTTPError is returned when the server, or a player, responds with a non-OK status.
type HTTPError struct {
	StatusCode int
	StatusText string
	Body       string
}

func parseHTTPError(r *http.Response) error {
	var body string
	if r.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(r.Body, 1024))
		body = strings.TrimSpace(string(b))
	}
	return &HTTPError{StatusCode: r.StatusCode, StatusText: r.Status, Body: body}
}

func (h *HTTPError) Error() string {
	text := "plex: " + h.StatusText
	if h.Body != "" {
		text += ": " + h.Body
	}
	return text
}

var _ error = &ErrInvalidXML{}

// ErrInvalidXML is returned when a player's response can't be parsed. Body contains the response received.
type ErrInvalidXML struct {
	Err  error
	Body []byte
}

func (e *ErrInvalidXML) Error() string {
	return "parse: " + e.Err.Error()
}

func (e *ErrInvalidXML) Is(target error) bool {
	var err *ErrInvalidXML
	return errors.As(target, &err)
}

func (e *ErrInvalidXML) Unwrap() error {
	return e.Err
}
