package vortex

import "fmt"

// ClientRequestError is returned for 4xx responses.
type ClientRequestError struct {
	Message    string
	StatusCode int
}

func (e *ClientRequestError) Error() string {
	return fmt.Sprintf("vortex: %s (status %d)", e.Message, e.StatusCode)
}

// ServerRequestError is returned for 5xx responses.
type ServerRequestError struct {
	Message    string
	StatusCode int
}

func (e *ServerRequestError) Error() string {
	return fmt.Sprintf("vortex: %s (status %d)", e.Message, e.StatusCode)
}

// UnexpectedResponseError covers network failures, non-2xx statuses outside
// 4xx/5xx and success bodies that cannot be decoded. StatusCode is 0 when no
// response was received.
type UnexpectedResponseError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *UnexpectedResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("vortex: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("vortex: %s", e.Message)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Err
}

func newStatusError(status int, message string) error {
	switch {
	case status >= 400 && status < 500:
		return &ClientRequestError{Message: message, StatusCode: status}
	case status >= 500 && status < 600:
		return &ServerRequestError{Message: message, StatusCode: status}
	default:
		return &UnexpectedResponseError{Message: message, StatusCode: status}
	}
}
