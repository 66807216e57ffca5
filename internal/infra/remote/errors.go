package remote

import (
	"errors"
	"fmt"
)

// RejectionError is a non-2xx answer from a backend service.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure: the request never got an answer.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "Network error"
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// AsRejection returns the rejection carried by err, if any.
func AsRejection(err error) (*RejectionError, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsNotFound reports a 404 rejection.
func IsNotFound(err error) bool {
	re, ok := AsRejection(err)
	return ok && re.Status == 404
}

func rejection(status int, message string) *RejectionError {
	if message == "" {
		message = fmt.Sprintf("Error: %d", status)
	}
	return &RejectionError{Status: status, Message: message}
}
