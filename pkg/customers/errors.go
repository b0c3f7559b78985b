package customers

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus matches every *StatusError via errors.Is.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// ErrIDMismatch is returned when an update body names a different customer than the path.
var ErrIDMismatch = errors.New("customer id in body does not match path id")

// StatusError reports a response whose status differs from the accepted one.
type StatusError struct {
	Method string
	URL    string
	Got    int
	Want   int
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d (want %d)", e.Method, e.URL, e.Got, e.Want)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }
