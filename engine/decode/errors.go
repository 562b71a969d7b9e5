package decode

import "fmt"

// DecodeError reports a server reply whose shape or content did not match
// what the issued command expects. It is the only error this package mints;
// everything else (network failures, server error replies) passes through
// from the underlying client untouched.
type DecodeError struct {
	Expected string
	Got      interface{}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode reply: expected %s, got %v (%T)", e.Expected, e.Got, e.Got)
}

func unexpected(expected string, got interface{}) error {
	return &DecodeError{Expected: expected, Got: got}
}
