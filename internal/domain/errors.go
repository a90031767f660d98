package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetch = errors.New("price fetch failed")
	ErrStock = errors.New("stock lookup failed")
)

// FetchCause tells which step of a price fetch failed.
type FetchCause int

const (
	FetchCauseClient FetchCause = iota + 1
	FetchCauseTransport
	FetchCauseDecode
)

func (c FetchCause) String() string {
	switch c {
	case FetchCauseClient:
		return "client"
	case FetchCauseTransport:
		return "transport"
	case FetchCauseDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is the single error kind returned by price lookups. The message
// differs per cause; callers match it with errors.Is(err, ErrFetch).
type FetchError struct {
	Cause   FetchCause
	Message string
	Err     error
}

func NewFetchError(cause FetchCause, msg string, err error) *FetchError {
	return &FetchError{Cause: cause, Message: msg, Err: err}
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Detail includes the underlying error; meant for logs, not for responses.
func (e *FetchError) Detail() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%s)", e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %v", e.Message, e.Cause, e.Err)
}
