package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// DecodeError is returned when a 2xx body does not decode into the target.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Policy builds a fresh backoff for one DoJSON call.
type Policy func() backoff.BackOff

// NoRetry performs exactly one attempt.
func NoRetry() backoff.BackOff { return &backoff.StopBackOff{} }

// Exponential retries 5xx responses and transport errors for up to 3s.
func Exponential() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second
	return exp
}

type Client struct {
	HTTP      *http.Client
	Token     string
	UserAgent string
	Header    http.Header
	Retry     Policy
}

func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	policy := c.Retry
	if policy == nil {
		policy = NoRetry
	}

	op := func() error {
		resp, err := hc.Do(req.WithContext(ctx))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return &StatusError{Code: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(&StatusError{Code: resp.StatusCode})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(&DecodeError{Err: err})
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(policy(), ctx))
}

// IsTransport reports whether err came from the round trip itself rather than
// from the response.
func IsTransport(err error) bool {
	var se *StatusError
	var de *DecodeError
	return err != nil && !errors.As(err, &se) && !errors.As(err, &de)
}
