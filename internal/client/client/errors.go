package client

import "errors"

var (
	// ErrUnavailable reports a transport failure: the service could not be
	// reached or the exchange was cut short.
	ErrUnavailable = errors.New("fortune service unavailable")
	// ErrBadStatus reports a non-2xx answer; the status code is wrapped in.
	ErrBadStatus = errors.New("unexpected status")
	// ErrUnauthorized reports 401/403 answers.
	ErrUnauthorized = errors.New("unauthorized")
)
