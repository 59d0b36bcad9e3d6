package entity

import "errors"

var (
	// ErrEncoding means a record does not fit the run header. It aborts the run.
	ErrEncoding = errors.New("record does not match header")

	// ErrTransportFailure means the receiver answered with a non-2xx status or
	// could not be reached. The chunk is counted as failed and the run continues.
	ErrTransportFailure = errors.New("transport failure")

	// ErrMalformedResponse means a 2xx reply lacked the expected counters.
	// errors.Is(ErrMalformedResponse, ErrTransportFailure) holds.
	ErrMalformedResponse error = malformedResponseError{}
)

type malformedResponseError struct{}

func (malformedResponseError) Error() string {
	return "malformed response"
}

func (malformedResponseError) Is(target error) bool {
	return target == ErrTransportFailure
}
