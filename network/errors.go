package network

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrKindNetwork   ErrorKind = iota // unreachable, connection reset, dns
	ErrKindTimeout                    // no response within the request bound
	ErrKindStatus                     // non-2xx status
	ErrKindMalformed                  // body could not be decoded
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindNetwork:
		return "network"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindStatus:
		return "status"
	case ErrKindMalformed:
		return "malformed"
	}

	return "unknown"
}

// Error is the transport failure returned for every unsuccessful request.
type Error struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func NewError(kind ErrorKind, method, url string, err error) error {
	return &Error{
		Kind:   kind,
		Method: method,
		URL:    url,
		Err:    err,
	}
}

func NewStatusError(method, url string, statusCode int, body []byte) error {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody]
	}

	return &Error{
		Kind:       ErrKindStatus,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

func NewMalformedError(method, url string, err error) error {
	return NewError(ErrKindMalformed, method, url, err)
}

func (e *Error) Error() string {
	if e.Kind == ErrKindStatus {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("%s %s: %s error: %v", e.Method, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the transport error wrapped in err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var netErr *Error
	if errors.As(err, &netErr) {
		return netErr.Kind, true
	}

	return 0, false
}

func IsTimeout(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == ErrKindTimeout
}

func IsStatus(err error, statusCode int) bool {
	var netErr *Error
	return errors.As(err, &netErr) && netErr.Kind == ErrKindStatus && netErr.StatusCode == statusCode
}
