package ark

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProtocol = errors.New("protocol must be http or https")
	ErrNoPeer          = errors.New("peer is required")
)

const (
	VoteStageHistory  = "history"
	VoteStageDelegate = "delegate"
)

// ResolutionError is returned when no step of the endpoint cascade produced a usable wallet API
// endpoint for a peer.
type ResolutionError struct {
	IP       string
	Attempts []*AttemptError
}

type AttemptError struct {
	Strategy string
	Err      error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

func NewResolutionError(ip string, attempts []*AttemptError) error {
	return &ResolutionError{IP: ip, Attempts: attempts}
}

func (e *ResolutionError) Error() string {
	msgs := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		msgs = append(msgs, a.Error())
	}

	return fmt.Sprintf("cannot resolve wallet api for peer %s: [%s]", e.IP, strings.Join(msgs, "; "))
}

func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}

	return errs
}

// VoteResolutionError is returned when the vote history or the voted delegate cannot be
// fetched. It is never used to mean "not voting".
type VoteResolutionError struct {
	Address string
	Stage   string
	Err     error
}

func NewVoteResolutionError(address, stage string, err error) error {
	return &VoteResolutionError{Address: address, Stage: stage, Err: err}
}

func (e *VoteResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve vote of %s (%s): %v", e.Address, e.Stage, e.Err)
}

func (e *VoteResolutionError) Unwrap() error {
	return e.Err
}
