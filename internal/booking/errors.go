package booking

import (
	"errors"
	"fmt"

	"github.com/kylianebat7/gudlft/internal/club"
)

var (
	ErrUnknownEntity         = errors.New("unknown club or competition")
	ErrCompetitionClosed     = errors.New("competition is closed")
	ErrMalformedInput        = errors.New("places is not a number")
	ErrInvalidQuantity       = errors.New("places must be a positive integer")
	ErrInsufficientInventory = errors.New("not enough places left")
	ErrInsufficientPoints    = errors.New("not enough points")
	ErrQuantityLimitExceeded = errors.New("too many places in one booking")
)

// Reason is a stable, machine-readable code for a booking outcome.
type Reason string

const (
	ReasonUnknownEntity         Reason = "unknown_entity"
	ReasonCompetitionClosed     Reason = "competition_closed"
	ReasonMalformedInput        Reason = "malformed_input"
	ReasonInvalidQuantity       Reason = "invalid_quantity"
	ReasonInsufficientInventory Reason = "insufficient_inventory"
	ReasonInsufficientPoints    Reason = "insufficient_points"
	ReasonQuantityLimitExceeded Reason = "quantity_limit_exceeded"
	ReasonStorageFailure        Reason = "storage_failure"
	ReasonInternal              Reason = "internal"
)

var reasons = map[error]Reason{
	ErrUnknownEntity:         ReasonUnknownEntity,
	ErrCompetitionClosed:     ReasonCompetitionClosed,
	ErrMalformedInput:        ReasonMalformedInput,
	ErrInvalidQuantity:       ReasonInvalidQuantity,
	ErrInsufficientInventory: ReasonInsufficientInventory,
	ErrInsufficientPoints:    ReasonInsufficientPoints,
	ErrQuantityLimitExceeded: ReasonQuantityLimitExceeded,
}

// RejectionError is a business-rule rejection. Message is meant for the member;
// the wrapped sentinel is for errors.Is.
type RejectionError struct {
	Reason  Reason
	Message string
	err     error
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	return e.err
}

func reject(sentinel error, format string, args ...any) error {
	return &RejectionError{
		Reason:  reasons[sentinel],
		Message: fmt.Sprintf(format, args...),
		err:     sentinel,
	}
}

// ReasonOf classifies any error returned by the booking service.
func ReasonOf(err error) Reason {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		return rej.Reason
	case errors.Is(err, club.ErrStorageFailure):
		return ReasonStorageFailure
	default:
		return ReasonInternal
	}
}

// MessageOf returns the member-facing text for err.
func MessageOf(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message
	}
	if errors.Is(err, club.ErrStorageFailure) {
		return "The booking could not be saved, please try again."
	}
	return "Something went wrong, please try again."
}
