// Package repository implements the aggregate stores on top of the
// document store and defines the error taxonomy shared by all layers.
// Every mutation is read-current-document -> validate -> rewrite; the
// window between read and write is not protected against a second
// concurrent writer.  The system assumes a single logical writer.
package repository

import (
	"errors"
	"strings"
)

// Not-found sentinels.  Handlers translate these into HTTP 404.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrBedNotFound      = errors.New("bed not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrResidentNotFound = errors.New("resident not found")
)

// ValidationError carries the full list of caller-correctable
// precondition failures.  Operations that return it have made no
// change to any aggregate; the caller can fix the listed problems and
// retry.  Handlers translate it into HTTP 400.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validation builds a ValidationError from the given problems.
func Validation(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// ConflictError signals that a state invariant would be violated, such
// as double-booking a bed or deleting a room with occupants.  Handlers
// translate it into HTTP 409.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflict builds a ConflictError.
func Conflict(msg string) *ConflictError { return &ConflictError{Msg: msg} }

// InvalidStateError signals that an operation is not legal from the
// entity's current state, such as cancelling a reservation on a bed
// that is not reserved.  Handlers translate it into HTTP 409.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

// InvalidState builds an InvalidStateError.
func InvalidState(msg string) *InvalidStateError { return &InvalidStateError{Msg: msg} }
