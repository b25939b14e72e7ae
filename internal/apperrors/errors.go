package apperrors

import (
	"errors"
	"fmt"
)

// FetchFailureMessage is the user-facing message carried by every FetchFailure.
const FetchFailureMessage = "Failed to load podcasts"

// FetchFailure is the error surfaced to presentation layers when the show list
// could not be retrieved. Details holds the underlying failure as free text.
type FetchFailure struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *FetchFailure) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// Unwrap returns the underlying cause.
func (e *FetchFailure) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *FetchFailure) Is(target error) bool {
	_, ok := target.(*FetchFailure)
	return ok
}

// NewFetchFailure wraps err into a FetchFailure with the fixed user message.
func NewFetchFailure(err error) *FetchFailure {
	f := &FetchFailure{Message: FetchFailureMessage, Err: err}
	if err != nil {
		f.Details = err.Error()
	}
	return f
}

// AsFetchFailure returns err as a FetchFailure, wrapping it when needed.
func AsFetchFailure(err error) *FetchFailure {
	if err == nil {
		return nil
	}
	var f *FetchFailure
	if errors.As(err, &f) {
		return f
	}
	return NewFetchFailure(err)
}

// ErrUnexpectedStatus is returned when the catalog endpoint answers with a non-success status.
type ErrUnexpectedStatus struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// ErrDecode is returned when the catalog body or one of its records is malformed.
// Index is -1 when the body as a whole could not be decoded.
type ErrDecode struct {
	Index  int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ErrDecode) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed catalog body: %s", e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("malformed show record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed show record %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrDecode) Is(target error) bool {
	_, ok := target.(*ErrDecode)
	return ok
}

// NewDecodeError creates an ErrDecode for a whole-body failure.
func NewDecodeError(reason string) *ErrDecode {
	return &ErrDecode{Index: -1, Reason: reason}
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowNotFoundError creates a specific error for an unknown show ID.
func NewShowNotFoundError(showID string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       showID,
	}
}

// ErrInvalidCategory is returned when a filter category name is not recognised.
type ErrInvalidCategory struct {
	Value string
}

// Error implements the error interface.
func (e *ErrInvalidCategory) Error() string {
	return fmt.Sprintf("invalid filter %q (want all, popular or recent)", e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidCategory) Is(target error) bool {
	_, ok := target.(*ErrInvalidCategory)
	return ok
}
