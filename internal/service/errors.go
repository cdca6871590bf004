package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by Service. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store failure")
)

// Error is a classified failure of one ledger operation
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(op string, err error) error {
	return &Error{Kind: ErrValidation, Op: op, Err: err}
}

func notFoundError(op string, id int64) error {
	return &Error{Kind: ErrNotFound, Op: op, Err: fmt.Errorf("payment record %d", id)}
}

func storeError(op string, err error) error {
	return &Error{Kind: ErrStore, Op: op, Err: err}
}
