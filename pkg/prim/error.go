package prim

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test the kind of an error returned by a primitive.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInternal             = errors.New("internal invariant violation")
)

// OpError is returned by primitives.
type OpError struct {
	Op      string
	Kind    error
	Message string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *OpError) Unwrap() error { return e.Kind }

func NewInvalidArgumentError(op, message string) error {
	return &OpError{Op: op, Kind: ErrInvalidArgument, Message: message}
}

func NewUnsupportedOperationError(op, message string) error {
	return &OpError{Op: op, Kind: ErrUnsupportedOperation, Message: message}
}

func NewInternalError(op, message string) error {
	return &OpError{Op: op, Kind: ErrInternal, Message: message}
}

// wrapExecError attributes an executor failure to an operator.
func wrapExecError(op string, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
