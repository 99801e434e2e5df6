package frame

import "fmt"

// FrameError is returned when a vec or a frame cannot be constructed.
type FrameError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FrameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *FrameError) Unwrap() error { return e.Cause }

func newFrameError(message string, cause error) error {
	return &FrameError{Message: message, Cause: cause}
}
