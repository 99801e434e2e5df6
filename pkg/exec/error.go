package exec

import (
	"errors"
	"fmt"
)

// ErrLayout is returned when the input vecs of a parallel pass are not partitioned identically.
var ErrLayout = errors.New("input vecs are not aligned")

// NewPartitionError wraps the failure of the partition starting at the given row.
func NewPartitionError(start int64, err error) error {
	return fmt.Errorf("partition at row %d failed: %w", start, err)
}
