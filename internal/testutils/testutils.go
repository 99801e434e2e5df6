// Package testutils holds the fixtures shared by the package test suites.
package testutils

import (
	"math"

	. "github.com/onsi/gomega"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// NA is shorthand for the missing-value marker in fixtures.
var NA = math.NaN()

// TestChunkSize is small enough to split the fixtures into several partitions.
const TestChunkSize = 2

// NumVec creates a numeric vec, failing the running test on error.
func NumVec(data ...float64) *frame.Vec {
	v, err := frame.NewVec(data, nil, TestChunkSize)
	Expect(err).NotTo(HaveOccurred())
	return v
}

// CatVec creates a categorical vec from codes, failing the running test on error.
func CatVec(domain []string, codes ...float64) *frame.Vec {
	v, err := frame.NewVec(codes, domain, TestChunkSize)
	Expect(err).NotTo(HaveOccurred())
	return v
}

// Frame creates a frame with default column names.
func Frame(vecs ...*frame.Vec) *frame.Frame {
	f, err := frame.NewFrame(nil, vecs)
	Expect(err).NotTo(HaveOccurred())
	return f
}

// NumFrame creates a single-column numeric frame value.
func NumFrame(data ...float64) value.Frame {
	return value.NewFrame(Frame(NumVec(data...)))
}

// RowFrame creates a single-row frame with one numeric column per value.
func RowFrame(data ...float64) value.Frame {
	vecs := make([]*frame.Vec, len(data))
	for i, d := range data {
		vecs[i] = NumVec(d)
	}
	return value.NewFrame(Frame(vecs...))
}

// ExpectFrame unwraps a frame value, failing the running test if it is not one.
func ExpectFrame(v value.Value) *frame.Frame {
	ExpectWithOffset(1, v).To(BeAssignableToTypeOf(value.Frame{}))
	return v.(value.Frame).Frame
}

// ExpectColumn checks the cells of a column. NA cells in want match NA cells only.
func ExpectColumn(v *frame.Vec, want ...float64) {
	got := v.Values()
	ExpectWithOffset(1, got).To(HaveLen(len(want)))
	for i := range want {
		if math.IsNaN(want[i]) {
			ExpectWithOffset(1, math.IsNaN(got[i])).To(BeTrue(), "row %d: expected NA, got %v", i, got[i])
			continue
		}
		ExpectWithOffset(1, got[i]).To(Equal(want[i]), "row %d", i)
	}
}
