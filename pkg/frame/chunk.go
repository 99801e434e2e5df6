package frame

import "math"

// NA is the missing-value marker of numeric cells.
var NA = math.NaN()

// IsNA reports whether a cell value is missing.
func IsNA(d float64) bool { return math.IsNaN(d) }

// Chunk is a read-only view of a contiguous row range of a vec. Start is the global row index of
// the first row of the chunk.
type Chunk struct {
	Start int64
	data  []float64
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int { return len(c.data) }

// At returns the value of the i-th row of the chunk.
func (c Chunk) At(i int) float64 { return c.data[i] }

// At8 returns the i-th row as an integer, truncating toward zero. Only meaningful for non-NA cells.
func (c Chunk) At8(i int) int64 { return int64(c.data[i]) }

// IsNA reports whether the i-th row of the chunk is missing.
func (c Chunk) IsNA(i int) bool { return math.IsNaN(c.data[i]) }

// NewChunk accumulates the output rows of a single partition.
type NewChunk struct {
	data []float64
}

// NewNewChunk creates an empty chunk builder with the given capacity hint.
func NewNewChunk(capacity int) *NewChunk {
	return &NewChunk{data: make([]float64, 0, capacity)}
}

// AddNum appends a value.
func (nc *NewChunk) AddNum(d float64) { nc.data = append(nc.data, d) }

// AddNA appends a missing value.
func (nc *NewChunk) AddNA() { nc.data = append(nc.data, NA) }

// Len returns the number of rows added so far.
func (nc *NewChunk) Len() int { return len(nc.data) }

// Data hands over the accumulated rows. The builder must not be used afterwards.
func (nc *NewChunk) Data() []float64 {
	ret := nc.data
	nc.data = nil
	return ret
}
