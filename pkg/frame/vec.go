package frame

import (
	"fmt"
	"math"
)

// DefaultChunkSize is the number of rows per chunk used when no chunk size is configured.
const DefaultChunkSize = 4096

// Vec is an immutable column of float64 cells split into chunks.
type Vec struct {
	key    Key
	chunks [][]float64
	espc   []int64 // element-start-per-chunk, len(chunks)+1 entries
	domain []string
	max    float64
}

// NewVec creates a vec from a copy of the given values, partitioned into chunks of chunkSize rows.
// A non-nil domain makes the vec categorical.
func NewVec(data []float64, domain []string, chunkSize int) (*Vec, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	chunks := make([][]float64, 0, len(data)/chunkSize+1)
	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))
		c := make([]float64, end-start)
		copy(c, data[start:end])
		chunks = append(chunks, c)
	}

	return NewVecFromChunks(chunks, domain)
}

// NewVecFromChunks creates a vec that takes ownership of the given chunks.
func NewVecFromChunks(chunks [][]float64, domain []string) (*Vec, error) {
	v := &Vec{key: NewKey(), chunks: chunks}
	v.espc = make([]int64, len(chunks)+1)
	for i, c := range chunks {
		v.espc[i+1] = v.espc[i] + int64(len(c))
	}
	v.max = rollupMax(chunks)

	if err := v.setDomain(domain); err != nil {
		return nil, err
	}

	return v, nil
}

// NewVecWithLayout creates a vec with the same chunk layout as the given one.
func NewVecWithLayout(layout *Vec, data []float64, domain []string) (*Vec, error) {
	if int64(len(data)) != layout.Len() {
		return nil, newFrameError(fmt.Sprintf("layout mismatch: expected %d rows, got %d",
			layout.Len(), len(data)), nil)
	}

	chunks := make([][]float64, layout.NChunks())
	for i := range chunks {
		c := make([]float64, layout.espc[i+1]-layout.espc[i])
		copy(c, data[layout.espc[i]:layout.espc[i+1]])
		chunks[i] = c
	}

	return NewVecFromChunks(chunks, domain)
}

func rollupMax(chunks [][]float64) float64 {
	ret := math.NaN()
	for _, c := range chunks {
		for _, d := range c {
			if math.IsNaN(d) {
				continue
			}
			if math.IsNaN(ret) || d > ret {
				ret = d
			}
		}
	}
	return ret
}

// setDomain validates and installs a domain. Only called on vecs under construction.
func (v *Vec) setDomain(domain []string) error {
	if domain == nil {
		v.domain = nil
		return nil
	}

	seen := make(map[string]bool, len(domain))
	for _, l := range domain {
		if seen[l] {
			return newFrameError(fmt.Sprintf("duplicate level %q in domain", l), nil)
		}
		seen[l] = true
	}

	for _, c := range v.chunks {
		for _, d := range c {
			if math.IsNaN(d) {
				continue
			}
			if d != math.Trunc(d) || d < 0 || d >= float64(len(domain)) {
				return newFrameError(fmt.Sprintf("invalid categorical code %v for a domain of %d levels",
					d, len(domain)), nil)
			}
		}
	}

	v.domain = make([]string, len(domain))
	copy(v.domain, domain)

	return nil
}

// WithDomain returns a vec that shares the storage and the key of this vec but carries a new
// domain. A nil domain yields a plain numeric vec.
func (v *Vec) WithDomain(domain []string) (*Vec, error) {
	ret := &Vec{key: v.key, chunks: v.chunks, espc: v.espc, max: v.max}
	if err := ret.setDomain(domain); err != nil {
		return nil, err
	}
	return ret, nil
}

// WithKey returns a vec that shares the storage and the domain of this vec under another key.
func (v *Vec) WithKey(key Key) *Vec {
	return &Vec{key: key, chunks: v.chunks, espc: v.espc, domain: v.domain, max: v.max}
}

// Key returns the identity of the vec.
func (v *Vec) Key() Key { return v.key }

// Len returns the number of rows.
func (v *Vec) Len() int64 { return v.espc[len(v.espc)-1] }

// NChunks returns the number of chunks.
func (v *Vec) NChunks() int { return len(v.chunks) }

// Chunk returns a read-only view of the i-th chunk.
func (v *Vec) Chunk(i int) Chunk { return Chunk{Start: v.espc[i], data: v.chunks[i]} }

// Layout returns the start row of each chunk plus the total row count.
func (v *Vec) Layout() []int64 {
	ret := make([]int64, len(v.espc))
	copy(ret, v.espc)
	return ret
}

// SameLayout reports whether two vecs are partitioned identically.
func (v *Vec) SameLayout(o *Vec) bool {
	if len(v.espc) != len(o.espc) {
		return false
	}
	for i := range v.espc {
		if v.espc[i] != o.espc[i] {
			return false
		}
	}
	return true
}

// At returns the value at a global row index.
func (v *Vec) At(row int64) float64 {
	// chunks are few, linear search is fine
	for i := 0; i < len(v.chunks); i++ {
		if row < v.espc[i+1] {
			return v.chunks[i][row-v.espc[i]]
		}
	}
	panic(fmt.Sprintf("row %d out of range [0,%d)", row, v.Len()))
}

// IsNA reports whether the value at a global row index is missing.
func (v *Vec) IsNA(row int64) bool { return math.IsNaN(v.At(row)) }

// Values returns a copy of all cells in row order.
func (v *Vec) Values() []float64 {
	ret := make([]float64, 0, v.Len())
	for _, c := range v.chunks {
		ret = append(ret, c...)
	}
	return ret
}

// Max returns the largest non-NA value, or NaN if every cell is NA.
func (v *Vec) Max() float64 { return v.max }

// IsCategorical reports whether the vec carries a domain.
func (v *Vec) IsCategorical() bool { return v.domain != nil }

// Domain returns a copy of the domain, nil for non-categorical vecs.
func (v *Vec) Domain() []string {
	if v.domain == nil {
		return nil
	}
	ret := make([]string, len(v.domain))
	copy(ret, v.domain)
	return ret
}

// Cardinality returns the number of levels, 0 for non-categorical vecs.
func (v *Vec) Cardinality() int { return len(v.domain) }

// Label returns the level of a categorical cell. The bool is false for NA cells and
// non-categorical vecs.
func (v *Vec) Label(row int64) (string, bool) {
	d := v.At(row)
	if v.domain == nil || math.IsNaN(d) {
		return "", false
	}
	return v.domain[int(d)], true
}
