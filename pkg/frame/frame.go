package frame

import (
	"fmt"
)

// Frame is an immutable, ordered collection of uniquely named vecs of equal length.
type Frame struct {
	names []string
	vecs  []*Vec
}

// NewFrame creates a frame. A nil names slice yields the default names C1, C2, ...
func NewFrame(names []string, vecs []*Vec) (*Frame, error) {
	if names == nil {
		names = DefaultNames(len(vecs))
	}

	if len(names) != len(vecs) {
		return nil, newFrameError(fmt.Sprintf("got %d names for %d vecs", len(names), len(vecs)), nil)
	}

	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if seen[n] {
			return nil, newFrameError(fmt.Sprintf("duplicate column name %q", n), nil)
		}
		seen[n] = true

		if vecs[i] == nil {
			return nil, newFrameError(fmt.Sprintf("nil vec for column %q", n), nil)
		}
		if vecs[i].Len() != vecs[0].Len() {
			return nil, newFrameError(fmt.Sprintf("column %q has %d rows, expected %d",
				n, vecs[i].Len(), vecs[0].Len()), nil)
		}
	}

	f := &Frame{names: make([]string, len(names)), vecs: make([]*Vec, len(vecs))}
	copy(f.names, names)
	copy(f.vecs, vecs)

	return f, nil
}

// DefaultNames returns the names C1..Cn.
func DefaultNames(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("C%d", i+1)
	}
	return ret
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.vecs) }

// NumRows returns the number of rows, 0 for a frame without columns.
func (f *Frame) NumRows() int64 {
	if len(f.vecs) == 0 {
		return 0
	}
	return f.vecs[0].Len()
}

// Names returns a copy of the column names.
func (f *Frame) Names() []string {
	ret := make([]string, len(f.names))
	copy(ret, f.names)
	return ret
}

// Name returns the name of the i-th column.
func (f *Frame) Name(i int) string { return f.names[i] }

// Vec returns the i-th column.
func (f *Frame) Vec(i int) *Vec { return f.vecs[i] }

// Vecs returns a copy of the column list.
func (f *Frame) Vecs() []*Vec {
	ret := make([]*Vec, len(f.vecs))
	copy(ret, f.vecs)
	return ret
}

// AnyVec returns the first column, or nil if the frame has no columns.
func (f *Frame) AnyVec() *Vec {
	if len(f.vecs) == 0 {
		return nil
	}
	return f.vecs[0]
}

// Find returns the index of a named column, -1 if not found.
func (f *Frame) Find(name string) int {
	for i, n := range f.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Domains returns the domain of every column (nil entries for non-categorical columns).
func (f *Frame) Domains() [][]string {
	ret := make([][]string, len(f.vecs))
	for i, v := range f.vecs {
		ret[i] = v.Domain()
	}
	return ret
}
