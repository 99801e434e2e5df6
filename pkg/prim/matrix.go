package prim

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// Transpose turns an n x m frame into an m x n frame. Categorical cells are transposed as codes.
type Transpose struct{ BaseOp }

func NewTranspose() *Transpose { return &Transpose{BaseOp: NewBaseOp("t", 1)} }

func (op *Transpose) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}

	n, m := int(f.NumRows()), f.NumCols()
	cols := make([][]float64, m)
	for j, v := range f.Vecs() {
		cols[j] = v.Values()
	}

	vecs := make([]*frame.Vec, n)
	for i := range vecs {
		row := make([]float64, m)
		for j := range row {
			row[j] = cols[j][i]
		}
		if vecs[i], err = frame.NewVec(row, nil, ctx.ChunkSize); err != nil {
			return nil, NewInternalError(op.name, err.Error())
		}
	}

	return newFrame(op.name, nil, vecs)
}

// MMult multiplies an n x k frame with a k x m frame. The right-hand side is materialized before
// the rows of the left-hand side are processed in parallel.
type MMult struct{ BaseOp }

func NewMMult() *MMult { return &MMult{BaseOp: NewBaseOp("x", 2)} }

func (op *MMult) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	a, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}
	b, err := op.frameArg(args[1])
	if err != nil {
		return nil, err
	}

	k, m := a.NumCols(), b.NumCols()
	if k == 0 {
		return nil, NewInvalidArgumentError(op.name, "left-hand side has no columns")
	}
	if int64(k) != b.NumRows() {
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("dimension mismatch: %d columns vs %d rows",
			k, b.NumRows()))
	}

	rhs := make([][]float64, m)
	for j, v := range b.Vecs() {
		rhs[j] = v.Values()
	}

	out, err := mapFrame(ctx, op.name, a, m, func(in []frame.Chunk, out []*frame.NewChunk) error {
		for r := 0; r < in[0].Len(); r++ {
			for j := 0; j < m; j++ {
				sum := 0.0
				for i := 0; i < k; i++ {
					sum += in[i].At(r) * rhs[j][i]
				}
				out[j].AddNum(sum)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return newFrame(op.name, nil, out)
}
