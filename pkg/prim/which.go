package prim

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// Which lists the 0-based positions of the cells equal to 1: column positions for a single row,
// global row positions for a single column.
type Which struct{ BaseOp }

func NewWhich() *Which { return &Which{BaseOp: NewBaseOp("which", 1)} }

func (op *Which) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}

	switch {
	case f.NumCols() == 0:
		return nil, NewInvalidArgumentError(op.name, "frame has no columns")
	case f.NumCols() == 1:
		return op.rows(ctx, f)
	case f.NumRows() == 1:
		return op.cols(ctx, f)
	default:
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("expected a single row or a single "+
			"column, got %d rows and %d columns", f.NumRows(), f.NumCols()))
	}
}

func (op *Which) cols(ctx EvalCtx, f *frame.Frame) (value.Value, error) {
	pos := []float64{}
	for i, v := range f.Vecs() {
		if v.At(0) == 1 {
			pos = append(pos, float64(i))
		}
	}

	v, err := frame.NewVec(pos, nil, ctx.ChunkSize)
	if err != nil {
		return nil, NewInternalError(op.name, err.Error())
	}
	return newFrame(op.name, nil, []*frame.Vec{v})
}

func (op *Which) rows(ctx EvalCtx, f *frame.Frame) (value.Value, error) {
	out, err := mapFrame(ctx, op.name, f, 1, func(in []frame.Chunk, out []*frame.NewChunk) error {
		c := in[0]
		for r := 0; r < c.Len(); r++ {
			if c.At(r) == 1 {
				out[0].AddNum(float64(c.Start + int64(r)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newFrame(op.name, nil, out)
}
