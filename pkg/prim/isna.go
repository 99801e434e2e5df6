package prim

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// IsNA marks missing values with 1 and everything else with 0.
type IsNA struct{ BaseOp }

func NewIsNA() *IsNA { return &IsNA{BaseOp: NewBaseOp("is.na", 1)} }

func (op *IsNA) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}

	switch x := args[0].(type) {
	case value.Num:
		return value.Num(indicator(frame.IsNA(float64(x)))), nil

	case value.Str:
		return value.Num(indicator(x.IsNull())), nil

	case value.Frame:
		if x.Frame == nil {
			return nil, NewInternalError(op.name, "nil frame")
		}
		if x.NumCols() == 0 {
			return x, nil
		}

		// categorical columns hold codes, so the NA test needs no domain lookup
		vecs, err := mapFrame(ctx, op.name, x.Frame, x.NumCols(), func(in []frame.Chunk, out []*frame.NewChunk) error {
			for c := range in {
				for r := 0; r < in[c].Len(); r++ {
					out[c].AddNum(indicator(in[c].IsNA(r)))
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return newFrame(op.name, x.Names(), vecs)

	default:
		return nil, NewInternalError(op.name, fmt.Sprintf("unexpected argument of type %s", x.Type()))
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
