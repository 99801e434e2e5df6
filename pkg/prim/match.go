package prim

import (
	"fmt"
	"slices"

	"github.com/l7mp/frameops/pkg/exec"
	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// Match tests every row of a single column for membership in a sorted lookup table. The
// nomatch and incomparables operands are accepted and ignored.
type Match struct{ BaseOp }

func NewMatch() *Match { return &Match{BaseOp: NewBaseOp("match", 4)} }

func (op *Match) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.singleColumnArg(args[0])
	if err != nil {
		return nil, err
	}
	v := f.Vec(0)

	var fn exec.MapFunc
	switch table := args[1].(type) {
	case value.Num:
		fn = matchNums([]float64{float64(table)})
	case value.NumList:
		fn = matchNums(table)
	case value.Str:
		if table.IsNull() {
			return nil, NewInvalidArgumentError(op.name, "expected numbers or strings, got null")
		}
		if !v.IsCategorical() {
			return nil, NewInvalidArgumentError(op.name, "string lookup needs a categorical column")
		}
		fn = matchStrs([]string{table.Get()}, v.Domain())
	case value.StrList:
		if !v.IsCategorical() {
			return nil, NewInvalidArgumentError(op.name, "string lookup needs a categorical column")
		}
		fn = matchStrs(table, v.Domain())
	default:
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("expected numbers or strings, got %s",
			args[1].Type()))
	}

	out, err := mapFrame(ctx, op.name, f, 1, fn)
	if err != nil {
		return nil, err
	}

	return newFrame(op.name, f.Names(), out)
}

// matchNums compares stored cell values, codes for categorical columns.
func matchNums(table []float64) exec.MapFunc {
	return func(in []frame.Chunk, out []*frame.NewChunk) error {
		c := in[0]
		for r := 0; r < c.Len(); r++ {
			if c.IsNA(r) {
				out[0].AddNum(0)
				continue
			}
			_, found := binarySearchUlp(table, c.At(r))
			out[0].AddNum(indicator(found))
		}
		return nil
	}
}

func matchStrs(table, domain []string) exec.MapFunc {
	return func(in []frame.Chunk, out []*frame.NewChunk) error {
		c := in[0]
		for r := 0; r < c.Len(); r++ {
			if c.IsNA(r) {
				out[0].AddNum(0)
				continue
			}
			_, found := slices.BinarySearch(table, domain[c.At8(r)])
			out[0].AddNum(indicator(found))
		}
		return nil
	}
}
