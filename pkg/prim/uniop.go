package prim

import (
	"fmt"
	"math"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// UnaryFunc is a pure function of one number.
type UnaryFunc func(float64) float64

var unaryOps = []struct {
	name string
	fn   UnaryFunc
}{
	{"ceiling", math.Ceil},
	{"floor", math.Floor},
	{"!!", not},
	{"trunc", trunc},
	{"cos", math.Cos},
	{"sin", math.Sin},
	{"tan", math.Tan},
	{"acos", math.Acos},
	{"asin", math.Asin},
	{"atan", math.Atan},
	{"cosh", math.Cosh},
	{"sinh", math.Sinh},
	{"tanh", math.Tanh},
	{"acosh", math.Acosh},
	{"asinh", math.Asinh},
	{"atanh", math.Atanh},
	{"cospi", func(d float64) float64 { return math.Cos(math.Pi * d) }},
	{"sinpi", func(d float64) float64 { return math.Sin(math.Pi * d) }},
	{"tanpi", func(d float64) float64 { return math.Tan(math.Pi * d) }},
	{"abs", math.Abs},
	{"sign", sign},
	{"sqrt", math.Sqrt},
	{"log", math.Log},
	{"log10", math.Log10},
	{"log2", func(d float64) float64 { return math.Log(d) / math.Log(2) }},
	{"log1p", math.Log1p},
	{"exp", math.Exp},
	{"expm1", math.Expm1},
	{"gamma", math.Gamma},
	{"lgamma", lgamma},
	{"digamma", digamma},
	{"trigamma", trigamma},
}

// NaN is not zero, so !!NaN is 0.
func not(d float64) float64 {
	if d == 0 {
		return 1
	}
	return 0
}

func trunc(d float64) float64 {
	if d >= 0 {
		return math.Floor(d)
	}
	return math.Ceil(d)
}

// sign follows IEEE signum: signed zeros and NaN are returned as is.
func sign(d float64) float64 {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return d
	}
}

// UniOp is a primitive that applies a pure numeric function elementwise.
type UniOp struct {
	BaseOp
	fn UnaryFunc
}

var _ Prim = &UniOp{}

func NewUniOp(name string, fn UnaryFunc) *UniOp {
	return &UniOp{BaseOp: NewBaseOp(name, 1), fn: fn}
}

func (op *UniOp) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	return Elementwise(ctx, op.name, op.fn, args[0])
}

// Elementwise applies fn to a number or to every cell of a frame. A frame result has the shape
// and the column names of the input, and every column is numeric.
func Elementwise(ctx EvalCtx, name string, fn UnaryFunc, v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Num:
		return value.Num(fn(float64(x))), nil

	case value.Frame:
		if x.Frame == nil {
			return nil, NewInternalError(name, "nil frame")
		}
		if x.NumCols() == 0 {
			return x, nil
		}

		nCols := x.NumCols()
		vecs, err := mapFrame(ctx, name, x.Frame, nCols, func(in []frame.Chunk, out []*frame.NewChunk) error {
			for c := range in {
				for r := 0; r < in[c].Len(); r++ {
					out[c].AddNum(fn(in[c].At(r)))
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		return newFrame(name, x.Names(), vecs)

	case value.Str:
		return nil, NewUnsupportedOperationError(name, "not implemented for strings")

	default:
		return nil, NewInternalError(name, fmt.Sprintf("unexpected argument of type %s", v.Type()))
	}
}
