package prim

import (
	"fmt"
	"slices"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// NLevels returns the number of levels of a single column, 0 for non-categorical columns.
type NLevels struct{ BaseOp }

func NewNLevels() *NLevels { return &NLevels{BaseOp: NewBaseOp("nlevels", 1)} }

func (op *NLevels) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.singleColumnArg(args[0])
	if err != nil {
		return nil, err
	}
	return value.Num(f.Vec(0).Cardinality()), nil
}

// Levels lists the codes of every column side by side. Columns with shorter or no domain are
// padded with NA to the length of the longest domain.
type Levels struct{ BaseOp }

func NewLevels() *Levels { return &Levels{BaseOp: NewBaseOp("levels", 1)} }

func (op *Levels) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}

	rows := 0
	for _, v := range f.Vecs() {
		rows = max(rows, v.Cardinality())
	}

	vecs := make([]*frame.Vec, f.NumCols())
	for i, v := range f.Vecs() {
		dom := v.Domain()
		data := make([]float64, rows)
		for j := range data {
			if j < len(dom) {
				data[j] = float64(j)
			} else {
				data[j] = frame.NA
			}
		}

		vecs[i], err = frame.NewVec(data, dom, ctx.ChunkSize)
		if err != nil {
			return nil, NewInternalError(op.name, err.Error())
		}
	}

	return newFrame(op.name, f.Names(), vecs)
}

// SetLevel overwrites every cell of a categorical column with the code of a level.
type SetLevel struct{ BaseOp }

func NewSetLevel() *SetLevel { return &SetLevel{BaseOp: NewBaseOp("setLevel", 2)} }

func (op *SetLevel) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.singleColumnArg(args[0])
	if err != nil {
		return nil, err
	}
	lvl, err := op.strArg(args[1])
	if err != nil {
		return nil, err
	}

	v := f.Vec(0)
	if !v.IsCategorical() {
		return nil, NewInvalidArgumentError(op.name, "cannot set the level on a non-categorical column")
	}
	dom := v.Domain()
	idx := slices.Index(dom, lvl)
	if idx < 0 {
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("level %q not found in the domain", lvl))
	}

	code := float64(idx)
	out, err := mapFrame(ctx, op.name, f, 1, func(in []frame.Chunk, out []*frame.NewChunk) error {
		for r := 0; r < in[0].Len(); r++ {
			out[0].AddNum(code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ret, err := out[0].WithDomain(dom)
	if err != nil {
		return nil, NewInternalError(op.name, err.Error())
	}

	return newFrame(op.name, f.Names(), []*frame.Vec{ret})
}

// SetDomain replaces the domain of a categorical column. A null argument clears the domain.
type SetDomain struct{ BaseOp }

func NewSetDomain() *SetDomain { return &SetDomain{BaseOp: NewBaseOp("setDomain", 2)} }

func (op *SetDomain) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.singleColumnArg(args[0])
	if err != nil {
		return nil, err
	}

	var newDom []string
	switch x := args[1].(type) {
	case value.StrList:
		newDom = []string(x)
		if newDom == nil {
			newDom = []string{}
		}
	case value.Str:
		if !x.IsNull() {
			newDom = []string{x.Get()}
		}
	default:
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("expected a list of strings, got %s",
			args[1].Type()))
	}

	v := f.Vec(0)
	if !v.IsCategorical() {
		return nil, NewInvalidArgumentError(op.name, "expected a categorical column")
	}

	res := v
	if newDom != nil && len(newDom) != v.Cardinality() {
		if res, err = op.recode(ctx, v, len(newDom)); err != nil {
			return nil, err
		}
	}

	res, err = res.WithDomain(newDom)
	if err != nil {
		return nil, NewInvalidArgumentError(op.name, err.Error())
	}

	if ctx.Store != nil {
		if err := ctx.Store.Put(res); err != nil {
			return nil, NewInternalError(op.name, fmt.Sprintf("failed to register vec %s: %s",
				res.Key(), err))
		}
	}

	ctx.Log.V(4).Info("domain replaced", "vec", res.Key(), "levels", len(newDom))

	return newFrame(op.name, f.Names(), []*frame.Vec{res})
}

// recode rescans the codes actually present in v and maps each of them to its rank, so that the
// codes become dense. The result keeps the key of v.
func (op *SetDomain) recode(ctx EvalCtx, v *frame.Vec, want int) (*frame.Vec, error) {
	codes, err := ctx.Executor.CollectDomain(ctx.context(), v)
	if err != nil {
		return nil, wrapExecError(op.name, err)
	}
	if len(codes) != want {
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("number of replacement levels must "+
			"equal the current number of levels: %d != %d", len(codes), want))
	}

	out, err := ctx.Executor.Map(ctx.context(), 1, []*frame.Vec{v}, func(in []frame.Chunk, out []*frame.NewChunk) error {
		for r := 0; r < in[0].Len(); r++ {
			if in[0].IsNA(r) {
				out[0].AddNA()
				continue
			}
			idx, ok := slices.BinarySearch(codes, in[0].At8(r))
			if !ok {
				return NewInternalError(op.name, fmt.Sprintf("code %d missing from the collected domain",
					in[0].At8(r)))
			}
			out[0].AddNum(float64(idx))
		}
		return nil
	})
	if err != nil {
		return nil, wrapExecError(op.name, err)
	}

	return out[0].WithKey(v.Key()), nil
}
