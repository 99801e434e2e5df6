package prim

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/l7mp/frameops/pkg/exec"
	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/store"
	"github.com/l7mp/frameops/pkg/value"
)

// EvalCtx is the environment a primitive runs in.
type EvalCtx struct {
	Context  context.Context
	Executor exec.Executor
	// Store receives vecs whose domain was replaced. Optional.
	Store store.Store
	// ChunkSize is used for vecs built outside a parallel pass.
	ChunkSize int
	// Seed replaces the random seed request -1 of runif when non-zero.
	Seed int64
	Log  logr.Logger
}

func (ctx EvalCtx) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// Prim is a primitive operator.
type Prim interface {
	// Name is the symbolic identifier of the operator.
	Name() string
	// Arity is the number of operands.
	Arity() int
	// Apply runs the operator on evaluated operands.
	Apply(ctx EvalCtx, args []value.Value) (value.Value, error)
}

// BaseOp carries the name and the arity of a primitive.
type BaseOp struct {
	name  string
	arity int
}

func NewBaseOp(name string, arity int) BaseOp {
	return BaseOp{name: name, arity: arity}
}

func (p *BaseOp) Name() string { return p.name }
func (p *BaseOp) Arity() int   { return p.arity }

// validateArgs re-checks the arity the caller is supposed to enforce.
func (p *BaseOp) validateArgs(ctx EvalCtx, args []value.Value) error {
	if ctx.Executor == nil {
		return NewInternalError(p.name, "no executor in evaluation context")
	}
	if len(args) != p.arity {
		return NewInvalidArgumentError(p.name, fmt.Sprintf("expected %d arguments, got %d",
			p.arity, len(args)))
	}
	return nil
}

func (p *BaseOp) frameArg(v value.Value) (*frame.Frame, error) {
	f, ok := v.(value.Frame)
	if !ok || f.Frame == nil {
		return nil, NewInvalidArgumentError(p.name, fmt.Sprintf("expected a frame, got %s", v.Type()))
	}
	return f.Frame, nil
}

func (p *BaseOp) singleColumnArg(v value.Value) (*frame.Frame, error) {
	f, err := p.frameArg(v)
	if err != nil {
		return nil, err
	}
	if f.NumCols() != 1 {
		return nil, NewInvalidArgumentError(p.name,
			fmt.Sprintf("expected a single column, got %d columns", f.NumCols()))
	}
	return f, nil
}

func (p *BaseOp) numArg(v value.Value) (float64, error) {
	n, ok := v.(value.Num)
	if !ok {
		return 0, NewInvalidArgumentError(p.name, fmt.Sprintf("expected a number, got %s", v.Type()))
	}
	return float64(n), nil
}

func (p *BaseOp) strArg(v value.Value) (string, error) {
	s, ok := v.(value.Str)
	if !ok || s.IsNull() {
		return "", NewInvalidArgumentError(p.name, fmt.Sprintf("expected a string, got %s", v))
	}
	return s.Get(), nil
}

// alignedVecs returns the columns of a frame re-partitioned to the layout of the first column
// where needed, so they can be mapped in a single pass.
func alignedVecs(f *frame.Frame) ([]*frame.Vec, error) {
	vecs := f.Vecs()
	for i := 1; i < len(vecs); i++ {
		if vecs[i].SameLayout(vecs[0]) {
			continue
		}
		v, err := frame.NewVecWithLayout(vecs[0], vecs[i].Values(), vecs[i].Domain())
		if err != nil {
			return nil, err
		}
		vecs[i] = v
	}
	return vecs, nil
}

// mapFrame runs fn over all columns of a frame and returns nOut result vecs.
func mapFrame(ctx EvalCtx, op string, f *frame.Frame, nOut int, fn exec.MapFunc) ([]*frame.Vec, error) {
	vecs, err := alignedVecs(f)
	if err != nil {
		return nil, NewInternalError(op, err.Error())
	}
	out, err := ctx.Executor.Map(ctx.context(), nOut, vecs, fn)
	if err != nil {
		return nil, wrapExecError(op, err)
	}
	return out, nil
}

func newFrame(op string, names []string, vecs []*frame.Vec) (value.Value, error) {
	f, err := frame.NewFrame(names, vecs)
	if err != nil {
		return nil, NewInternalError(op, err.Error())
	}
	return value.NewFrame(f), nil
}
