package prim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/value"
)

// NRow returns the row count of a frame.
type NRow struct{ BaseOp }

func NewNRow() *NRow { return &NRow{BaseOp: NewBaseOp("nrow", 1)} }

func (op *NRow) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}
	return value.Num(f.NumRows()), nil
}

// Runif creates a column of uniform random numbers in [0,1) with the layout of its argument.
// Each partition draws from its own generator seeded by the seed and the partition start, so the
// result does not depend on how partitions are scheduled. Seed -1 picks the configured default
// seed, or a random one.
type Runif struct{ BaseOp }

func NewRunif() *Runif { return &Runif{BaseOp: NewBaseOp("runif", 2)} }

func (op *Runif) Apply(ctx EvalCtx, args []value.Value) (value.Value, error) {
	if err := op.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	f, err := op.frameArg(args[0])
	if err != nil {
		return nil, err
	}
	if f.NumCols() == 0 {
		return nil, NewInvalidArgumentError(op.name, "frame has no columns")
	}
	d, err := op.numArg(args[1])
	if err != nil {
		return nil, err
	}

	if math.IsNaN(d) || d < math.MinInt64 || d >= math.MaxInt64 {
		return nil, NewInvalidArgumentError(op.name, fmt.Sprintf("seed %v is out of range", d))
	}
	seed := uint64(int64(d))
	if int64(d) == -1 {
		seed = rand.Uint64()
		if ctx.Seed != 0 {
			seed = uint64(ctx.Seed)
		}
	}
	ctx.Log.V(4).Info("runif", "seed", seed, "rows", f.NumRows())

	out, err := ctx.Executor.Map(ctx.context(), 1, []*frame.Vec{f.AnyVec()}, func(in []frame.Chunk, out []*frame.NewChunk) error {
		rng := rand.New(rand.NewPCG(seed, uint64(in[0].Start)))
		for r := 0; r < in[0].Len(); r++ {
			out[0].AddNum(rng.Float64())
		}
		return nil
	})
	if err != nil {
		return nil, wrapExecError(op.name, err)
	}

	return newFrame(op.name, []string{"rnd"}, out)
}
