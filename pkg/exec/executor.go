package exec

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/l7mp/frameops/pkg/frame"
)

// MapFunc is the body of a parallel pass: in holds the chunks of one partition, one per input vec,
// out holds one builder per output vec.
type MapFunc func(in []frame.Chunk, out []*frame.NewChunk) error

// Executor runs data-parallel passes over vecs.
type Executor interface {
	// Map applies fn to every partition of the aligned input vecs in parallel and returns nOut
	// new numeric vecs built from the output partitions in partition order.
	Map(ctx context.Context, nOut int, in []*frame.Vec, fn MapFunc) ([]*frame.Vec, error)
	// CollectDomain scans a vec sequentially and returns the distinct non-NA integer codes in
	// [0, v.Max()] in ascending order.
	CollectDomain(ctx context.Context, v *frame.Vec) ([]int64, error)
}

// Options configure an executor.
type Options struct {
	// Parallelism limits the number of partitions processed at once, defaults to GOMAXPROCS.
	Parallelism int
	// Metrics is optional.
	Metrics *Metrics
	Log     logr.Logger
}

type executor struct {
	parallelism int
	metrics     *Metrics
	log         logr.Logger
}

var _ Executor = &executor{}

// NewExecutor creates an in-process executor.
func NewExecutor(opts Options) Executor {
	p := opts.Parallelism
	if p <= 0 {
		p = runtime.GOMAXPROCS(0)
	}
	return &executor{
		parallelism: p,
		metrics:     opts.Metrics,
		log:         opts.Log.WithName("executor"),
	}
}

func (e *executor) Map(ctx context.Context, nOut int, in []*frame.Vec, fn MapFunc) ([]*frame.Vec, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no input vecs", ErrLayout)
	}
	for i := 1; i < len(in); i++ {
		if !in[i].SameLayout(in[0]) {
			return nil, fmt.Errorf("%w: vec %d has layout %v, expected %v", ErrLayout, i,
				in[i].Layout(), in[0].Layout())
		}
	}

	nChunks := in[0].NChunks()
	outs := make([][][]float64, nChunks)

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(e.parallelism)

	for c := 0; c < nChunks; c++ {
		eg.Go(func() (err error) {
			if err := ectx.Err(); err != nil {
				return err
			}

			chunks := make([]frame.Chunk, len(in))
			for i, v := range in {
				chunks[i] = v.Chunk(c)
			}

			builders := make([]*frame.NewChunk, nOut)
			for j := range builders {
				builders[j] = frame.NewNewChunk(chunks[0].Len())
			}

			defer func() {
				if r := recover(); r != nil {
					err = NewPartitionError(chunks[0].Start, fmt.Errorf("panic: %v", r))
				}
			}()

			if err := fn(chunks, builders); err != nil {
				return NewPartitionError(chunks[0].Start, err)
			}

			// each goroutine owns its slot
			outs[c] = make([][]float64, nOut)
			for j, b := range builders {
				outs[c][j] = b.Data()
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		e.observe("map", 0, 0, err)
		return nil, err
	}

	ret := make([]*frame.Vec, nOut)
	for j := range ret {
		chunks := make([][]float64, nChunks)
		for c := range chunks {
			chunks[c] = outs[c][j]
		}
		v, err := frame.NewVecFromChunks(chunks, nil)
		if err != nil {
			e.observe("map", 0, 0, err)
			return nil, err
		}
		ret[j] = v
	}

	e.observe("map", nChunks, in[0].Len(), nil)
	e.log.V(4).Info("map ready", "inputs", len(in), "outputs", nOut, "partitions", nChunks,
		"rows", in[0].Len())

	return ret, nil
}

func (e *executor) CollectDomain(ctx context.Context, v *frame.Vec) ([]int64, error) {
	hi := v.Max()
	if math.IsNaN(hi) {
		e.observe("scan", 0, v.Len(), nil)
		return []int64{}, nil
	}
	if hi < 0 {
		err := fmt.Errorf("negative code %v in vec %s", hi, v.Key())
		e.observe("scan", 0, 0, err)
		return nil, err
	}

	seen := make([]bool, int64(hi)+1)
	for c := 0; c < v.NChunks(); c++ {
		if err := ctx.Err(); err != nil {
			e.observe("scan", 0, 0, err)
			return nil, err
		}

		chunk := v.Chunk(c)
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNA(i) {
				continue
			}
			code := chunk.At8(i)
			if code < 0 || code >= int64(len(seen)) {
				err := fmt.Errorf("code %d out of range [0,%d] in vec %s", code, len(seen)-1, v.Key())
				e.observe("scan", 0, 0, err)
				return nil, err
			}
			seen[code] = true
		}
	}

	ret := []int64{}
	for code, ok := range seen {
		if ok {
			ret = append(ret, int64(code))
		}
	}

	e.observe("scan", 0, v.Len(), nil)
	e.log.V(4).Info("scan ready", "vec", v.Key(), "rows", v.Len(), "distinct", len(ret))

	return ret, nil
}

func (e *executor) observe(kind string, partitions int, rows int64, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.Passes.WithLabelValues(kind).Inc()
	if err != nil {
		e.metrics.Failures.Inc()
		return
	}
	e.metrics.Partitions.Add(float64(partitions))
	e.metrics.Rows.Add(float64(rows))
}
