// Package session keeps named frames and evaluates expressions and scripts against them.
package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/json"
	"sigs.k8s.io/yaml"

	"github.com/l7mp/frameops/internal/dag"
	"github.com/l7mp/frameops/pkg/exec"
	"github.com/l7mp/frameops/pkg/expression"
	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/prim"
	"github.com/l7mp/frameops/pkg/store"
	"github.com/l7mp/frameops/pkg/value"
)

// Script is a set of named assignments.
type Script map[string]expression.Expression

// Result is the outcome of a single assignment.
type Result struct {
	Name       string
	Expression expression.Expression
	Value      value.Value
}

// Options configure a session.
type Options struct {
	ChunkSize   int
	Parallelism int
	Seed        int64
	// Store defaults to an in-memory store.
	Store   store.Store
	Metrics *exec.Metrics
	Logger  logr.Logger
}

// Session is a named collection of frames plus the executor and the store operators run with.
// It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	frames   map[string]*frame.Frame
	executor exec.Executor
	store    store.Store
	opts     Options
	log      logr.Logger
}

// New creates an empty session.
func New(opts Options) *Session {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = frame.DefaultChunkSize
	}
	if opts.Store == nil {
		opts.Store = store.NewStore()
	}

	return &Session{
		frames: map[string]*frame.Frame{},
		executor: exec.NewExecutor(exec.Options{
			Parallelism: opts.Parallelism,
			Metrics:     opts.Metrics,
			Log:         opts.Logger,
		}),
		store: opts.Store,
		opts:  opts,
		log:   opts.Logger.WithName("session"),
	}
}

// Store returns the store the vecs of the session are registered with.
func (s *Session) Store() store.Store { return s.store }

// AddFrame registers a frame under a name, replacing any frame of the same name.
func (s *Session) AddFrame(name string, f *frame.Frame) error {
	if name == "" {
		return fmt.Errorf("empty frame name")
	}
	if err := store.PutFrame(s.store, f); err != nil {
		return err
	}

	s.mu.Lock()
	s.frames[name] = f
	s.mu.Unlock()

	s.log.V(2).Info("frame added", "name", name, "rows", f.NumRows(), "cols", f.NumCols())

	return nil
}

// Frame returns a named frame.
func (s *Session) Frame(name string) (*frame.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[name]
	return f, ok
}

// Names returns the sorted names of the frames.
func (s *Session) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]string, 0, len(s.frames))
	for n := range s.frames {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// Eval evaluates an expression against the frames of the session.
func (s *Session) Eval(ctx context.Context, e *expression.Expression) (value.Value, error) {
	ectx := expression.EvalCtx{
		EvalCtx: prim.EvalCtx{
			Context:   ctx,
			Executor:  s.executor,
			Store:     s.store,
			ChunkSize: s.opts.ChunkSize,
			Seed:      s.opts.Seed,
			Log:       s.opts.Logger.WithName("eval"),
		},
		Frames: s.Frame,
	}
	return e.Evaluate(ectx)
}

// Run evaluates the assignments of a script so that every assignment comes after the
// assignments whose names it references. Frame results are added to the session under the
// name of the assignment. An assignment referencing its own name, directly or through others,
// is a cycle.
func (s *Session) Run(ctx context.Context, script Script) ([]Result, error) {
	order, err := Order(script)
	if err != nil {
		return nil, err
	}

	s.log.V(2).Info("running script", "order", order)

	ret := make([]Result, 0, len(order))
	for _, name := range order {
		exp := script[name]
		v, err := s.Eval(ctx, &exp)
		if err != nil {
			return ret, fmt.Errorf("assignment %q: %w", name, err)
		}

		if f, ok := v.(value.Frame); ok {
			if err := s.AddFrame(name, f.Frame); err != nil {
				return ret, fmt.Errorf("assignment %q: %w", name, err)
			}
		}

		ret = append(ret, Result{Name: name, Expression: exp, Value: v})
	}

	return ret, nil
}

// Order returns the assignment names of a script in evaluation order. Independent assignments
// are ordered by name.
func Order(script Script) ([]string, error) {
	return scriptGraph(script).TopoSort()
}

// Entries returns the assignments that do not consume the result of another assignment, ordered
// by name.
func Entries(script Script) []string {
	return scriptGraph(script).Roots()
}

// scriptGraph links each assignment to the assignments consuming its result.
func scriptGraph(script Script) *dag.Graph {
	names := make([]string, 0, len(script))
	for n := range script {
		names = append(names, n)
	}
	sort.Strings(names)

	g := dag.New()
	for _, n := range names {
		g.AddNode(n)
	}
	for _, n := range names {
		exp := script[n]
		for _, ref := range exp.FrameRefs() {
			if g.HasNode(ref) {
				g.AddEdge(ref, n)
			}
		}
	}

	return g
}

// LoadScript parses a YAML or JSON map of assignment names to expressions.
func LoadScript(doc []byte) (Script, error) {
	j, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	script := Script{}
	if err := json.Unmarshal(j, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	return script, nil
}
