// Package expression implements the JSON call trees that drive the primitives: literals, frame
// references and operator calls, and their evaluation into values.
package expression

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/prim"
	"github.com/l7mp/frameops/pkg/util"
	"github.com/l7mp/frameops/pkg/value"
)

// Reserved operators. Every other operator names a primitive with a leading '@'.
const (
	OpNum   = "@num"
	OpStr   = "@str"
	OpNull  = "@null"
	OpList  = "@list"
	OpFrame = "@frame"
)

// FrameLookup resolves frame references.
type FrameLookup func(name string) (*frame.Frame, bool)

// EvalCtx is the environment expressions are evaluated in.
type EvalCtx struct {
	prim.EvalCtx
	Frames FrameLookup
}

// Expression is a node of a call tree. Literals keep their payload in Literal, operator calls
// keep their operand in Arg: a single expression for unary operators and a list expression
// otherwise.
type Expression struct {
	Op      string
	Arg     *Expression
	Literal any
}

// IsLiteral reports whether the expression is a number, string, null or list literal.
func (e *Expression) IsLiteral() bool {
	switch e.Op {
	case OpNum, OpStr, OpNull, OpList:
		return true
	}
	return false
}

// Operands returns the sub-expressions of the node: the list items of a list literal or of the
// list operand of a multi-operand call, the single operand of a unary call, nothing otherwise.
func (e *Expression) Operands() []Expression {
	switch e.Op {
	case OpNum, OpStr, OpNull, OpFrame:
		return nil
	case OpList:
		es, _ := e.Literal.([]Expression)
		return es
	}

	if e.Arg == nil {
		return nil
	}
	if p, ok := prim.Lookup(e.Op[1:]); ok && p.Arity() > 1 && e.Arg.Op == OpList {
		return e.Arg.Operands()
	}
	return []Expression{*e.Arg}
}

// FrameRefs returns the names of the frames referenced anywhere in the expression, in first
// occurrence order.
func (e *Expression) FrameRefs() []string {
	seen := map[string]bool{}
	ret := []string{}
	var walk func(x *Expression)
	walk = func(x *Expression) {
		if x.Op == OpFrame {
			if name, ok := x.Literal.(string); ok && !seen[name] {
				seen[name] = true
				ret = append(ret, name)
			}
			return
		}
		if x.Op == OpList {
			es, _ := x.Literal.([]Expression)
			for i := range es {
				walk(&es[i])
			}
			return
		}
		if x.Arg != nil {
			walk(x.Arg)
		}
	}
	walk(e)
	return ret
}

func (e *Expression) Evaluate(ctx EvalCtx) (value.Value, error) {
	if len(e.Op) == 0 || e.Op[0] != '@' {
		return nil, NewExpressionError(e, fmt.Errorf("invalid operator %q", e.Op))
	}

	switch e.Op {
	case OpNum:
		d, ok := e.Literal.(float64)
		if !ok {
			return nil, NewExpressionError(e, fmt.Errorf("expected a number literal, got %T", e.Literal))
		}
		return value.Num(d), nil

	case OpStr:
		s, ok := e.Literal.(string)
		if !ok {
			return nil, NewExpressionError(e, fmt.Errorf("expected a string literal, got %T", e.Literal))
		}
		return value.NewStr(s), nil

	case OpNull:
		return value.NullStr(), nil

	case OpList:
		es, ok := e.Literal.([]Expression)
		if !ok {
			return nil, NewExpressionError(e, fmt.Errorf("expected an expression list, got %T", e.Literal))
		}

		vs := make([]value.Value, len(es))
		for i := range es {
			v, err := es[i].Evaluate(ctx)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}

		ret, err := AsValueList(vs)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", util.Stringify(ret))

		return ret, nil

	case OpFrame:
		name, ok := e.Literal.(string)
		if !ok {
			return nil, NewExpressionError(e, fmt.Errorf("expected a frame name, got %T", e.Literal))
		}
		if ctx.Frames == nil {
			return nil, NewExpressionError(e, NewUnknownFrameError(name))
		}
		f, ok := ctx.Frames(name)
		if !ok {
			return nil, NewExpressionError(e, NewUnknownFrameError(name))
		}
		return value.NewFrame(f), nil
	}

	p, ok := prim.Lookup(e.Op[1:])
	if !ok {
		return nil, NewExpressionError(e, NewUnknownOperatorError(e.Op))
	}

	args, err := e.operands(p.Arity())
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	vs := make([]value.Value, len(args))
	for i := range args {
		v, err := args[i].Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}

	ret, err := p.Apply(ctx.EvalCtx, vs)
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret.Type().String())

	return ret, nil
}

// operands checks the arity of a call: a unary call takes its argument as is, a call with more
// operands takes a list literal of exactly that length.
func (e *Expression) operands(arity int) ([]Expression, error) {
	if e.Arg == nil {
		if arity == 0 {
			return []Expression{}, nil
		}
		return nil, prim.NewInvalidArgumentError(e.Op[1:], fmt.Sprintf("expected %d arguments, got none", arity))
	}

	if arity == 1 {
		return []Expression{*e.Arg}, nil
	}

	if e.Arg.Op != OpList {
		return nil, prim.NewInvalidArgumentError(e.Op[1:], fmt.Sprintf("expected a list of %d arguments", arity))
	}
	es, ok := e.Arg.Literal.([]Expression)
	if !ok || len(es) != arity {
		return nil, prim.NewInvalidArgumentError(e.Op[1:], fmt.Sprintf("expected %d arguments, got %d",
			arity, len(es)))
	}
	return es, nil
}
