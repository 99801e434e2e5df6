package expression

func NewNumExpression(d float64) Expression { return Expression{Op: OpNum, Literal: d} }

func NewStrExpression(s string) Expression { return Expression{Op: OpStr, Literal: s} }

func NewNullExpression() Expression { return Expression{Op: OpNull} }

func NewListExpression(es ...Expression) Expression {
	if es == nil {
		es = []Expression{}
	}
	return Expression{Op: OpList, Literal: es}
}

// NewFrameExpression creates a reference to a named frame.
func NewFrameExpression(name string) Expression { return Expression{Op: OpFrame, Literal: name} }

// NewCallExpression creates a call of the named primitive. A single operand is passed as is,
// several operands are wrapped into a list.
func NewCallExpression(name string, args ...Expression) Expression {
	e := Expression{Op: "@" + name}
	switch len(args) {
	case 0:
	case 1:
		e.Arg = &args[0]
	default:
		l := NewListExpression(args...)
		e.Arg = &l
	}
	return e
}
