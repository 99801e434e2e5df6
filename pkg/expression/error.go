package expression

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/util"
)

// ExpressionDumpMaxLen bounds the length of expressions quoted in error messages.
const ExpressionDumpMaxLen = 256

type ErrUnmarshal = error

func NewUnmarshalError(kind, content string) ErrUnmarshal {
	return fmt.Errorf("JSON parsing error in %s at %q", kind, util.Truncate(content, ExpressionDumpMaxLen))
}

type ErrUnknownOperator = error

func NewUnknownOperatorError(op string) ErrUnknownOperator {
	return fmt.Errorf("unknown operator %q", op)
}

type ErrUnknownFrame = error

func NewUnknownFrameError(name string) ErrUnknownFrame {
	return fmt.Errorf("unknown frame %q", name)
}

type ErrExpression = error

func NewExpressionError(e *Expression, err error) ErrExpression {
	return fmt.Errorf("failed to evaluate %s expression %s: %w", e.Op,
		util.Truncate(e.String(), ExpressionDumpMaxLen), err)
}
