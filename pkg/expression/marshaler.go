package expression

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/util/json"
)

func (e *Expression) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	// null would unmarshal silently into any of the targets below
	if bytes.Equal(b, []byte("null")) {
		*e = NewNullExpression()
		return nil
	}

	// try to unmarshal as a number literal
	fv := 0.0
	if err := json.Unmarshal(b, &fv); err == nil {
		*e = NewNumExpression(fv)
		return nil
	}

	// try to unmarshal as a string literal
	sv := ""
	if err := json.Unmarshal(b, &sv); err == nil {
		*e = NewStrExpression(sv)
		return nil
	}

	// try to unmarshal as a list literal
	lv := []Expression{}
	if err := json.Unmarshal(b, &lv); err == nil {
		*e = NewListExpression(lv...)
		return nil
	}

	// try to unmarshal as an operator: a map with a single key that starts with @
	cv := map[string]Expression{}
	if err := json.Unmarshal(b, &cv); err == nil && len(cv) == 1 {
		op := ""
		for k := range cv {
			op = k
		}
		if len(op) > 1 && op[0] == '@' {
			arg := cv[op]

			// frame references take the name literally
			if op == OpFrame {
				name, ok := arg.Literal.(string)
				if arg.Op != OpStr || !ok {
					return NewUnmarshalError("frame reference", string(b))
				}
				*e = NewFrameExpression(name)
				return nil
			}

			switch op {
			case OpNum, OpStr, OpNull, OpList:
				return NewUnmarshalError(fmt.Sprintf("reserved operator %s", op), string(b))
			}

			*e = Expression{Op: op, Arg: &arg}
			return nil
		}
	}

	return NewUnmarshalError("expression", string(b))
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	switch e.Op {
	case OpNum:
		return json.Marshal(e.Literal)

	case OpStr:
		s, ok := e.Literal.(string)
		if !ok {
			return nil, fmt.Errorf("invalid string literal: %#v", e)
		}
		return json.Marshal(s)

	case OpNull:
		return []byte("null"), nil

	case OpList:
		es, ok := e.Literal.([]Expression)
		if !ok {
			return nil, fmt.Errorf("invalid expression list: %#v", e)
		}
		return json.Marshal(es)

	case OpFrame:
		return json.Marshal(map[string]any{OpFrame: e.Literal})

	default:
		// everything else is a valid op
		if len(e.Op) < 2 || e.Op[0] != '@' {
			return nil, fmt.Errorf("expected an op starting with @, got %#v", e)
		}
		if e.Arg == nil {
			return json.Marshal(map[string]any{e.Op: nil})
		}

		return json.Marshal(map[string]*Expression{e.Op: e.Arg})
	}
}

func (e *Expression) String() string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%s(%v)", e.Op, e.Literal)
	}
	return string(b)
}
