package expression

import (
	"fmt"

	"github.com/l7mp/frameops/pkg/prim"
	"github.com/l7mp/frameops/pkg/value"
)

// AsValueList turns the evaluated items of a list literal into a number list or a string list.
// The empty list is a string list.
func AsValueList(vs []value.Value) (value.Value, error) {
	if len(vs) == 0 {
		return value.StrList{}, nil
	}

	switch vs[0].(type) {
	case value.Num:
		ret := make(value.NumList, len(vs))
		for i, v := range vs {
			n, ok := v.(value.Num)
			if !ok {
				return nil, prim.NewInvalidArgumentError("list",
					fmt.Sprintf("mixed list: item %d is a %s, expected a number", i, v.Type()))
			}
			ret[i] = float64(n)
		}
		return ret, nil

	case value.Str:
		ret := make(value.StrList, len(vs))
		for i, v := range vs {
			s, ok := v.(value.Str)
			if !ok || s.IsNull() {
				return nil, prim.NewInvalidArgumentError("list",
					fmt.Sprintf("mixed list: item %d is %s, expected a string", i, v))
			}
			ret[i] = s.Get()
		}
		return ret, nil

	default:
		return nil, prim.NewInvalidArgumentError("list",
			fmt.Sprintf("lists hold numbers or strings, got a %s", vs[0].Type()))
	}
}

// AsLiteral converts a decoded JSON or YAML scalar or list into a literal expression.
func AsLiteral(d any) (Expression, error) {
	switch x := d.(type) {
	case nil:
		return NewNullExpression(), nil
	case float64:
		return NewNumExpression(x), nil
	case float32:
		return NewNumExpression(float64(x)), nil
	case int:
		return NewNumExpression(float64(x)), nil
	case int64:
		return NewNumExpression(float64(x)), nil
	case string:
		return NewStrExpression(x), nil
	case []any:
		es := make([]Expression, len(x))
		for i := range x {
			e, err := AsLiteral(x[i])
			if err != nil {
				return Expression{}, err
			}
			es[i] = e
		}
		return NewListExpression(es...), nil
	default:
		return Expression{}, fmt.Errorf("cannot create a literal expression from %#v", d)
	}
}
