// Package value defines the result of evaluating an operator: a number, a frame or a text, plus
// the literal number and string lists operators take as arguments.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/l7mp/frameops/pkg/frame"
)

// Type is the tag of a value.
type Type int

const (
	TypeNum Type = iota
	TypeFrame
	TypeStr
	TypeNumList
	TypeStrList
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeNum:
		return "number"
	case TypeFrame:
		return "frame"
	case TypeStr:
		return "string"
	case TypeNumList:
		return "number-list"
	case TypeStrList:
		return "string-list"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Value is a closed sum type: the only implementations are Num, Frame, Str, NumList and StrList.
type Value interface {
	isValue() // type marker method
	Type() Type
	fmt.Stringer
}

// Num is a scalar number.
type Num float64

func (Num) isValue()   {}
func (Num) Type() Type { return TypeNum }
func (n Num) String() string {
	if frame.IsNA(float64(n)) {
		return "NA"
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Frame is a frame value.
type Frame struct {
	*frame.Frame
}

// NewFrame wraps a frame.
func NewFrame(f *frame.Frame) Frame { return Frame{Frame: f} }

func (Frame) isValue()   {}
func (Frame) Type() Type { return TypeFrame }

// Str is a text that may be null.
type Str struct {
	s *string
}

// NewStr returns a non-null text.
func NewStr(s string) Str { return Str{s: &s} }

// NullStr returns the null text.
func NullStr() Str { return Str{} }

func (Str) isValue()   {}
func (Str) Type() Type { return TypeStr }

// IsNull reports whether the text is null.
func (s Str) IsNull() bool { return s.s == nil }

// Get returns the text, the empty string for null.
func (s Str) Get() string {
	if s.s == nil {
		return ""
	}
	return *s.s
}

func (s Str) String() string {
	if s.s == nil {
		return "null"
	}
	return strconv.Quote(*s.s)
}

// NumList is a literal list of numbers.
type NumList []float64

func (NumList) isValue()   {}
func (NumList) Type() Type { return TypeNumList }
func (l NumList) String() string {
	ss := make([]string, len(l))
	for i, d := range l {
		ss[i] = Num(d).String()
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// StrList is a literal list of strings.
type StrList []string

func (StrList) isValue()   {}
func (StrList) Type() Type { return TypeStrList }
func (l StrList) String() string {
	ss := make([]string, len(l))
	for i, s := range l {
		ss[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(ss, ", ") + "]"
}
