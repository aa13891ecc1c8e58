// Package value defines the Iris interpreter's tagged runtime value.
package value

import (
	"fmt"
	"math"

	"github.com/funvibe/irisbridge/internal/config"
)

// Tag is the discriminant of a Value. Codes outside the known set are
// representable so that foreign or corrupted values can still be reported.
type Tag int

const (
	TagInt Tag = iota
	TagFloat
	TagBool
	TagChar
	TagFunction
	TagUnit
)

// Known reports whether t is one of the interpreter's value kinds.
func (t Tag) Known() bool { return t >= TagInt && t <= TagUnit }

func (t Tag) String() string {
	switch t {
	case TagInt:
		return config.IntTypeName
	case TagFloat:
		return config.FloatTypeName
	case TagBool:
		return config.BoolTypeName
	case TagChar:
		return config.CharTypeName
	case TagFunction:
		return config.FunctionTypeName
	case TagUnit:
		return config.UnitTypeName
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Func is the native representation of an Iris function value.
type Func func(*Value) *Value

// Value is a tag plus the single payload that matches it.
// A nil *Value is a valid Unit.
type Value struct {
	Tag Tag

	i  int64
	f  float64
	b  bool
	c  byte
	fn Func
}

// Int, Float, Bool, Char, Function and Unit build a value of that tag with
// a matching payload.
func Int(v int64) *Value     { return &Value{Tag: TagInt, i: v} }
func Float(v float64) *Value { return &Value{Tag: TagFloat, f: v} }
func Bool(v bool) *Value     { return &Value{Tag: TagBool, b: v} }
func Char(v byte) *Value     { return &Value{Tag: TagChar, c: v} }
func Function(fn Func) *Value {
	return &Value{Tag: TagFunction, fn: fn}
}
func Unit() *Value { return &Value{Tag: TagUnit} }

// WithTag builds a payload-less value carrying an arbitrary tag code.
func WithTag(code Tag) *Value { return &Value{Tag: code} }

// IsUnit reports whether v represents Unit, including the nil value.
func (v *Value) IsUnit() bool { return v == nil || v.Tag == TagUnit }

// TagOf returns the tag of v, treating nil as Unit.
func TagOf(v *Value) Tag {
	if v == nil {
		return TagUnit
	}
	return v.Tag
}

func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.Tag != TagInt {
		return 0, false
	}
	return v.i, true
}

func (v *Value) AsFloat() (float64, bool) {
	if v == nil || v.Tag != TagFloat {
		return 0, false
	}
	return v.f, true
}

func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.Tag != TagBool {
		return false, false
	}
	return v.b, true
}

func (v *Value) AsChar() (byte, bool) {
	if v == nil || v.Tag != TagChar {
		return 0, false
	}
	return v.c, true
}

func (v *Value) AsFunction() (Func, bool) {
	if v == nil || v.Tag != TagFunction {
		return nil, false
	}
	return v.fn, true
}

// Call applies a Function value to arg.
func (v *Value) Call(arg *Value) (*Value, error) {
	fn, ok := v.AsFunction()
	if !ok {
		return nil, fmt.Errorf("cannot call value of type %s", TagOf(v))
	}
	if fn == nil {
		return nil, fmt.Errorf("function value has no body")
	}
	return fn(arg), nil
}

// Equal compares tag and payload. Floats compare by bit pattern, so NaN
// equals itself and 0.0 differs from -0.0. Functions are never equal.
func Equal(a, b *Value) bool {
	if TagOf(a) != TagOf(b) {
		return false
	}
	switch TagOf(a) {
	case TagInt:
		return a.i == b.i
	case TagFloat:
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case TagBool:
		return a.b == b.b
	case TagChar:
		return a.c == b.c
	case TagFunction:
		return false
	default:
		return true
	}
}
