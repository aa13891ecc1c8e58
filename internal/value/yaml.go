package value

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Builtins are the named functions a value document may reference.
var Builtins = map[string]Func{
	"identity": func(v *Value) *Value { return v },
	"negate": func(v *Value) *Value {
		if i, ok := v.AsInt(); ok {
			return Int(-i)
		}
		if f, ok := v.AsFloat(); ok {
			return Float(-f)
		}
		return Unit()
	},
	"not": func(v *Value) *Value {
		if b, ok := v.AsBool(); ok {
			return Bool(!b)
		}
		return Unit()
	},
	"succ": func(v *Value) *Value {
		if i, ok := v.AsInt(); ok {
			return Int(i + 1)
		}
		if c, ok := v.AsChar(); ok {
			return Char(c + 1)
		}
		return Unit()
	},
}

// ParseYAML reads a sequence of single-key mappings, one per value. In flow
// style a document with one value of each kind reads:
//
//	[{int: 42}, {float: 3.5}, {bool: true}, {char: x},
//	 {unit: null}, {function: identity}, {tag: 9}]
func ParseYAML(data []byte) ([]*Value, error) {
	var items []map[string]interface{}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	values := make([]*Value, 0, len(items))
	for i, item := range items {
		if len(item) != 1 {
			return nil, fmt.Errorf("item %d: expected exactly one key, got %d", i, len(item))
		}
		for kind, raw := range item {
			v, err := inferFromYaml(kind, raw)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func inferFromYaml(kind string, raw interface{}) (*Value, error) {
	switch kind {
	case "int":
		n, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("int: expected integer, got %T", raw)
		}
		return Int(int64(n)), nil
	case "float":
		switch f := raw.(type) {
		case float64:
			return Float(f), nil
		case int:
			return Float(float64(f)), nil
		case string:
			// .inf and .nan arrive as float64; these are the bare spellings
			switch f {
			case "inf", "+inf":
				return Float(math.Inf(1)), nil
			case "-inf":
				return Float(math.Inf(-1)), nil
			case "nan":
				return Float(math.NaN()), nil
			}
		}
		return nil, fmt.Errorf("float: expected number, got %T", raw)
	case "bool":
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("bool: expected boolean, got %T", raw)
		}
		return Bool(b), nil
	case "char":
		switch c := raw.(type) {
		case string:
			if len(c) != 1 {
				return nil, fmt.Errorf("char: expected a single byte, got %q", c)
			}
			return Char(c[0]), nil
		case int:
			if c < 0 || c > math.MaxUint8 {
				return nil, fmt.Errorf("char: code %d out of range", c)
			}
			return Char(byte(c)), nil
		}
		return nil, fmt.Errorf("char: expected string or code, got %T", raw)
	case "unit":
		return Unit(), nil
	case "function":
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("function: expected builtin name, got %T", raw)
		}
		fn, ok := Builtins[name]
		if !ok {
			return nil, fmt.Errorf("function: unknown builtin %q", name)
		}
		return Function(fn), nil
	case "tag":
		code, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("tag: expected integer code, got %T", raw)
		}
		return WithTag(Tag(code)), nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}
