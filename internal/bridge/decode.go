package bridge

import (
	"fmt"
	"math"

	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

// Decode reads a boxed value back into an interpreter value. It accepts
// exactly what Box produces.
func (b *Bridge) Decode(w host.Word) (*value.Value, error) {
	if host.IsImmediate(w) {
		if w == host.Unit {
			return value.Unit(), nil
		}
		return nil, fmt.Errorf("%w: bare immediate %d", ErrMalformedBlock, host.IntVal(w))
	}

	rawTag, err := b.heap.Tag(w)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	tag := value.Tag(rawTag)
	switch tag {
	case value.TagInt, value.TagFloat, value.TagBool, value.TagChar:
	default:
		return nil, &ConversionError{Op: "decode", Tag: tag}
	}

	size, err := b.heap.Size(w)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if size != 1 {
		return nil, fmt.Errorf("%w: %s block has %d fields", ErrMalformedBlock, tag, size)
	}
	field, err := b.heap.Field(w, 0)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if tag == value.TagFloat {
		f, err := b.heap.Double(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %s field: %w", ErrMalformedBlock, tag, err)
		}
		return value.Float(f), nil
	}

	if !host.IsImmediate(field) {
		return nil, fmt.Errorf("%w: %s field: %w", ErrMalformedBlock, tag, host.ErrNotImmediate)
	}
	n := host.IntVal(field)
	switch tag {
	case value.TagInt:
		return value.Int(n), nil
	case value.TagBool:
		if n != 0 && n != 1 {
			return nil, fmt.Errorf("%w: bool field %d", ErrMalformedBlock, n)
		}
		return value.Bool(n == 1), nil
	default:
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("%w: char field %d", ErrMalformedBlock, n)
		}
		return value.Char(byte(n)), nil
	}
}
