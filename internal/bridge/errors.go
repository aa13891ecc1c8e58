package bridge

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/irisbridge/internal/value"
)

var (
	// ErrUnsupportedConversion is matched by every ConversionError.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrNilValue              = errors.New("cannot box a nil value")
	ErrIntRange              = errors.New("integer out of host range")
	ErrMalformedBlock        = errors.New("malformed boxed value")
	ErrStaleHandle           = errors.New("stale handle")
	ErrForeignHandle         = errors.New("handle belongs to another table")
)

// ConversionError reports a tag outside the domain of a conversion.
type ConversionError struct {
	Op  string // "box" or "decode"
	Tag value.Tag
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s for type %d (%s)", e.Op, ErrUnsupportedConversion, int(e.Tag), e.Tag)
}

func (e *ConversionError) Is(target error) bool { return target == ErrUnsupportedConversion }

// HandleError reports a handle that cannot be resolved.
type HandleError struct {
	Table  uuid.UUID
	Handle Handle
	Err    error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("handle %s: %v (table %s)", e.Handle, e.Err, e.Table)
}

func (e *HandleError) Unwrap() error { return e.Err }
