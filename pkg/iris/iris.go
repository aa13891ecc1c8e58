// Package iris is the embedding API of the Iris value bridge.
package iris

import (
	"go.uber.org/zap"

	"github.com/funvibe/irisbridge/internal/bridge"
	"github.com/funvibe/irisbridge/internal/config"
	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

// Type aliases
type Value = value.Value
type Tag = value.Tag
type Func = value.Func
type Word = host.Word
type Heap = host.Heap
type Bridge = bridge.Bridge
type Handle = bridge.Handle
type Options = bridge.Options
type Config = config.Config

// Tags
const (
	TagInt      = value.TagInt
	TagFloat    = value.TagFloat
	TagBool     = value.TagBool
	TagChar     = value.TagChar
	TagFunction = value.TagFunction
	TagUnit     = value.TagUnit
)

// UnitWord is the host sentinel Unit boxes to.
var UnitWord = host.Unit

// Errors
var (
	ErrUnsupportedConversion = bridge.ErrUnsupportedConversion
	ErrNilValue              = bridge.ErrNilValue
	ErrIntRange              = bridge.ErrIntRange
	ErrStaleHandle           = bridge.ErrStaleHandle
	ErrForeignHandle         = bridge.ErrForeignHandle
)

// Int, Float, Bool, Char, Function and Unit build interpreter values;
// Render and New forward to the bridge package.
func Int(v int64) *Value       { return value.Int(v) }
func Float(v float64) *Value   { return value.Float(v) }
func Bool(v bool) *Value       { return value.Bool(v) }
func Char(v byte) *Value       { return value.Char(v) }
func Function(fn Func) *Value  { return value.Function(fn) }
func Unit() *Value             { return value.Unit() }
func Render(v *Value) string   { return bridge.Render(v) }
func New(opts Options) *Bridge { return bridge.New(opts) }

// NewFromConfig loads path (or the defaults when path is empty) and builds a
// Bridge logging to log.
func NewFromConfig(path string, log *zap.SugaredLogger) (*Bridge, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	return bridge.FromConfig(cfg, log), nil
}
