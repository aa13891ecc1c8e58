package bridge

import (
	"fmt"
	"io"
	"math"

	"github.com/funvibe/irisbridge/internal/config"
	"github.com/funvibe/irisbridge/internal/value"
)

// Render produces the "<Type> = <value>" diagnostic form of v.
// A nil value renders as Unit and unknown tags degrade to a fallback line.
func Render(v *value.Value) string {
	if v == nil {
		return config.UnitTypeName + " = " + config.UnitLiteral
	}

	switch v.Tag {
	case value.TagInt:
		i, _ := v.AsInt()
		return fmt.Sprintf("%s = %d", config.IntTypeName, i)
	case value.TagFloat:
		f, _ := v.AsFloat()
		return config.FloatTypeName + " = " + formatFloat(f)
	case value.TagBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%s = %t", config.BoolTypeName, b)
	case value.TagChar:
		c, _ := v.AsChar()
		return config.CharTypeName + " = " + string([]byte{c})
	case value.TagFunction:
		return config.FunctionTypeName + " = " + config.FunctionLiteral
	case value.TagUnit:
		return config.UnitTypeName + " = " + config.UnitLiteral
	default:
		return fmt.Sprintf("%s%d", config.UnknownPrefix, int(v.Tag))
	}
}

// Print writes Render(v) to w without a trailing newline.
func Print(w io.Writer, v *value.Value) error {
	_, err := io.WriteString(w, Render(v))
	return err
}

// formatFloat prints six fractional digits; non-finite values use the
// lowercase inf/nan spellings.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return fmt.Sprintf("%f", f)
}
