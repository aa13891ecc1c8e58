package bridge

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/funvibe/irisbridge/internal/value"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    *value.Value
		expected string
	}{
		{"nil", nil, "Unit = ()"},
		{"unit", value.Unit(), "Unit = ()"},
		{"int", value.Int(42), "Int = 42"},
		{"negative int", value.Int(-7), "Int = -7"},
		{"float", value.Float(3.5), "Float = 3.500000"},
		{"float rounding", value.Float(1.0 / 3), "Float = 0.333333"},
		{"negative float", value.Float(-0.25), "Float = -0.250000"},
		{"inf", value.Float(math.Inf(1)), "Float = inf"},
		{"-inf", value.Float(math.Inf(-1)), "Float = -inf"},
		{"nan", value.Float(math.NaN()), "Float = nan"},
		{"true", value.Bool(true), "Bool = true"},
		{"false", value.Bool(false), "Bool = false"},
		{"char", value.Char('x'), "Char = x"},
		{"function", value.Function(nil), "Function = <fun>"},
		{"unknown", value.WithTag(42), "Unknown type: 42"},
		{"negative unknown", value.WithTag(-3), "Unknown type: -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Render(tt.input))
		})
	}
}

func TestPrintHasNoNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, value.Int(1)))
	require.NoError(t, Print(&buf, nil))
	require.Equal(t, "Int = 1Unit = ()", buf.String())
}

func TestRenderDoesNotAllocate(t *testing.T) {
	b := New(Options{})
	b.Render(value.Float(2))
	b.Render(value.Int(2))
	require.Zero(t, b.Heap().Stats().Allocations)
}

func TestRenderLogsUnknownTag(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(Options{Logger: zap.New(core).Sugar()})

	require.Equal(t, "Unknown type: 9", b.Render(value.WithTag(9)))
	require.Equal(t, "Int = 1", b.Render(value.Int(1)))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(9), entries[0].ContextMap()["tag"])
}
