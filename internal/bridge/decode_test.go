package bridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

func TestDecodeInvertsBox(t *testing.T) {
	b := New(Options{})
	values := []*value.Value{
		value.Int(0), value.Int(-123456789), value.Int(host.MaxInt),
		value.Float(3.5), value.Float(math.Inf(-1)), value.Float(math.NaN()),
		value.Float(math.SmallestNonzeroFloat64),
		value.Bool(true), value.Bool(false),
		value.Char(0), value.Char('x'), value.Char(255),
		value.Unit(),
	}

	for _, v := range values {
		w, err := b.Box(v)
		require.NoError(t, err)
		got, err := b.Decode(w)
		require.NoError(t, err)
		require.True(t, value.Equal(v, got), "%s did not survive box/decode: %s", Render(v), Render(got))
	}
}

func TestDecodeRejects(t *testing.T) {
	b := New(Options{})
	h := b.Heap()

	wrongTag, _ := h.Alloc(1, uint8(value.TagFunction))
	twoFields, _ := h.Alloc(2, uint8(value.TagInt))
	boolTwo, _ := h.Alloc(1, uint8(value.TagBool))
	_ = h.StoreField(boolTwo, 0, host.ValInt(2))
	charBig, _ := h.Alloc(1, uint8(value.TagChar))
	_ = h.StoreField(charBig, 0, host.ValInt(256))
	intBlock, _ := h.Alloc(1, uint8(value.TagInt))
	_ = h.StoreField(intBlock, 0, wrongTag)
	floatImm, _ := h.Alloc(1, uint8(value.TagFloat))
	_ = h.StoreField(floatImm, 0, host.ValInt(3))
	cell, _ := h.AllocDouble()

	tests := []struct {
		name string
		word host.Word
		want error
	}{
		{"bare immediate", host.ValInt(5), ErrMalformedBlock},
		{"function tag", wrongTag, ErrUnsupportedConversion},
		{"double cell", cell, ErrUnsupportedConversion},
		{"two fields", twoFields, ErrMalformedBlock},
		{"bool out of range", boolTwo, ErrMalformedBlock},
		{"char out of range", charBig, ErrMalformedBlock},
		{"int field is block", intBlock, host.ErrNotImmediate},
		{"float field is immediate", floatImm, host.ErrInvalidWord},
		{"dangling word", host.Word(4096), host.ErrInvalidWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Decode(tt.word)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
