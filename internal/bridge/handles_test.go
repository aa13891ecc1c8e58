package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/irisbridge/internal/config"
	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

func TestExportUnbox(t *testing.T) {
	b := New(Options{})

	h := b.Export(value.Char('z'))
	require.Equal(t, b.Handles().ID(), h.Table)

	w, err := b.Unbox(h)
	require.NoError(t, err)
	v, err := b.Decode(w)
	require.NoError(t, err)
	require.True(t, value.Equal(value.Char('z'), v))

	// unboxing twice yields two independent boxes
	w2, err := b.Unbox(h)
	require.NoError(t, err)
	require.NotEqual(t, w, w2)
}

func TestUnboxFollowsBoxContract(t *testing.T) {
	b := New(Options{})

	_, err := b.Unbox(b.Export(value.Function(nil)))
	require.ErrorIs(t, err, ErrUnsupportedConversion)

	w, err := b.Unbox(b.Export(nil))
	require.NoError(t, err)
	require.Equal(t, host.Unit, w)

	strict := New(Options{NullPolicy: config.NullReject})
	_, err = strict.Unbox(strict.Export(nil))
	require.ErrorIs(t, err, ErrNilValue)
}

func TestUnboxRootsCallerWords(t *testing.T) {
	heap := host.NewHeap(host.Options{CollectOnAlloc: true})
	b := New(Options{Heap: heap})

	held, err := b.Box(value.Int(1))
	require.NoError(t, err)
	h := b.Export(value.Float(2.5))

	w, err := b.Unbox(h, held)
	require.NoError(t, err)
	require.Zero(t, heap.Stats().Collected, "word passed to Unbox must survive the allocation")
	got, err := heap.Field(held, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), host.IntVal(got))

	v, err := b.Decode(w)
	require.NoError(t, err)
	require.True(t, value.Equal(value.Float(2.5), v))

	// without registration the next allocation collects held and the float box
	_, err = b.Unbox(b.Export(value.Bool(true)))
	require.NoError(t, err)
	require.Equal(t, 3, heap.Stats().Collected)
}

func TestStaleAndForeignHandles(t *testing.T) {
	b := New(Options{})
	other := New(Options{})

	h := b.Export(value.Int(3))
	require.NoError(t, b.Release(h))

	_, err := b.Unbox(h)
	require.ErrorIs(t, err, ErrStaleHandle)
	require.ErrorIs(t, b.Release(h), ErrStaleHandle)

	// the slot is reused with a new generation
	h2 := b.Export(value.Int(4))
	require.Equal(t, h.Index, h2.Index)
	require.NotEqual(t, h.Gen, h2.Gen)
	_, err = b.Unbox(h)
	require.ErrorIs(t, err, ErrStaleHandle)

	_, err = other.Unbox(h2)
	require.ErrorIs(t, err, ErrForeignHandle)
	var hErr *HandleError
	require.True(t, errors.As(err, &hErr))
	require.Equal(t, other.Handles().ID(), hErr.Table)

	forged := Handle{Table: b.Handles().ID(), Index: 99}
	_, err = b.Unbox(forged)
	require.ErrorIs(t, err, ErrStaleHandle)
}

func TestHandleTableLen(t *testing.T) {
	tbl := NewHandleTable()
	a := tbl.Put(value.Int(1))
	tbl.Put(value.Int(2))
	require.Equal(t, 2, tbl.Len())
	require.NoError(t, tbl.Release(a))
	require.Equal(t, 1, tbl.Len())

	v, err := tbl.Get(a)
	require.Nil(t, v)
	require.ErrorIs(t, err, ErrStaleHandle)
}
