// Package bridge converts Iris tagged values to and from the host's boxed
// block representation.
//
// Boxing is partial: Int, Float, Bool, Char and Unit have a host encoding,
// Function and unknown tags do not. Box reports those with a
// ConversionError; MustBox keeps the terminate-on-failure contract for
// callers that cannot handle an error.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/funvibe/irisbridge/internal/config"
	"github.com/funvibe/irisbridge/internal/host"
	"github.com/funvibe/irisbridge/internal/value"
)

// Options configure a Bridge. Zero fields take defaults.
type Options struct {
	Heap        *host.Heap
	Handles     *HandleTable
	Logger      *zap.SugaredLogger
	NullPolicy  string    // config.NullAsUnit or config.NullReject
	Exit        func(int) // called by MustBox; os.Exit by default
	Diagnostics io.Writer // receives the MustBox failure line; os.Stderr by default
}

type Bridge struct {
	heap       *host.Heap
	handles    *HandleTable
	log        *zap.SugaredLogger
	nullPolicy string
	exit       func(int)
	diag       io.Writer
}

func New(opts Options) *Bridge {
	b := &Bridge{
		heap:       opts.Heap,
		handles:    opts.Handles,
		log:        opts.Logger,
		nullPolicy: opts.NullPolicy,
		exit:       opts.Exit,
		diag:       opts.Diagnostics,
	}
	if b.heap == nil {
		b.heap = host.NewHeap(host.Options{})
	}
	if b.handles == nil {
		b.handles = NewHandleTable()
	}
	if b.log == nil {
		b.log = zap.NewNop().Sugar()
	}
	if b.nullPolicy == "" {
		b.nullPolicy = config.NullAsUnit
	}
	if b.exit == nil {
		b.exit = os.Exit
	}
	if b.diag == nil {
		b.diag = os.Stderr
	}
	return b
}

// FromConfig builds a Bridge with a fresh heap sized by cfg.
func FromConfig(cfg *config.Config, log *zap.SugaredLogger) *Bridge {
	return New(Options{
		Heap:       host.NewHeap(host.Options{MaxBlocks: cfg.MaxBlocks}),
		Logger:     log,
		NullPolicy: cfg.NullPolicy,
	})
}

func (b *Bridge) Heap() *host.Heap      { return b.heap }
func (b *Bridge) Handles() *HandleTable { return b.handles }

// Render is the package-level Render with unknown tags logged.
func (b *Bridge) Render(v *value.Value) string {
	if v != nil && !v.Tag.Known() {
		b.log.Debugw("rendering unknown tag", "tag", int(v.Tag))
	}
	return Render(v)
}

// Box allocates the host representation of v: a one-field block tagged with
// v's tag, or the Unit sentinel. Only the block for v's tag is allocated.
func (b *Bridge) Box(v *value.Value) (host.Word, error) {
	if v == nil {
		if b.nullPolicy == config.NullReject {
			return 0, ErrNilValue
		}
		return host.Unit, nil
	}

	switch v.Tag {
	case value.TagInt:
		i, _ := v.AsInt()
		field, err := host.ValIntChecked(i)
		if err != nil {
			return 0, fmt.Errorf("%w: %d: %w", ErrIntRange, i, err)
		}
		return b.boxField(v.Tag, field)
	case value.TagFloat:
		f, _ := v.AsFloat()
		cell, err := b.heap.AllocDouble()
		if err != nil {
			return 0, fmt.Errorf("box %s: %w", v.Tag, err)
		}
		if err := b.heap.StoreDouble(cell, f); err != nil {
			_ = b.heap.Free(cell)
			return 0, fmt.Errorf("box %s: %w", v.Tag, err)
		}
		// cell must stay reachable while the container is allocated
		w, err := b.heap.Scope([]host.Word{cell}, func() (host.Word, error) {
			return b.boxField(value.TagFloat, cell)
		})
		if err != nil {
			_ = b.heap.Free(cell)
			return 0, err
		}
		return w, nil
	case value.TagBool:
		bv, _ := v.AsBool()
		return b.boxField(v.Tag, host.ValBool(bv))
	case value.TagChar:
		c, _ := v.AsChar()
		return b.boxField(v.Tag, host.ValInt(int64(c)))
	case value.TagUnit:
		return host.Unit, nil
	default:
		return 0, &ConversionError{Op: "box", Tag: v.Tag}
	}
}

func (b *Bridge) boxField(tag value.Tag, field host.Word) (host.Word, error) {
	w, err := b.heap.Alloc(1, uint8(tag))
	if err != nil {
		return 0, fmt.Errorf("box %s: %w", tag, err)
	}
	if err := b.heap.StoreField(w, 0, field); err != nil {
		return 0, fmt.Errorf("box %s: %w", tag, err)
	}
	return w, nil
}

// MustBox boxes v or terminates the process with config.FatalExitCode.
func (b *Bridge) MustBox(v *value.Value) host.Word {
	w, err := b.Box(v)
	if err == nil {
		return w
	}
	code := int(value.TagOf(v))
	b.log.Errorw("cannot box value", "tag", code, "error", err)
	if errors.Is(err, ErrUnsupportedConversion) {
		fmt.Fprintf(b.diag, "%s%d\n", config.BoxFailPrefix, code)
	} else {
		fmt.Fprintf(b.diag, "cannot box %s: %v\n", value.TagOf(v), err)
	}
	b.exit(config.FatalExitCode)
	return 0
}

// Export stores v in the bridge's handle table.
func (b *Bridge) Export(v *value.Value) Handle { return b.handles.Put(v) }

// Release drops an exported value; later uses of h fail with ErrStaleHandle.
func (b *Bridge) Release(h Handle) error { return b.handles.Release(h) }

// Unbox resolves h and boxes the value it names. The caller's live words are
// registered as roots while the box is built.
func (b *Bridge) Unbox(h Handle, live ...host.Word) (host.Word, error) {
	v, err := b.handles.Get(h)
	if err != nil {
		return 0, err
	}
	return b.heap.Scope(live, func() (host.Word, error) {
		return b.Box(v)
	})
}
