package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/gammazero/deque"
)

type block struct {
	tag    uint8
	fields []Word
	bits   uint64 // raw payload of a DoubleTag cell
	live   bool
	mark   bool
}

// Options tune a Heap.
type Options struct {
	// MaxBlocks caps live blocks; zero means unlimited.
	MaxBlocks int
	// CollectOnAlloc runs a collection before every allocation. Words that
	// are neither rooted nor retained die at the next allocation.
	CollectOnAlloc bool
}

// Stats counts heap activity since creation.
type Stats struct {
	Allocations       int // all blocks, double cells included
	DoubleAllocations int
	Live              int
	Collected         int
}

// Heap is an arena of host blocks. Freed slots are reused in FIFO order.
type Heap struct {
	mu       sync.Mutex
	blocks   []*block
	free     *deque.Deque[int]
	roots    map[Word]int
	retained map[Word]int
	opts     Options
	stats    Stats
}

func NewHeap(opts Options) *Heap {
	return &Heap{
		free:     new(deque.Deque[int]),
		roots:    make(map[Word]int),
		retained: make(map[Word]int),
		opts:     opts,
	}
}

func (h *Heap) allocLocked(b *block) (Word, error) {
	if h.opts.CollectOnAlloc {
		h.collectLocked()
	}
	if h.opts.MaxBlocks > 0 && h.stats.Live >= h.opts.MaxBlocks {
		// unreferenced blocks do not count against the limit
		h.collectLocked()
		if h.stats.Live >= h.opts.MaxBlocks {
			return 0, ErrOutOfMemory
		}
	}
	b.live = true
	var idx int
	if h.free.Len() > 0 {
		idx = h.free.PopFront()
		h.blocks[idx] = b
	} else {
		idx = len(h.blocks)
		h.blocks = append(h.blocks, b)
	}
	h.stats.Allocations++
	h.stats.Live++
	return blockWord(idx), nil
}

// Alloc allocates a scanned block of size fields, each initialised to Unit.
func (h *Heap) Alloc(size int, tag uint8) (Word, error) {
	if size <= 0 {
		return 0, ErrBadSize
	}
	if tag >= NoScanTag {
		return 0, ErrBadTag
	}
	fields := make([]Word, size)
	for i := range fields {
		fields[i] = Unit
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocLocked(&block{tag: tag, fields: fields})
}

// AllocDouble allocates an empty boxed double cell.
func (h *Heap) AllocDouble() (Word, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, err := h.allocLocked(&block{tag: DoubleTag})
	if err == nil {
		h.stats.DoubleAllocations++
	}
	return w, err
}

func (h *Heap) lookupLocked(w Word) (*block, error) {
	idx, ok := blockIndex(w)
	if !ok || idx >= len(h.blocks) || h.blocks[idx] == nil || !h.blocks[idx].live {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidWord, uint64(w))
	}
	return h.blocks[idx], nil
}

// Free returns block w to the heap at once. The caller must hold the only
// reference to w.
func (h *Heap) Free(w Word) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.lookupLocked(w); err != nil {
		return err
	}
	idx, _ := blockIndex(w)
	h.blocks[idx] = nil
	h.free.PushBack(idx)
	h.stats.Live--
	return nil
}

// StoreField sets field i of block w.
func (h *Heap) StoreField(w Word, i int, v Word) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(b.fields) {
		return fmt.Errorf("%w: %d of %d", ErrFieldIndex, i, len(b.fields))
	}
	b.fields[i] = v
	return nil
}

// Field reads field i of block w.
func (h *Heap) Field(w Word, i int) (Word, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(b.fields) {
		return 0, fmt.Errorf("%w: %d of %d", ErrFieldIndex, i, len(b.fields))
	}
	return b.fields[i], nil
}

// StoreDouble writes f into the double cell w.
func (h *Heap) StoreDouble(w Word, f float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return err
	}
	if b.tag != DoubleTag {
		return ErrNotDouble
	}
	b.bits = math.Float64bits(f)
	return nil
}

// Double reads the double cell w.
func (h *Heap) Double(w Word) (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return 0, err
	}
	if b.tag != DoubleTag {
		return 0, ErrNotDouble
	}
	return math.Float64frombits(b.bits), nil
}

// Tag returns the tag of block w.
func (h *Heap) Tag(w Word) (uint8, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return 0, err
	}
	return b.tag, nil
}

// Size returns the number of fields of block w. Double cells have size 0.
func (h *Heap) Size(w Word) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.lookupLocked(w)
	if err != nil {
		return 0, err
	}
	return len(b.fields), nil
}

func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Format renders w structurally: immediates as integers, double cells with
// %g, blocks as <tag>(field, ...).
func (h *Heap) Format(w Word) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var sb strings.Builder
	if err := h.formatLocked(&sb, w); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (h *Heap) formatLocked(sb *strings.Builder, w Word) error {
	if IsImmediate(w) {
		sb.WriteString(strconv.FormatInt(IntVal(w), 10))
		return nil
	}
	b, err := h.lookupLocked(w)
	if err != nil {
		return err
	}
	if b.tag == DoubleTag {
		sb.WriteString(strconv.FormatFloat(math.Float64frombits(b.bits), 'g', -1, 64))
		return nil
	}
	fmt.Fprintf(sb, "<%d>(", b.tag)
	for i, f := range b.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := h.formatLocked(sb, f); err != nil {
			return err
		}
	}
	sb.WriteString(")")
	return nil
}
