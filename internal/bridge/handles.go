package bridge

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/irisbridge/internal/value"
)

// Handle names a value held by a HandleTable. Handles are only minted by
// the table; a handle from another table, or one whose slot was released,
// never resolves.
type Handle struct {
	Table uuid.UUID
	Index uint32
	Gen   uint32
}

func (h Handle) String() string { return fmt.Sprintf("%d#%d", h.Index, h.Gen) }

type handleSlot struct {
	v    *value.Value
	gen  uint32
	used bool
}

// HandleTable is an arena of interpreter values exported across the host
// boundary.
type HandleTable struct {
	mu    sync.Mutex
	id    uuid.UUID
	slots []handleSlot
	free  []uint32
}

func NewHandleTable() *HandleTable {
	return &HandleTable{id: uuid.New()}
}

func (t *HandleTable) ID() uuid.UUID { return t.id }

// Put stores v and returns its handle.
func (t *HandleTable) Put(v *value.Value) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, handleSlot{})
	}
	s := &t.slots[idx]
	s.v = v
	s.used = true
	return Handle{Table: t.id, Index: idx, Gen: s.gen}
}

func (t *HandleTable) slotLocked(h Handle) (*handleSlot, error) {
	if h.Table != t.id {
		return nil, &HandleError{Table: t.id, Handle: h, Err: ErrForeignHandle}
	}
	if int(h.Index) >= len(t.slots) {
		return nil, &HandleError{Table: t.id, Handle: h, Err: ErrStaleHandle}
	}
	s := &t.slots[h.Index]
	if !s.used || s.gen != h.Gen {
		return nil, &HandleError{Table: t.id, Handle: h, Err: ErrStaleHandle}
	}
	return s, nil
}

// Get resolves h.
func (t *HandleTable) Get(h Handle) (*value.Value, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.slotLocked(h)
	if err != nil {
		return nil, err
	}
	return s.v, nil
}

// Release frees the slot of h. The slot's generation advances so copies of h
// go stale.
func (t *HandleTable) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.slotLocked(h)
	if err != nil {
		return err
	}
	s.v = nil
	s.used = false
	s.gen++
	t.free = append(t.free, h.Index)
	return nil
}

// Len returns the number of live handles.
func (t *HandleTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots) - len(t.free)
}
