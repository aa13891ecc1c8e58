// Package host models the runtime that receives boxed Iris values: a heap of
// tagged blocks addressed by machine words, with tagged immediate integers,
// boxed double cells and root registration for collection.
package host

import "errors"

// Word is a host machine word: either an immediate integer or a block reference.
// The zero Word is never a valid value.
type Word uint64

const (
	// NoScanTag is the first tag whose blocks hold raw data rather than words.
	NoScanTag uint8 = 251
	// DoubleTag marks a boxed double cell.
	DoubleTag uint8 = 253
)

// Immediate integers carry one bit less than int64.
const (
	MaxInt = int64(1)<<62 - 1
	MinInt = -(int64(1) << 62)
)

// Unit is the immediate sentinel for the unit value.
var Unit = ValInt(0)

var (
	ErrInvalidWord  = errors.New("host: word does not reference a live block")
	ErrOutOfMemory  = errors.New("host: block limit reached")
	ErrBadSize      = errors.New("host: block size must be positive")
	ErrBadTag       = errors.New("host: tag not allowed for scanned block")
	ErrFieldIndex   = errors.New("host: field index out of range")
	ErrNotDouble    = errors.New("host: block is not a double cell")
	ErrIntOverflow  = errors.New("host: integer does not fit in an immediate")
	ErrNotImmediate = errors.New("host: word is not an immediate")
)

// ValInt encodes n as an immediate. Bits above the immediate range are lost;
// check FitsInt first when that matters.
func ValInt(n int64) Word { return Word(uint64(n)<<1 | 1) }

// ValIntChecked is ValInt that refuses integers outside the immediate range.
func ValIntChecked(n int64) (Word, error) {
	if !FitsInt(n) {
		return 0, ErrIntOverflow
	}
	return ValInt(n), nil
}

// ValBool encodes b as the immediate 0 or 1.
func ValBool(b bool) Word {
	if b {
		return ValInt(1)
	}
	return ValInt(0)
}

// IntVal decodes an immediate.
func IntVal(w Word) int64 { return int64(w) >> 1 }

// FitsInt reports whether n survives ValInt unchanged.
func FitsInt(n int64) bool { return n >= MinInt && n <= MaxInt }

// IsImmediate reports whether w encodes an integer rather than a block.
func IsImmediate(w Word) bool { return w&1 == 1 }

func blockWord(index int) Word { return Word(uint64(index+1) << 1) }

func blockIndex(w Word) (int, bool) {
	if w == 0 || IsImmediate(w) {
		return 0, false
	}
	return int(w>>1) - 1, true
}
