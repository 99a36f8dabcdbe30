// Package propval decodes typed views (u32, u64, phandle, string,
// string-list) over a property's raw value bytes. It is shared by
// both the unindexed and indexed engines' property handles, the same
// way the implementation this library is modeled on gives both
// backends a single property-reader trait instead of two parallel
// copies.
package propval

import (
	"errors"

	"github.com/go-fdt/fdt/internal/bufview"
)

// ErrOutOfRange is returned when a fixed-width read would fall
// outside the value.
var ErrOutOfRange = errors.New("propval: offset out of range")

// ErrBadString is returned when a string read or string-list parse
// fails: a missing terminator, or the value not being exactly a
// sequence of NUL-terminated, non-empty strings.
var ErrBadString = errors.New("propval: invalid string")

// Value is a read-only view over one property's raw bytes.
type Value struct {
	Raw []byte
}

// Length returns the value's byte length.
func (v Value) Length() int { return len(v.Raw) }

// U32 reads a big-endian uint32 at off, requiring off+4 <= Length().
func (v Value) U32(off int) (uint32, error) {
	x, err := bufview.BE32(v.Raw, off)
	if err != nil {
		return 0, ErrOutOfRange
	}
	return x, nil
}

// U64 reads a big-endian uint64 at off, requiring off+8 <= Length().
func (v Value) U64(off int) (uint64, error) {
	x, err := bufview.BE64(v.Raw, off)
	if err != nil {
		return 0, ErrOutOfRange
	}
	return x, nil
}

// Phandle is an alias of U32: phandles are stored as plain u32s.
func (v Value) Phandle(off int) (uint32, error) {
	return v.U32(off)
}

// StrAt scans forward from off for a NUL terminator and decodes the
// bytes up to it as text.
func (v Value) StrAt(off int) (string, error) {
	s, _, err := bufview.CStringUnbounded(v.Raw, off)
	if err != nil {
		return "", ErrBadString
	}
	return string(s), nil
}

// StrCount counts NUL-terminated, non-empty substrings covering
// exactly [0, Length()). It fails if the value is not exactly such a
// sequence.
func (v Value) StrCount() (int, error) {
	count := 0
	off := 0
	for off < len(v.Raw) {
		i := off
		for i < len(v.Raw) && v.Raw[i] != 0 {
			i++
		}
		if i >= len(v.Raw) {
			return 0, ErrBadString
		}
		if i == off {
			return 0, ErrBadString
		}
		count++
		off = i + 1
	}
	if off != len(v.Raw) {
		return 0, ErrBadString
	}
	return count, nil
}

// StrList parses the value as a sequence of NUL-terminated strings
// into out, returning the element count. If out is shorter than the
// count, only the first len(out) elements are written, but the full
// count is still returned (and validated).
func (v Value) StrList(out []string) (int, error) {
	n := 0
	off := 0
	for off < len(v.Raw) {
		i := off
		for i < len(v.Raw) && v.Raw[i] != 0 {
			i++
		}
		if i >= len(v.Raw) {
			return 0, ErrBadString
		}
		if i == off {
			return 0, ErrBadString
		}
		if n < len(out) {
			out[n] = string(v.Raw[off:i])
		}
		n++
		off = i + 1
	}
	return n, nil
}
