package index

import (
	"github.com/go-fdt/fdt"
	"github.com/go-fdt/fdt/internal/bufview"
	"github.com/go-fdt/fdt/internal/propval"
)

// Prop is a handle to one property record inside an Index's buffer.
// Unlike the unindexed engine's Prop, Owner is a direct stored offset
// rather than a replayed cursor rewind, since the index already has a
// parent pointer on every node it builds from.
type Prop struct {
	idx   *Index
	off   int
	owner uint32
}

func (p Prop) rec() propRecord { return readProp(p.idx.buf, p.off) }

func (p Prop) val() propval.Value { return propval.Value{Raw: p.Raw()} }

// Raw returns the property's value bytes as-is.
func (p Prop) Raw() []byte {
	r := p.rec()
	return p.idx.tree.Buf()[r.valueOff : r.valueOff+r.valueLen]
}

// Length returns the value's byte length.
func (p Prop) Length() int { return int(p.rec().valueLen) }

// NameString reads the zero-terminated property name at
// off_dt_strings + nameoff.
func (p Prop) NameString() (string, error) {
	r := p.rec()
	name, _, err := bufview.CStringUnbounded(p.idx.tree.Buf(), int(p.idx.tree.OffDtStrings())+int(r.nameOff))
	if err != nil {
		return "", fdt.WrapError(fdt.KindStr, "index property name", err)
	}
	return fdt.DecodeName(name)
}

// U32 reads a big-endian uint32 at off within the value.
func (p Prop) U32(off int) (uint32, error) {
	v, err := p.val().U32(off)
	if err != nil {
		return 0, fdt.WrapError(fdt.KindInvalidOffset, "index property u32 read", err)
	}
	return v, nil
}

// U64 reads a big-endian uint64 at off within the value.
func (p Prop) U64(off int) (uint64, error) {
	v, err := p.val().U64(off)
	if err != nil {
		return 0, fdt.WrapError(fdt.KindInvalidOffset, "index property u64 read", err)
	}
	return v, nil
}

// Phandle is an alias of U32.
func (p Prop) Phandle(off int) (uint32, error) { return p.U32(off) }

// StrAt decodes a NUL-terminated string starting at off within the
// value.
func (p Prop) StrAt(off int) (string, error) {
	s, err := p.val().StrAt(off)
	if err != nil {
		return "", fdt.WrapError(fdt.KindStr, "index property string read", err)
	}
	return s, nil
}

// StrCount counts the NUL-terminated substrings that exactly cover the
// value.
func (p Prop) StrCount() (int, error) {
	n, err := p.val().StrCount()
	if err != nil {
		return 0, fdt.WrapError(fdt.KindStr, "index property string-list count", err)
	}
	return n, nil
}

// StrList parses the value into out as a sequence of NUL-terminated
// strings and returns the element count.
func (p Prop) StrList(out []string) (int, error) {
	n, err := p.val().StrList(out)
	if err != nil {
		return 0, fdt.WrapError(fdt.KindStr, "index property string-list parse", err)
	}
	return n, nil
}

// Strings is a convenience wrapper that allocates and returns the full
// decoded string list.
func (p Prop) Strings() ([]string, error) {
	n, err := p.StrCount()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	if _, err := p.StrList(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Owner returns the node this property is attached to: a direct O(1)
// lookup, since index building records each property's owning node
// offset instead of relying on cursor replay.
func (p Prop) Owner() (Node, bool) {
	return Node{idx: p.idx, off: p.owner}, true
}
