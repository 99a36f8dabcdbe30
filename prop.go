package fdt

import (
	"github.com/go-fdt/fdt/internal/bufview"
	"github.com/go-fdt/fdt/internal/propval"
)

// Prop is a handle to one PROP token: its raw value slice, its name
// offset into the strings block, and a cursor snapshot rewound to its
// owning node's BEGIN_NODE token. No back-pointer to the node is
// stored; Owner reconstructs it by replaying one parse step, which
// keeps Prop a plain copyable value with no cyclic reference.
type Prop struct {
	tree    *Tree
	value   []byte
	nameOff uint32
	parent  Iter
}

func (p Prop) val() propval.Value { return propval.Value{Raw: p.value} }

// Raw returns the property's value bytes as-is.
func (p Prop) Raw() []byte { return p.value }

// Length returns the value's byte length.
func (p Prop) Length() int { return len(p.value) }

// NameString reads the zero-terminated property name at
// off_dt_strings + nameoff.
func (p Prop) NameString() (string, error) {
	name, _, err := bufview.CStringUnbounded(p.tree.buf, int(p.tree.offDtStrings)+int(p.nameOff))
	if err != nil {
		return "", wrapf(KindStr, "property name", err)
	}
	return DecodeName(name)
}

// U32 reads a big-endian uint32 at off within the value.
func (p Prop) U32(off int) (uint32, error) {
	v, err := p.val().U32(off)
	if err != nil {
		return 0, wrapf(KindInvalidOffset, "property u32 read", err)
	}
	return v, nil
}

// U64 reads a big-endian uint64 at off within the value.
func (p Prop) U64(off int) (uint64, error) {
	v, err := p.val().U64(off)
	if err != nil {
		return 0, wrapf(KindInvalidOffset, "property u64 read", err)
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
		return "", wrapf(KindStr, "property string read", err)
	}
	return s, nil
}

// StrCount counts the NUL-terminated substrings that exactly cover the
// value.
func (p Prop) StrCount() (int, error) {
	n, err := p.val().StrCount()
	if err != nil {
		return 0, wrapf(KindStr, "property string-list count", err)
	}
	return n, nil
}

// StrList parses the value into out as a sequence of NUL-terminated
// strings and returns the element count.
func (p Prop) StrList(out []string) (int, error) {
	n, err := p.val().StrList(out)
	if err != nil {
		return 0, wrapf(KindStr, "property string-list parse", err)
	}
	return n, nil
}

// Strings is a convenience wrapper that allocates and returns the
// full decoded string list, mirroring the iter_str_list/get_prop_str
// convenience layer of the implementation this library is modeled on
// (see SPEC_FULL.md section D).
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

// Owner returns the node this property is attached to, reconstructed
// by replaying the cursor from its owning BEGIN_NODE token.
func (p Prop) Owner() (Node, bool) {
	cur := p.parent
	item, ok := cur.Next()
	if !ok {
		return Node{}, false
	}
	return item.Node()
}
