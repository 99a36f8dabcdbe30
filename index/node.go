package index

import "github.com/go-fdt/fdt"

// Node is a handle to one node record inside an Index's buffer: just
// the index pointer and the record's byte offset. Unlike the unindexed
// engine's Node, lookups here are O(1) record reads rather than
// replayed token parses.
type Node struct {
	idx *Index
	off uint32
}

func (n Node) rec() nodeRecord { return readNode(n.idx.buf, int(n.off)) }

// Name returns the node's name as raw bytes, not yet decoded to text.
func (n Node) Name() []byte {
	r := n.rec()
	return n.idx.tree.Buf()[r.nameOff : r.nameOff+r.nameLen]
}

// NameString decodes the node name as text.
func (n Node) NameString() (string, error) { return fdt.DecodeName(n.Name()) }

// NumProps returns the node's own property count.
func (n Node) NumProps() uint32 { return n.rec().numProps }

// Props returns an iterator over this node's own properties, a direct
// sequential scan of the packed record run following the node record
// rather than a replayed parse.
func (n Node) Props() *NodePropIter {
	r := n.rec()
	return &NodePropIter{idx: n.idx, off: int(n.off) + nodeRecordSize, remaining: int(r.numProps), owner: n.off}
}

// Children returns an iterator over this node's direct children.
func (n Node) Children() *SiblingIter {
	r := n.rec()
	return &SiblingIter{idx: n.idx, parent: n.off, cur: r.firstChild}
}

// Siblings returns an iterator starting at this node and continuing
// through its following same-parent siblings.
func (n Node) Siblings() *SiblingIter {
	return &SiblingIter{idx: n.idx, parent: n.rec().parent, cur: n.off}
}

func (n Node) asNextFn() walkNext {
	it := itemIterFrom(n.idx, n.off)
	it.nodeEmitted = true
	return it.asNextFn()
}

// FindNextCompatibleNode continues the DFS from just after this node,
// looking for the next node whose compatible property's first string
// equals compatible.
func (n Node) FindNextCompatibleNode(compatible string) (Node, bool) {
	return findNextCompatibleNode(n.asNextFn(), compatible)
}

func nodeHasCompatible(n Node, compatible string) bool {
	it := n.Props()
	for {
		p, ok := it.Next()
		if !ok {
			return false
		}
		name, err := p.NameString()
		if err != nil || name != "compatible" {
			continue
		}
		if s, err := p.StrAt(0); err == nil && s == compatible {
			return true
		}
	}
}
