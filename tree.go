package fdt

// Tree is a validated view over a caller-owned FDT image. It borrows
// buf for its entire lifetime; no Tree operation mutates it.
type Tree struct {
	buf []byte

	totalsize             uint32
	offDtStruct           uint32
	offDtStrings          uint32
	offMemRsvmap          uint32
	version               uint32
	lastCompatibleVersion uint32
	bootCpuidPhys         uint32
	sizeDtStrings         uint32
	sizeDtStruct          uint32
}

func (t *Tree) Buf() []byte { return t.buf }

func (t *Tree) Totalsize() uint32             { return t.totalsize }
func (t *Tree) OffDtStruct() uint32           { return t.offDtStruct }
func (t *Tree) OffDtStrings() uint32          { return t.offDtStrings }
func (t *Tree) OffMemRsvmap() uint32          { return t.offMemRsvmap }
func (t *Tree) Version() uint32               { return t.version }
func (t *Tree) LastCompatibleVersion() uint32 { return t.lastCompatibleVersion }
func (t *Tree) BootCpuidPhys() uint32         { return t.bootCpuidPhys }
func (t *Tree) SizeDtStrings() uint32         { return t.sizeDtStrings }
func (t *Tree) SizeDtStruct() uint32          { return t.sizeDtStruct }

// ReservedEntries enumerates the memory-reservation block.
func (t *Tree) ReservedEntries() *ReserveIter {
	return &ReserveIter{buf: t.buf, off: int(t.offMemRsvmap), limit: int(t.totalsize)}
}

func (t *Tree) iterAt(off int) Iter {
	return Iter{tree: t, offset: off, propParentOff: noOpenNode}
}

// Items returns the raw DFS item stream (nodes and properties)
// starting at the struct block's first token.
func (t *Tree) Items() Iter { return t.iterAt(int(t.offDtStruct)) }

// Nodes filters Items to nodes only.
func (t *Tree) Nodes() *NodeIter {
	it := t.Items()
	return &NodeIter{base: it}
}

// Props filters Items to properties anywhere in the tree.
func (t *Tree) Props() *PropIter {
	it := t.Items()
	return &PropIter{base: it}
}

// Root returns the tree's root node, if any.
func (t *Tree) Root() (Node, bool) {
	it := t.Nodes()
	return it.Next()
}

// Find scans the DFS item stream for the first item matching pred.
// This supplements the operations named in the distilled specification
// with the predicate search the implementation it was modeled on
// exposes directly (DevTree::find in the original source).
func (t *Tree) Find(pred func(Item) bool) (Item, bool) {
	it := t.Items()
	for {
		item, ok := it.Next()
		if !ok {
			return Item{}, false
		}
		if pred(item) {
			return item, true
		}
	}
}

// FindNode scans for the first node matching pred.
func (t *Tree) FindNode(pred func(Node) bool) (Node, bool) {
	it := t.Nodes()
	for {
		n, ok := it.Next()
		if !ok {
			return Node{}, false
		}
		if pred(n) {
			return n, true
		}
	}
}

// FindProp scans for the first property matching pred, anywhere in
// the tree.
func (t *Tree) FindProp(pred func(Prop) bool) (Prop, bool) {
	it := t.Props()
	for {
		p, ok := it.Next()
		if !ok {
			return Prop{}, false
		}
		if pred(p) {
			return p, true
		}
	}
}

// FindFirstCompatibleNode returns the first node (in DFS order,
// starting at and including the root) whose own "compatible" property
// has compatible as its first string value. Unlike
// FindNextCompatibleNode, this does not skip the starting node: a root
// whose own compatible property matches is itself the result.
func (t *Tree) FindFirstCompatibleNode(compatible string) (Node, bool) {
	return t.FindNode(func(n Node) bool {
		return nodeHasCompatible(n, compatible)
	})
}
