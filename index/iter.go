package index

import "github.com/go-fdt/fdt/internal/walk"

// walkNext is the shared single-step shape internal/walk's derived
// algorithms are parameterized over, specialized to this package's
// Node/Prop types.
type walkNext = walk.Next[Node, Prop]

func findNextCompatibleNode(next walkNext, compatible string) (Node, bool) {
	return walk.FindNextCompatibleNode(next, compatible,
		func(p Prop) (string, error) { return p.NameString() },
		func(p Prop) (string, error) { return p.StrAt(0) },
		func(p Prop) (Node, bool) { return p.Owner() },
	)
}

// ItemIter is a lazy DFS cursor over an already-built Index: a node
// offset plus how far into that node's own property run the cursor
// has consumed. Advancing past a node's properties moves to the next
// node in preorder via dfsNext, so walking the whole tree is one
// O(n) pass over the record buffer with no recursion.
type ItemIter struct {
	idx         *Index
	node        uint32
	propIdx     uint32
	nodeEmitted bool
}

func itemIterFrom(idx *Index, node uint32) *ItemIter {
	return &ItemIter{idx: idx, node: node}
}

// Next advances the cursor by exactly one item (a Node or a Prop).
func (it *ItemIter) Next() (Item, bool) {
	for {
		if it.node == nilOff {
			return Item{}, false
		}
		if !it.nodeEmitted {
			it.nodeEmitted = true
			return Item{kind: ItemKindNode, node: Node{idx: it.idx, off: it.node}}, true
		}

		rec := readNode(it.idx.buf, int(it.node))
		if it.propIdx < rec.numProps {
			propOff := int(it.node) + nodeRecordSize + int(it.propIdx)*propRecordSize
			it.propIdx++
			p := Prop{idx: it.idx, off: propOff, owner: it.node}
			return Item{kind: ItemKindProp, prop: p}, true
		}

		next, ok := dfsNext(it.idx, it.node)
		if !ok {
			it.node = nilOff
			continue
		}
		it.node = next
		it.nodeEmitted = false
		it.propIdx = 0
	}
}

func (it *ItemIter) asNextFn() walkNext {
	return func() (walk.Kind, Node, Prop, bool) {
		item, ok := it.Next()
		if !ok {
			return 0, Node{}, Prop{}, false
		}
		if n, isNode := item.Node(); isNode {
			return walk.KindNode, n, Prop{}, true
		}
		p, _ := item.Prop()
		return walk.KindProp, Node{}, p, true
	}
}

// NextNode skips items until a Node, then yields it.
func (it *ItemIter) NextNode() (Node, bool) { return walk.NextNode(it.asNextFn()) }

// NextProp skips nodes and yields the next property anywhere
// downstream.
func (it *ItemIter) NextProp() (Prop, bool) { return walk.NextProp(it.asNextFn()) }

// NextNodeProp yields the very next item only if it is still a
// property of the node the cursor is currently on.
func (it *ItemIter) NextNodeProp() (Prop, bool) { return walk.NextNodeProp(it.asNextFn()) }

// FindNextCompatibleNode advances one node, then scans properties for
// name == "compatible" with a first string value equal to compatible.
func (it *ItemIter) FindNextCompatibleNode(compatible string) (Node, bool) {
	return findNextCompatibleNode(it.asNextFn(), compatible)
}

// NodeIter filters the item stream to nodes only.
type NodeIter struct{ base ItemIter }

func (it *NodeIter) Next() (Node, bool) { return it.base.NextNode() }

// PropIter filters the item stream to properties anywhere in the tree.
type PropIter struct{ base ItemIter }

func (it *PropIter) Next() (Prop, bool) { return it.base.NextProp() }

// NodePropIter walks one node's own packed property-record run.
type NodePropIter struct {
	idx       *Index
	off       int
	remaining int
	owner     uint32
}

// Next returns the next property in the run, or false once exhausted.
func (it *NodePropIter) Next() (Prop, bool) {
	if it.remaining <= 0 {
		return Prop{}, false
	}
	p := Prop{idx: it.idx, off: it.off, owner: it.owner}
	it.off += propRecordSize
	it.remaining--
	return p, true
}

// SiblingIter walks a same-parent sibling chain starting at cur. A
// node's `next` field is the combined sibling/DFS-successor thread
// (see Build), so once it crosses out of parent's children the chain
// is no longer a sibling and the iterator must stop rather than follow
// it into the next level up.
type SiblingIter struct {
	idx     *Index
	parent  uint32
	cur     uint32
	started bool
}

// Next returns the next sibling, or false once the chain ends.
func (it *SiblingIter) Next() (Node, bool) {
	if it.started {
		rec := readNode(it.idx.buf, int(it.cur))
		if rec.next == nilOff {
			it.cur = nilOff
		} else if readNode(it.idx.buf, int(rec.next)).parent != it.parent {
			it.cur = nilOff
		} else {
			it.cur = rec.next
		}
	}
	it.started = true
	if it.cur == nilOff {
		return Node{}, false
	}
	return Node{idx: it.idx, off: it.cur}, true
}
