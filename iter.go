package fdt

import "github.com/go-fdt/fdt/internal/walk"

// noOpenNode is the propParentOff sentinel meaning "no node is
// currently open".
const noOpenNode = -1

// Iter is a lazy, cloneable depth-first cursor over a tree's token
// stream. Cloning is free: an Iter holds only a tree pointer and a
// couple of offsets, so `cur := it` is a complete, independent clone.
type Iter struct {
	tree *Tree

	offset        int
	propParentOff int // offset of the open node's BEGIN_NODE token, or noOpenNode
	depth         int // number of currently-open ancestor nodes, including the open one
	parentDepth   int // depth value just before the open node's BEGIN_NODE, for Prop.Owner rewinding
}

func (it *Iter) poison() { it.offset = len(it.tree.buf) }

// Next advances the cursor by exactly one struct-block item (a Node or
// a Prop) and reports whether one was produced. Once it returns false
// the cursor has reached END, or hit a malformed token, and keeps
// returning false on every later call.
func (it *Iter) Next() (Item, bool) {
	for {
		startOff := it.offset
		tok, newOff, err := NextToken(it.tree.buf, it.offset)
		if err != nil {
			it.poison()
			return Item{}, false
		}
		it.offset = newOff

		switch tok.Kind {
		case TokenBeginNode:
			parentDepthBefore := it.depth
			it.depth++
			it.propParentOff = startOff
			it.parentDepth = parentDepthBefore
			n := Node{tree: it.tree, name: tok.Name, cursor: *it}
			return Item{kind: ItemKindNode, node: n}, true

		case TokenProp:
			if it.propParentOff == noOpenNode {
				// Property outside any node: the cursor is poisoned and
				// stops, as for any other malformed token. No error
				// value is surfaced; the caller sees the stream end.
				it.poison()
				return Item{}, false
			}
			rewound := Iter{
				tree:          it.tree,
				offset:        it.propParentOff,
				propParentOff: it.propParentOff,
				depth:         it.parentDepth,
				parentDepth:   it.parentDepth,
			}
			p := Prop{tree: it.tree, value: tok.PropValue, nameOff: tok.PropNameOff, parent: rewound}
			return Item{kind: ItemKindProp, prop: p}, true

		case TokenEndNode:
			if it.depth == 0 {
				// END_NODE without a matching BEGIN_NODE: poisoned
				// and stopped, as above.
				it.poison()
				return Item{}, false
			}
			it.depth--
			it.propParentOff = noOpenNode

		case TokenNop:
			// skip

		case TokenEnd:
			it.poison()
			return Item{}, false
		}
	}
}

func (it *Iter) asNextFn() walk.Next[Node, Prop] {
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
func (it *Iter) NextNode() (Node, bool) { return walk.NextNode(it.asNextFn()) }

// NextProp skips nodes and yields the next property anywhere
// downstream.
func (it *Iter) NextProp() (Prop, bool) { return walk.NextProp(it.asNextFn()) }

// NextNodeProp yields the very next item only if it is still a
// property of the currently open node.
func (it *Iter) NextNodeProp() (Prop, bool) { return walk.NextNodeProp(it.asNextFn()) }

// FindNextCompatibleNode advances one node, then scans properties for
// name == "compatible" with a first string value equal to compatible,
// returning the owning node of the first match strictly after the
// cursor's current position.
func (it *Iter) FindNextCompatibleNode(compatible string) (Node, bool) {
	return walk.FindNextCompatibleNode(it.asNextFn(), compatible,
		func(p Prop) (string, error) { return p.NameString() },
		func(p Prop) (string, error) { return p.StrAt(0) },
		func(p Prop) (Node, bool) { return p.Owner() },
	)
}

// NodeIter filters the item stream to nodes only.
type NodeIter struct{ base Iter }

func (it *NodeIter) Next() (Node, bool) { return it.base.NextNode() }

// PropIter filters the item stream to properties anywhere in the tree.
type PropIter struct{ base Iter }

func (it *PropIter) Next() (Prop, bool) { return it.base.NextProp() }

// NodePropIter walks one node's own property run and halts at the
// first non-property item.
type NodePropIter struct{ base Iter }

func (it *NodePropIter) Next() (Prop, bool) { return it.base.NextNodeProp() }
