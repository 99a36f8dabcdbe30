// Package index builds, in a single pass, an in-place tree of
// fixed-layout node/property records inside a caller-supplied byte
// buffer, then exposes DFS, sibling and per-node-property navigation
// over it. It is the accelerated counterpart to the root package's
// on-the-fly cursor: both share the same token parser and the same
// shared traversal algorithms (internal/walk), but this package pays
// an O(tokens) build up front so repeated navigation and sibling
// lookups no longer need to reparse anything.
package index

import (
	"unsafe"

	"github.com/go-fdt/fdt"
)

// Layout is the (size, align) pair a caller must provide a buffer of
// before calling Build.
type Layout struct {
	Size  uint64
	Align uint64
}

// RequiredLayout performs the sizing pre-pass: one O(tokens) scan
// counting nodes and properties, from which the required buffer size
// is NodeCount*sizeof(node record) + PropCount*sizeof(prop record).
func RequiredLayout(tree *fdt.Tree) (Layout, error) {
	var nodeCount, propCount uint64

	off := int(tree.OffDtStruct())
	for {
		tok, newOff, err := fdt.NextToken(tree.Buf(), off)
		if err != nil {
			return Layout{}, fdt.WrapError(fdt.KindParse, "index layout scan", err)
		}
		off = newOff

		switch tok.Kind {
		case fdt.TokenBeginNode:
			nodeCount++
		case fdt.TokenProp:
			propCount++
		case fdt.TokenEnd:
			size, err := layoutSize(nodeCount, propCount)
			if err != nil {
				return Layout{}, err
			}
			return Layout{Size: size, Align: recordAlign}, nil
		}
	}
}

func layoutSize(nodeCount, propCount uint64) (uint64, error) {
	nodesBytes, err := safeMultiply(nodeCount, nodeRecordSize)
	if err != nil {
		return 0, err
	}
	propsBytes, err := safeMultiply(propCount, propRecordSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(nodesBytes, propsBytes)
}

// Index is a reference to the source tree plus a pointer to the root
// node record. All node/property records live inside one caller-owned
// byte buffer; index handles borrow into both that buffer and the
// tree's own source buffer.
type Index struct {
	tree    *fdt.Tree
	buf     []byte
	rootOff uint32
}

// Build first runs the RequiredLayout sizing scan to check that buf,
// which must be at least RequiredLayout(tree).Size bytes, is large
// enough, then walks tree's token stream a second time writing
// node/property records into buf.
//
// The `next` field on each node record is established incrementally as
// a combined sibling/DFS-successor thread: when a new node is emitted,
// the previously emitted node's next is pointed at it; if the
// currently open node's next already named an earlier child (whose
// subtree is now closed), that child's next is pointed at the new node
// too; and the open node's own next is then set to the new node. This
// is what lets traversal step with a single
// "first_child, else next" rule and no parent-climbing: a leaf's next
// already points past its entire ancestor chain to whatever comes next
// in preorder, not merely to a sibling.
func Build(tree *fdt.Tree, buf []byte) (*Index, error) {
	layout, err := RequiredLayout(tree)
	if err != nil {
		return nil, err
	}
	if uint64(len(buf)) < layout.Size {
		return nil, fdt.NewError(fdt.KindNotEnoughMemory, "index buffer smaller than required layout")
	}

	front := 0
	rootOff := nilOff
	curNode := nilOff
	prevNewNode := nilOff
	inHeader := false

	off := int(tree.OffDtStruct())
	for {
		tok, newOff, err := fdt.NextToken(tree.Buf(), off)
		if err != nil {
			return nil, fdt.WrapError(fdt.KindParse, "index build token scan", err)
		}
		off = newOff

		switch tok.Kind {
		case fdt.TokenBeginNode:
			if front+nodeRecordSize > len(buf) {
				return nil, fdt.NewError(fdt.KindNotEnoughMemory, "index buffer exhausted building node")
			}
			newRec := uint32(front)
			writeNode(buf, front, nodeRecord{
				parent:     curNode,
				firstChild: nilOff,
				next:       nilOff,
				nameOff:    uint32(sliceOffset(tree.Buf(), tok.Name)),
				nameLen:    uint32(len(tok.Name)),
				numProps:   0,
			})
			front += nodeRecordSize

			if curNode == nilOff {
				rootOff = newRec
			} else {
				oldNext := readNode(buf, int(curNode)).next
				setNodeNext(buf, int(prevNewNode), newRec)
				if oldNext != nilOff {
					setNodeNext(buf, int(oldNext), newRec)
				}
				setNodeNext(buf, int(curNode), newRec)
				if readNode(buf, int(curNode)).firstChild == nilOff {
					setNodeFirstChild(buf, int(curNode), newRec)
				}
			}

			curNode = newRec
			prevNewNode = newRec
			inHeader = true

		case fdt.TokenProp:
			if !inHeader {
				return nil, fdt.NewError(fdt.KindParse, "property outside a node or after a child node")
			}
			if front+propRecordSize > len(buf) {
				return nil, fdt.NewError(fdt.KindNotEnoughMemory, "index buffer exhausted building property")
			}
			writeProp(buf, front, propRecord{
				valueOff: uint32(sliceOffset(tree.Buf(), tok.PropValue)),
				valueLen: uint32(len(tok.PropValue)),
				nameOff:  tok.PropNameOff,
			})
			front += propRecordSize
			incNumProps(buf, int(curNode))

		case fdt.TokenEndNode:
			if curNode == nilOff {
				return nil, fdt.NewError(fdt.KindParse, "end node without matching begin node")
			}
			curNode = readNode(buf, int(curNode)).parent
			inHeader = false

		case fdt.TokenNop:
			// skip

		case fdt.TokenEnd:
			if curNode != nilOff {
				return nil, fdt.NewError(fdt.KindParse, "end of struct block with open nodes")
			}
			return &Index{tree: tree, buf: buf[:front], rootOff: rootOff}, nil
		}
	}
}

// dfsNext returns the next node offset in preorder after off, or false
// once traversal has exhausted the tree: off's first child if it has
// one, else its own next pointer, which Build has already threaded
// past off's entire subtree to the correct preorder successor. No
// parent-climbing is needed; this is the O(1) step the record layout
// is designed for.
func dfsNext(idx *Index, off uint32) (uint32, bool) {
	rec := readNode(idx.buf, int(off))
	if rec.firstChild != nilOff {
		return rec.firstChild, true
	}
	if rec.next != nilOff {
		return rec.next, true
	}
	return 0, false
}

// sliceOffset computes sub's byte offset within parent's backing
// array. Both tok.Name and tok.PropValue are always sub-slices of
// tree.Buf() produced by NextToken, so this pointer-arithmetic step is
// the local "unsafe" piece the design notes call for: the arena is the
// caller's byte buffer, not a separate allocation, and after Build
// returns, every record is read-only.
func sliceOffset(parent, sub []byte) int {
	p := unsafe.Pointer(unsafe.SliceData(parent))
	s := unsafe.Pointer(unsafe.SliceData(sub))
	return int(uintptr(s) - uintptr(p))
}

// Root returns the index's root node, if the tree had one.
func (idx *Index) Root() (Node, bool) {
	if idx.rootOff == nilOff {
		return Node{}, false
	}
	return Node{idx: idx, off: idx.rootOff}, true
}

// Items returns the DFS item stream starting at the root.
func (idx *Index) Items() *ItemIter { return itemIterFrom(idx, idx.rootOff) }

// Nodes filters Items to nodes only.
func (idx *Index) Nodes() *NodeIter { return &NodeIter{base: *itemIterFrom(idx, idx.rootOff)} }

// Props filters Items to properties anywhere in the tree.
func (idx *Index) Props() *PropIter { return &PropIter{base: *itemIterFrom(idx, idx.rootOff)} }

// FindFirstCompatibleNode returns the first node (DFS order, including
// the root) whose own compatible property's first string equals
// compatible.
func (idx *Index) FindFirstCompatibleNode(compatible string) (Node, bool) {
	it := idx.Nodes()
	for {
		n, ok := it.Next()
		if !ok {
			return Node{}, false
		}
		if nodeHasCompatible(n, compatible) {
			return n, true
		}
	}
}

