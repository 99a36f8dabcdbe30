package fdt

// Node is a handle to one BEGIN_NODE token: a borrowed name slice plus
// a snapshot of the parse cursor positioned just after that token. It
// is cheaply cloneable (a value type holding only offsets and a tree
// pointer) and carries no parent/child pointers of its own; navigation
// continues by resuming iteration from its cursor.
type Node struct {
	tree   *Tree
	name   []byte
	cursor Iter
}

// Name returns the node's name as raw bytes, not yet decoded to text.
func (n Node) Name() []byte { return n.name }

// NameString decodes the node name as text (see DecodeName).
func (n Node) NameString() (string, error) { return DecodeName(n.name) }

// Props returns an iterator over this node's own properties: it stops
// at the first item that is not a property of this node, i.e. at the
// node's first child or its EndNode.
func (n Node) Props() *NodePropIter {
	cur := n.cursor
	return &NodePropIter{base: cur}
}

// FindNextCompatibleNode continues the DFS from just after this node,
// looking for the next node whose compatible property's first string
// equals compatible.
func (n Node) FindNextCompatibleNode(compatible string) (Node, bool) {
	cur := n.cursor
	return cur.FindNextCompatibleNode(compatible)
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
