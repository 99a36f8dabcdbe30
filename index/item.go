package index

// ItemKind distinguishes the two kinds of values a DFS traversal over
// an Index yields. Mirrors the root package's ItemKind so callers that
// switch on Kind() read the same regardless of which engine produced
// the item.
type ItemKind int

const (
	ItemKindNode ItemKind = iota
	ItemKindProp
)

// Item is either a Node or a Prop, produced by Index.Items/ItemIter.
type Item struct {
	kind ItemKind
	node Node
	prop Prop
}

// Kind reports which variant this item holds.
func (i Item) Kind() ItemKind { return i.kind }

// Node returns the node view of this item, if it is one.
func (i Item) Node() (Node, bool) {
	return i.node, i.kind == ItemKindNode
}

// Prop returns the property view of this item, if it is one.
func (i Item) Prop() (Prop, bool) {
	return i.prop, i.kind == ItemKindProp
}
