// Package walk implements the four derived traversal algorithms
// (next_node, next_prop, next_node_prop, find_next_compatible_node)
// exactly once, parameterized over the node type N and property type
// P a backend produces. The unindexed token-stream cursor and the
// indexed record cursor each adapt their own single-step advance into
// the Next[N, P] shape below and get all four algorithms for free,
// instead of maintaining two copies of the same control flow.
package walk

// Kind tags what a single step of a cursor produced.
type Kind int

const (
	KindNode Kind = iota
	KindProp
)

// Next advances a cursor by exactly one item. ok is false once the
// cursor is exhausted or has hit a structural error; once false it
// must keep returning false.
type Next[N, P any] func() (kind Kind, node N, prop P, ok bool)

// NextNode skips items until a node, then returns it.
func NextNode[N, P any](next Next[N, P]) (N, bool) {
	for {
		kind, node, _, ok := next()
		if !ok {
			var zero N
			return zero, false
		}
		if kind == KindNode {
			return node, true
		}
	}
}

// NextProp skips nodes and returns the next property anywhere
// downstream.
func NextProp[N, P any](next Next[N, P]) (P, bool) {
	for {
		kind, _, prop, ok := next()
		if !ok {
			var zero P
			return zero, false
		}
		if kind == KindProp {
			return prop, true
		}
	}
}

// NextNodeProp peeks a single item and returns it only if it is a
// property, i.e. still attached to the node whose cursor this is.
func NextNodeProp[N, P any](next Next[N, P]) (P, bool) {
	kind, _, prop, ok := next()
	if !ok || kind != KindProp {
		var zero P
		return zero, false
	}
	return prop, true
}

// FindNextCompatibleNode advances one node, then scans properties
// across the rest of the stream for name == "compatible" and a first
// string value equal to compatible, returning the owning node of the
// first match. The initial "advance one node" step exists so that
// calling this repeatedly, each time continuing from the previously
// returned node's own cursor, yields the next compatible node rather
// than the same one again.
func FindNextCompatibleNode[N, P any](
	next Next[N, P],
	compatible string,
	propName func(P) (string, error),
	propFirstString func(P) (string, error),
	owner func(P) (N, bool),
) (N, bool) {
	if _, ok := NextNode(next); !ok {
		var zero N
		return zero, false
	}
	for {
		p, ok := NextProp(next)
		if !ok {
			var zero N
			return zero, false
		}
		name, err := propName(p)
		if err != nil || name != "compatible" {
			continue
		}
		s, err := propFirstString(p)
		if err != nil || s != compatible {
			continue
		}
		return owner(p)
	}
}
