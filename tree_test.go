package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt"
)

func TestNodesYieldsDFSOrder(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	var names []string
	it := tree.Nodes()
	for {
		n, ok := it.Next()
		if !ok {
			break
		}
		name, err := n.NameString()
		require.NoError(t, err)
		names = append(names, name)
	}

	require.Equal(t, []string{"", "cpus", "cpu@0", "soc", "uart@10000000"}, names)
}

func TestNodePropsStopsAtFirstChild(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	root, ok := tree.Root()
	require.True(t, ok)

	var propNames []string
	props := root.Props()
	for {
		p, ok := props.Next()
		if !ok {
			break
		}
		name, err := p.NameString()
		require.NoError(t, err)
		propNames = append(propNames, name)
	}
	require.Equal(t, []string{"compatible", "#address-cells"}, propNames)
}

func TestPropOwnerReconstructsOwningNode(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	p, ok := tree.FindProp(func(p fdt.Prop) bool {
		name, err := p.NameString()
		return err == nil && name == "device_type"
	})
	require.True(t, ok)

	owner, ok := p.Owner()
	require.True(t, ok)
	name, err := owner.NameString()
	require.NoError(t, err)
	require.Equal(t, "cpu@0", name)
}

func TestFindFirstCompatibleNodeCanReturnRoot(t *testing.T) {
	b := buildRootCompatibleTree()
	tree, err := fdt.Open(b)
	require.NoError(t, err)

	n, ok := tree.FindFirstCompatibleNode("riscv-virtio")
	require.True(t, ok)
	name, err := n.NameString()
	require.NoError(t, err)
	require.Equal(t, "", name)
}

func TestFindNextCompatibleNodeSkipsStartingNode(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	root, ok := tree.Root()
	require.True(t, ok)

	// soc and uart@10000000 are not "riscv-virtio" compatible, so
	// starting from root must not re-match root's own property.
	n, ok := root.FindNextCompatibleNode("riscv-virtio")
	require.False(t, ok)
	_ = n
}

func TestFindNextCompatibleNodeFindsDescendant(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	root, ok := tree.Root()
	require.True(t, ok)

	n, ok := root.FindNextCompatibleNode("simple-bus")
	require.True(t, ok)
	name, err := n.NameString()
	require.NoError(t, err)
	require.Equal(t, "soc", name)

	next, ok := n.FindNextCompatibleNode("ns16550a")
	require.True(t, ok)
	name, err = next.NameString()
	require.NoError(t, err)
	require.Equal(t, "uart@10000000", name)
}

func TestIterExhaustionStaysExhausted(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	it := tree.Items()
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
	}
	_, ok := it.Next()
	require.False(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
}
