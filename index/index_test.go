package index_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt"
	"github.com/go-fdt/fdt/index"
	"github.com/go-fdt/fdt/internal/dtbtest"
)

func buildSimpleTree() []byte {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropStrings("compatible", []string{"riscv-virtio"})
	b.PropU32("#address-cells", 2)
	b.BeginNode("cpus")
	b.PropU32("#address-cells", 1)
	b.BeginNode("cpu@0")
	b.PropString("device_type", "cpu")
	b.PropU32("reg", 0)
	b.EndNode()
	b.EndNode()
	b.BeginNode("soc")
	b.PropStrings("compatible", []string{"simple-bus"})
	b.BeginNode("uart@10000000")
	b.PropStrings("compatible", []string{"ns16550a"})
	b.EndNode()
	b.EndNode()
	b.EndNode()
	return b.Build()
}

func buildIndex(t *testing.T, raw []byte) *index.Index {
	t.Helper()
	tree, err := fdt.Open(raw)
	require.NoError(t, err)

	layout, err := index.RequiredLayout(tree)
	require.NoError(t, err)

	buf := make([]byte, layout.Size)
	idx, err := index.Build(tree, buf)
	require.NoError(t, err)
	return idx
}

func TestBuildRejectsUndersizedBuffer(t *testing.T) {
	tree, err := fdt.Open(buildSimpleTree())
	require.NoError(t, err)

	_, err = index.Build(tree, make([]byte, 4))
	require.ErrorIs(t, err, fdt.ErrNotEnoughMemory)
}

func TestIndexNodesYieldsDFSOrder(t *testing.T) {
	idx := buildIndex(t, buildSimpleTree())

	var names []string
	it := idx.Nodes()
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

func TestIndexNodePropsAndChildren(t *testing.T) {
	idx := buildIndex(t, buildSimpleTree())

	root, ok := idx.Root()
	require.True(t, ok)
	require.EqualValues(t, 2, root.NumProps())

	var childNames []string
	children := root.Children()
	for {
		c, ok := children.Next()
		if !ok {
			break
		}
		name, err := c.NameString()
		require.NoError(t, err)
		childNames = append(childNames, name)
	}
	require.Equal(t, []string{"cpus", "soc"}, childNames)
}

func TestIndexPropOwnerIsDirectLookup(t *testing.T) {
	idx := buildIndex(t, buildSimpleTree())

	it := idx.Props()
	var p index.Prop
	for {
		cand, ok := it.Next()
		require.True(t, ok)
		name, err := cand.NameString()
		require.NoError(t, err)
		if name == "device_type" {
			p = cand
			break
		}
	}

	owner, ok := p.Owner()
	require.True(t, ok)
	name, err := owner.NameString()
	require.NoError(t, err)
	require.Equal(t, "cpu@0", name)
}

func TestIndexFindFirstCompatibleNodeCanReturnRoot(t *testing.T) {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropStrings("compatible", []string{"riscv-virtio"})
	b.BeginNode("soc")
	b.EndNode()
	b.EndNode()

	idx := buildIndex(t, b.Build())
	n, ok := idx.FindFirstCompatibleNode("riscv-virtio")
	require.True(t, ok)
	name, err := n.NameString()
	require.NoError(t, err)
	require.Equal(t, "", name)
}

func TestIndexFindNextCompatibleNodeFindsDescendant(t *testing.T) {
	idx := buildIndex(t, buildSimpleTree())

	root, ok := idx.Root()
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

func TestIndexSiblingsWalksSameLevelOnly(t *testing.T) {
	idx := buildIndex(t, buildSimpleTree())

	root, ok := idx.Root()
	require.True(t, ok)
	children := root.Children()

	first, ok := children.Next()
	require.True(t, ok)
	name, err := first.NameString()
	require.NoError(t, err)
	require.Equal(t, "cpus", name)

	siblings := first.Siblings()
	var names []string
	for {
		s, ok := siblings.Next()
		if !ok {
			break
		}
		n, err := s.NameString()
		require.NoError(t, err)
		names = append(names, n)
	}
	require.Equal(t, []string{"cpus", "soc"}, names)
}
