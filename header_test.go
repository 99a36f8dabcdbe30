package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt"
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

func buildRootCompatibleTree() []byte {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropStrings("compatible", []string{"riscv-virtio"})
	b.BeginNode("soc")
	b.EndNode()
	b.EndNode()
	return b.Build()
}

func TestOpenRejectsBadMagic(t *testing.T) {
	buf := buildSimpleTree()
	buf[0] = 0x00
	_, err := fdt.Open(buf)
	require.ErrorIs(t, err, fdt.ErrInvalidMagic)
}

func TestOpenAcceptsBufferShorterThanTotalsize(t *testing.T) {
	buf := buildSimpleTree()
	_, err := fdt.Open(buf[:len(buf)-1])
	require.NoError(t, err)
}

func TestOpenRejectsBufferLongerThanTotalsize(t *testing.T) {
	buf := buildSimpleTree()
	buf = append(buf, 0x00)
	_, err := fdt.Open(buf)
	require.ErrorIs(t, err, fdt.ErrParse)
}

func TestOpenAcceptsValidTree(t *testing.T) {
	buf := buildSimpleTree()
	tree, err := fdt.Open(buf)
	require.NoError(t, err)
	require.EqualValues(t, 17, tree.Version())
	require.EqualValues(t, 16, tree.LastCompatibleVersion())
}

func TestReservedEntriesEmptyByDefault(t *testing.T) {
	buf := buildSimpleTree()
	tree, err := fdt.Open(buf)
	require.NoError(t, err)

	_, ok := tree.ReservedEntries().Next()
	require.False(t, ok)
}
