package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt"
	"github.com/go-fdt/fdt/internal/dtbtest"
)

func TestPropU32RoundTrips(t *testing.T) {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropU32("#address-cells", 2)
	b.EndNode()
	tree, err := fdt.Open(b.Build())
	require.NoError(t, err)

	p, ok := tree.FindProp(func(p fdt.Prop) bool {
		name, err := p.NameString()
		return err == nil && name == "#address-cells"
	})
	require.True(t, ok)

	v, err := p.U32(0)
	require.NoError(t, err)
	require.EqualValues(t, 2, v)
}

func TestPropStringsRoundTrips(t *testing.T) {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropStrings("compatible", []string{"a,b", "c,d"})
	b.EndNode()
	tree, err := fdt.Open(b.Build())
	require.NoError(t, err)

	p, ok := tree.FindProp(func(p fdt.Prop) bool {
		name, err := p.NameString()
		return err == nil && name == "compatible"
	})
	require.True(t, ok)

	ss, err := p.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"a,b", "c,d"}, ss)
}

func TestPropEmptyHasZeroLength(t *testing.T) {
	b := dtbtest.New()
	b.BeginNode("")
	b.PropEmpty("interrupt-controller")
	b.EndNode()
	tree, err := fdt.Open(b.Build())
	require.NoError(t, err)

	p, ok := tree.FindProp(func(p fdt.Prop) bool {
		name, err := p.NameString()
		return err == nil && name == "interrupt-controller"
	})
	require.True(t, ok)
	require.Equal(t, 0, p.Length())
}
