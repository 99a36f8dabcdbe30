package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt"
)

func TestNextTokenDecodesBeginNode(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x01, 'c', 'p', 'u', 0x00}
	tok, next, err := fdt.NextToken(buf, 0)
	require.NoError(t, err)
	require.Equal(t, fdt.TokenBeginNode, tok.Kind)
	require.Equal(t, []byte("cpu"), tok.Name)
	require.Equal(t, 8, next)
}

func TestNextTokenRealignsOddNameLength(t *testing.T) {
	// "cpu0" (4 bytes) + NUL = 5 bytes, rounds up to 8.
	buf := []byte{0x00, 0x00, 0x00, 0x01, 'c', 'p', 'u', '0', 0x00, 0x00, 0x00}
	tok, next, err := fdt.NextToken(buf, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("cpu0"), tok.Name)
	require.Equal(t, 12, next)
}

func TestNextTokenDecodesEndNode(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x02}
	tok, next, err := fdt.NextToken(buf, 0)
	require.NoError(t, err)
	require.Equal(t, fdt.TokenEndNode, tok.Kind)
	require.Equal(t, 4, next)
}

func TestNextTokenDecodesProp(t *testing.T) {
	// opcode PROP, len=4, nameoff=0, value=[0xde,0xad,0xbe,0xef]
	buf := []byte{
		0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x00,
		0xde, 0xad, 0xbe, 0xef,
	}
	tok, next, err := fdt.NextToken(buf, 0)
	require.NoError(t, err)
	require.Equal(t, fdt.TokenProp, tok.Kind)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, tok.PropValue)
	require.EqualValues(t, 0, tok.PropNameOff)
	require.Equal(t, 16, next)
}

func TestNextTokenDecodesNopAndEnd(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x09}
	tok, next, err := fdt.NextToken(buf, 0)
	require.NoError(t, err)
	require.Equal(t, fdt.TokenNop, tok.Kind)

	tok, next, err = fdt.NextToken(buf, next)
	require.NoError(t, err)
	require.Equal(t, fdt.TokenEnd, tok.Kind)
}

func TestNextTokenRejectsUnalignedOffset(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09}
	_, _, err := fdt.NextToken(buf, 1)
	require.ErrorIs(t, err, fdt.ErrParse)
}

func TestNextTokenRejectsUnknownOpcode(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x7f}
	_, _, err := fdt.NextToken(buf, 0)
	require.ErrorIs(t, err, fdt.ErrParse)
}
