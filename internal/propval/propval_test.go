package propval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-fdt/fdt/internal/propval"
)

func TestValueU32(t *testing.T) {
	v := propval.Value{Raw: []byte{0x00, 0x00, 0x00, 0x2a}}
	x, err := v.U32(0)
	require.NoError(t, err)
	require.EqualValues(t, 42, x)
}

func TestValueU32OutOfRange(t *testing.T) {
	v := propval.Value{Raw: []byte{0x00, 0x00}}
	_, err := v.U32(0)
	require.ErrorIs(t, err, propval.ErrOutOfRange)
}

func TestValueStrCount(t *testing.T) {
	v := propval.Value{Raw: []byte("a\x00bc\x00")}
	n, err := v.StrCount()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestValueStrCountRejectsMissingTerminator(t *testing.T) {
	v := propval.Value{Raw: []byte("a\x00bc")}
	_, err := v.StrCount()
	require.ErrorIs(t, err, propval.ErrBadString)
}

func TestValueStrCountRejectsEmptyElement(t *testing.T) {
	v := propval.Value{Raw: []byte("a\x00\x00")}
	_, err := v.StrCount()
	require.ErrorIs(t, err, propval.ErrBadString)
}

func TestValueStrList(t *testing.T) {
	v := propval.Value{Raw: []byte("a\x00bc\x00")}
	out := make([]string, 2)
	n, err := v.StrList(out)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"a", "bc"}, out)
}
