package rphmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignColumnsEqualizesBoundaries(t *testing.T) {
	a := newTestSingleton(0, 10, "a")
	b := newTestSingleton(3, 4, "b")

	require.NoError(t, AlignColumns(a, b))

	assert.Equal(t, a.RefStart(), b.RefStart())
	assert.Equal(t, a.RefEnd(), b.RefEnd())
	assert.Equal(t, a.ColumnNumber(), b.ColumnNumber())

	ca, cb := a.FirstColumn(), b.FirstColumn()
	for ca != nil && cb != nil {
		assert.Equal(t, ca.RefStart(), cb.RefStart())
		assert.Equal(t, ca.Length(), cb.Length())
		ca, cb = nextColumn(ca), nextColumn(cb)
	}
	assert.Nil(t, ca)
	assert.Nil(t, cb)
}

func TestAlignColumnsNoOpWhenAlreadyAligned(t *testing.T) {
	a := newTestSingleton(0, 10, "a")
	b := newTestSingleton(0, 10, "b")

	require.NoError(t, AlignColumns(a, b))
	assert.Equal(t, 1, a.ColumnNumber())
	assert.Equal(t, 1, b.ColumnNumber())
}

func TestAlignColumnsRejectsMismatchedReference(t *testing.T) {
	a := newTestSingleton(0, 10, "a")
	b := newTestSingleton(0, 10, "b")
	b.refName = "chr2"
	assert.Error(t, AlignColumns(a, b))
}
