package rphmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSingleton(refStart, length int, id string) *HMM {
	sm := IdentitySubstitutionMatrix(0.02)
	seq := NewProfileSequence("chr1", refStart, length, id)
	for i := range seq.Probs {
		seq.Probs[i] = 0
	}
	for pos := 0; pos < length; pos++ {
		seq.Probs[pos*Alphabet] = 255
	}
	return newSingletonHMM(seq, sm)
}

func TestNewSingletonHMM(t *testing.T) {
	h := newTestSingleton(10, 5, "r0")
	assert.Equal(t, "chr1", h.RefName())
	assert.Equal(t, 10, h.RefStart())
	assert.Equal(t, 15, h.RefEnd())
	assert.Equal(t, 1, h.ColumnNumber())
	assert.Equal(t, 1, h.MaxDepth())

	n := 0
	h.FirstColumn().Cells(func(*Cell) { n++ })
	assert.Equal(t, 2, n)
}

func TestFuseAdjacent(t *testing.T) {
	l := newTestSingleton(0, 5, "r0")
	r := newTestSingleton(5, 5, "r1")

	fused, err := Fuse(l, r)
	require.NoError(t, err)
	assert.Equal(t, 0, fused.RefStart())
	assert.Equal(t, 10, fused.RefEnd())
	assert.Equal(t, 2, fused.ColumnNumber())
	assert.Len(t, fused.ProfileSeqs(), 2)

	// The boundary merge column must be trivial: one merge cell, fanning in
	// every left cell and fanning out to every right cell.
	m := fused.FirstColumn().nextMerge
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Depth())
}

func TestFuseInsertsGapColumn(t *testing.T) {
	l := newTestSingleton(0, 5, "r0")
	r := newTestSingleton(8, 5, "r1")

	fused, err := Fuse(l, r)
	require.NoError(t, err)
	assert.Equal(t, 3, fused.ColumnNumber())

	gap := nextColumn(fused.FirstColumn())
	require.NotNil(t, gap)
	assert.Equal(t, 0, gap.Depth())
	assert.Equal(t, 5, gap.RefStart())
	assert.Equal(t, 3, gap.Length())
}

func TestFuseRejectsOverlap(t *testing.T) {
	l := newTestSingleton(0, 5, "r0")
	r := newTestSingleton(3, 5, "r1")
	_, err := Fuse(l, r)
	assert.Error(t, err)
}

func TestFuseRejectsMismatchedReference(t *testing.T) {
	l := newTestSingleton(0, 5, "r0")
	r := newTestSingleton(5, 5, "r1")
	r.refName = "chr2"
	_, err := Fuse(l, r)
	assert.Error(t, err)
}
