package rphmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapComponentsSeparatesDisjointRuns(t *testing.T) {
	path1 := []*HMM{newTestSingleton(0, 5, "a0"), newTestSingleton(10, 5, "a1")}
	path2 := []*HMM{newTestSingleton(20, 5, "b0")}

	comps := overlapComponents(path1, path2)
	require.Len(t, comps, 3)
	for _, c := range comps {
		assert.True(t, len(c.left) == 0 || len(c.right) == 0, "no overlap in this case, every component is a singleton")
	}
}

func TestOverlapComponentsGroupsOverlappingRuns(t *testing.T) {
	path1 := []*HMM{newTestSingleton(0, 10, "a0")}
	path2 := []*HMM{newTestSingleton(3, 3, "b0"), newTestSingleton(6, 3, "b1")}

	comps := overlapComponents(path1, path2)
	require.Len(t, comps, 1)
	assert.Len(t, comps[0].left, 1)
	assert.Len(t, comps[0].right, 2)
}

func TestMergeTwoPathsPreservesAllReads(t *testing.T) {
	params := DefaultParams
	path1 := []*HMM{newTestSingleton(0, 10, "a0"), newTestSingleton(20, 10, "a1")}
	path2 := []*HMM{newTestSingleton(5, 10, "b0")}

	merged, err := mergeTwoPaths(path1, path2, params)
	require.NoError(t, err)

	total := 0
	for _, h := range merged {
		total += len(h.ProfileSeqs())
	}
	assert.Equal(t, 3, total)
}

func TestMergeTilingPathsRejectsExcessiveDepth(t *testing.T) {
	params := DefaultParams
	params.MaxCoverageDepth = 2

	var paths [][]*HMM
	for i := 0; i < 3; i++ {
		paths = append(paths, []*HMM{newTestSingleton(0, 5, "r")})
	}
	_, err := mergeTilingPaths(paths, params)
	assert.ErrorIs(t, err, ErrCoverageExceeded)
}

func TestFilterReadsByCoverageDepthCapsTilingDepth(t *testing.T) {
	params := DefaultParams
	params.MaxCoverageDepth = 2

	seqs := make([]*ProfileSequence, 5)
	for i := range seqs {
		seqs[i] = NewProfileSequence("chr1", 0, 10, "r")
		for pos := 0; pos < 10; pos++ {
			seqs[i].Probs[pos*Alphabet] = 255
		}
	}

	kept, discarded := FilterReadsByCoverageDepth(seqs, params)
	assert.Len(t, kept, 2)
	assert.Len(t, discarded, 3)
}
