package rphmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticProfile(id string, refStart, length int, biasBase int) *ProfileSequence {
	seq := NewProfileSequence("chr1", refStart, length, id)
	for pos := 0; pos < length; pos++ {
		seq.Probs[pos*Alphabet+biasBase] = 255
	}
	return seq
}

func TestGetRPHmmsEmptyInput(t *testing.T) {
	hmms, err := GetRPHmms(nil, nil, DefaultParams)
	require.NoError(t, err)
	assert.Empty(t, hmms)
}

func TestGetRPHmmsSingleNonOverlappingReads(t *testing.T) {
	reads := []*ProfileSequence{
		syntheticProfile("r0", 0, 10, 0),
		syntheticProfile("r1", 20, 10, 0),
	}
	hmms, err := GetRPHmms(reads, nil, DefaultParams)
	require.NoError(t, err)
	// Two non-overlapping reads never merge: each survives as its own HMM.
	assert.Len(t, hmms, 2)
}

func TestGetRPHmmsOverlappingReadsMergeIntoOneHMM(t *testing.T) {
	reads := []*ProfileSequence{
		syntheticProfile("r0", 0, 20, 0),
		syntheticProfile("r1", 5, 20, 0),
		syntheticProfile("r2", 10, 20, 1),
	}
	hmms, err := GetRPHmms(reads, nil, DefaultParams)
	require.NoError(t, err)
	require.Len(t, hmms, 1)
	assert.Len(t, hmms[0].ProfileSeqs(), 3)

	path, err := ForwardTraceBack(hmms[0])
	require.NoError(t, err)
	hap0 := PartitionSequencesByStatePath(hmms[0], path, 0)
	hap1 := PartitionSequencesByStatePath(hmms[0], path, 1)
	assert.Equal(t, 3, len(hap0)+len(hap1))
}

func TestGetRPHmmsAutoFiltersWhenCoverageExceedsMax(t *testing.T) {
	params := DefaultParams
	params.MaxCoverageDepth = 3

	var reads []*ProfileSequence
	for i := 0; i < 6; i++ {
		reads = append(reads, syntheticProfile("r", 0, 10, 0))
	}
	hmms, err := GetRPHmms(reads, nil, params)
	require.NoError(t, err)

	total := 0
	for _, h := range hmms {
		total += len(h.ProfileSeqs())
	}
	assert.LessOrEqual(t, total, 3)
}

func TestGetRPHmmsUsesPerReferencePrior(t *testing.T) {
	custom := IdentitySubstitutionMatrix(0.4)
	priors := map[string]*SubstitutionMatrix{"chr1": &custom}
	reads := []*ProfileSequence{syntheticProfile("r0", 0, 5, 0)}

	hmms, err := GetRPHmms(reads, priors, DefaultParams)
	require.NoError(t, err)
	require.Len(t, hmms, 1)
	assert.Equal(t, custom, hmms[0].logSubMatrix)
}
