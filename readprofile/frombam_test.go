package readprofile

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/readphase/rphmm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRef(t *testing.T) *sam.Reference {
	ref, err := sam.NewReference("chr1", "", "", 1000000, nil, nil)
	require.NoError(t, err)
	return ref
}

func newTestRecord(ref *sam.Reference, pos int, cigar sam.Cigar, seq string, qual []byte) *sam.Record {
	return &sam.Record{
		Name:  "read0",
		Ref:   ref,
		Pos:   pos,
		MapQ:  60,
		Cigar: cigar,
		Flags: sam.Paired | sam.ProperPair,
		Seq:   sam.NewSeq([]byte(seq)),
		Qual:  qual,
	}
}

func TestFromRecordsMatchOnlyProducesOneProfilePerBase(t *testing.T) {
	ref := newTestRef(t)
	r := newTestRecord(ref, 100, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 4)}, "ACGT", []byte{40, 40, 40, 40})

	profiles, err := FromRecords([]*sam.Record{r}, DefaultBAMOpts)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, "chr1", p.RefName)
	assert.Equal(t, 100, p.RefStart)
	assert.Equal(t, 4, p.Length)
	// The called base at each position should dominate the emission
	// distribution.
	assert.Greater(t, p.Probs[0*rphmm.Alphabet+0], p.Probs[0*rphmm.Alphabet+1]) // A
	assert.Greater(t, p.Probs[1*rphmm.Alphabet+1], p.Probs[1*rphmm.Alphabet+0]) // C
}

func TestFromRecordsSkipsInsertionsAndGapsDeletions(t *testing.T) {
	ref := newTestRef(t)
	// 1M 1I 2M 1D 1M: reference span is 1+2+1+1 = 5.
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarMatch, 1),
		sam.NewCigarOp(sam.CigarInsertion, 1),
		sam.NewCigarOp(sam.CigarMatch, 2),
		sam.NewCigarOp(sam.CigarDeletion, 1),
		sam.NewCigarOp(sam.CigarMatch, 1),
	}
	r := newTestRecord(ref, 0, cigar, "AGCGT", []byte{40, 40, 40, 40, 40})

	profiles, err := FromRecords([]*sam.Record{r}, DefaultBAMOpts)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 5, profiles[0].Length)
}

func TestFromRecordsFiltersByMapQAndFlags(t *testing.T) {
	ref := newTestRef(t)
	lowMapQ := newTestRecord(ref, 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 2)}, "AC", []byte{40, 40})
	lowMapQ.MapQ = 10

	excludedFlag := newTestRecord(ref, 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 2)}, "AC", []byte{40, 40})
	excludedFlag.Flags |= sam.Duplicate

	good := newTestRecord(ref, 0, sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 2)}, "AC", []byte{40, 40})

	profiles, err := FromRecords([]*sam.Record{lowMapQ, excludedFlag, good}, DefaultBAMOpts)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestFromRecordsSkipsUnmappedRecords(t *testing.T) {
	r := newTestRecord(nil, 0, nil, "AC", []byte{40, 40})
	profiles, err := FromRecords([]*sam.Record{r}, DefaultBAMOpts)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestPhredToErrProbDecreasesWithQuality(t *testing.T) {
	assert.Greater(t, phredToErrProb(10), phredToErrProb(40))
	assert.LessOrEqual(t, phredToErrProb(60), 0.75)
}
