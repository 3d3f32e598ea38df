package readprofile

import (
	"fmt"
	"math/rand"

	"github.com/grailbio/readphase/encoding/fasta"
	"github.com/grailbio/readphase/rphmm"
)

// letterIndex maps an uppercase reference base to the engine's 0..3
// alphabet index, or -1 for anything else (N, and lowercase bases too:
// LoadReference uppercases them through fasta.OptClean, LoadIndexedReference
// leaves them as they are).
var letterIndex = [256]int{}

func init() {
	for i := range letterIndex {
		letterIndex[i] = -1
	}
	letterIndex['A'] = 0
	letterIndex['C'] = 1
	letterIndex['G'] = 2
	letterIndex['T'] = 3
}

// SynthesizeOpts controls Synthesize's read generation.
type SynthesizeOpts struct {
	// ReadLength is the length of each generated read.
	ReadLength int
	// Coverage is the number of reads generated per reference position,
	// approximately: each read's start position is drawn uniformly so
	// actual per-base depth varies.
	Coverage int
	// ErrorRate is the probability any given base is flipped to a
	// uniformly random different base, modeling sequencing error.
	ErrorRate float64
	// HaplotypeDivergence is the probability a given reference position
	// differs between the two synthetic haplotypes read phasing is meant to
	// recover.
	HaplotypeDivergence float64
	// RandomSeed seeds the generator; the same seed always produces the
	// same reads, for reproducible regression tests.
	RandomSeed int64
}

// Synthesize draws synthetic reads from a single named sequence in ref,
// each assigned uniformly at random to one of two latent haplotypes differing at
// opts.HaplotypeDivergence of positions, and returns their profile
// sequences plus the true haplotype assignment (0 or 1) for each, indexed
// in the same order as the returned slice — the ground truth a seed test
// checks ForwardTraceBack and PartitionSequencesByStatePath against.
func Synthesize(ref fasta.Fasta, seqName string, opts SynthesizeOpts) ([]*rphmm.ProfileSequence, []int, error) {
	refLen, err := ref.Len(seqName)
	if err != nil {
		return nil, nil, ioError(err, "looking up length of "+seqName)
	}
	if int(refLen) < opts.ReadLength {
		return nil, nil, malformedRead(fmt.Sprintf("reference %s shorter than read length", seqName))
	}
	refSeq, err := ref.Get(seqName, 0, refLen)
	if err != nil {
		return nil, nil, ioError(err, "reading sequence "+seqName)
	}

	rnd := rand.New(rand.NewSource(opts.RandomSeed))
	haplotypes := buildHaplotypes(refSeq, opts.HaplotypeDivergence, rnd)

	nReads := opts.Coverage * (int(refLen) / opts.ReadLength)
	if nReads == 0 {
		nReads = opts.Coverage
	}
	profiles := make([]*rphmm.ProfileSequence, 0, nReads)
	truth := make([]int, 0, nReads)
	maxStart := int(refLen) - opts.ReadLength

	for i := 0; i < nReads; i++ {
		start := 0
		if maxStart > 0 {
			start = rnd.Intn(maxStart + 1)
		}
		hap := rnd.Intn(2)
		profile := rphmm.NewProfileSequence(seqName, start, opts.ReadLength, fmt.Sprintf("synthetic-%d", i))
		for pos := 0; pos < opts.ReadLength; pos++ {
			base := haplotypes[hap][start+pos]
			if rnd.Float64() < opts.ErrorRate {
				base = randomOtherBase(base, rnd)
			}
			setSyntheticBaseProb(profile, pos, base, opts.ErrorRate)
		}
		profiles = append(profiles, profile)
		truth = append(truth, hap)
	}
	return profiles, truth, nil
}

// buildHaplotypes returns two copies of ref, diverging independently at
// each position with probability divergence.
func buildHaplotypes(ref string, divergence float64, rnd *rand.Rand) [2][]byte {
	var h [2][]byte
	h[0] = []byte(ref)
	h[1] = append([]byte{}, h[0]...)
	for i, b := range h[0] {
		if rnd.Float64() < divergence {
			h[1][i] = randomOtherBase(b, rnd)
		}
	}
	return h
}

func randomOtherBase(b byte, rnd *rand.Rand) byte {
	const bases = "ACGT"
	k := letterIndex[b]
	if k < 0 {
		k = 0
	}
	choice := rnd.Intn(3)
	if choice >= k {
		choice++
	}
	return bases[choice]
}

// setSyntheticBaseProb is setBaseProb's counterpart for synthetic reads: the
// "quality" is fixed by the generator's configured error rate rather than a
// per-base phred score.
func setSyntheticBaseProb(profile *rphmm.ProfileSequence, pos int, base byte, errRate float64) {
	k := letterIndex[base]
	if k < 0 {
		return
	}
	correct := quantize(1 - errRate)
	wrong := quantize(errRate / (rphmm.Alphabet - 1))
	for j := 0; j < rphmm.Alphabet; j++ {
		if j == k {
			profile.Probs[pos*rphmm.Alphabet+j] = correct
		} else {
			profile.Probs[pos*rphmm.Alphabet+j] = wrong
		}
	}
}
