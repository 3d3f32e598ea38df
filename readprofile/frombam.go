package readprofile

import (
	"math"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/readphase/biosimd"
	"github.com/grailbio/readphase/rphmm"
)

// baseIndex maps biosimd's unpacked one-byte-per-base encoding (A=1, C=2,
// G=4, T=8, anything else=15) to the engine's dense 0..3 alphabet index, or
// -1 for bases the profile can't represent (N and ambiguity codes).
var baseIndex = [16]int{-1, 0, 1, -1, 2, -1, -1, -1, 3, -1, -1, -1, -1, -1, -1, -1}

// BAMOpts controls which alignments FromRecords turns into profile
// sequences.
type BAMOpts struct {
	// MapQ is the minimum mapping quality a record must have.
	MapQ int
	// FlagExclude is a bitmask of sam.Flags; any record with one of these
	// flags set is skipped (secondary/supplementary/duplicate/QC-fail by
	// default, mirroring the rest of this codebase's pileup tooling).
	FlagExclude int
}

// DefaultBAMOpts mirrors pileup/snp's DefaultOpts MapQ and FlagExclude
// choices.
var DefaultBAMOpts = BAMOpts{
	MapQ:        60,
	FlagExclude: 0xf00,
}

// FromRecords converts a slice of aligned, primary sam.Records into profile
// sequences, one per record that survives BAMOpts filtering. Each
// reference-consuming CIGAR match position becomes one profile position;
// insertions are skipped (read-only information, no reference coordinate to
// anchor them to) and deletions/skips leave a gap with zero probability
// mass, matching pileup/snp's CIGAR-walking convention.
func FromRecords(records []*sam.Record, opts BAMOpts) ([]*rphmm.ProfileSequence, error) {
	var out []*rphmm.ProfileSequence
	seq8 := make([]byte, 0, 512)
	for _, r := range records {
		if r.Ref == nil || len(r.Cigar) == 0 {
			continue
		}
		if int(r.Flags)&opts.FlagExclude != 0 || int(r.MapQ) < opts.MapQ {
			continue
		}

		refLen, _ := r.Cigar.Lengths()
		if refLen <= 0 {
			continue
		}
		packed := doubletsToBytes(r.Seq.Seq)
		if cap(seq8) < len(packed)*2 {
			seq8 = make([]byte, len(packed)*2)
		}
		seq8 = seq8[:len(packed)*2]
		biosimd.UnpackSeq(seq8, packed)
		seq8 = seq8[:r.Seq.Length]

		profile := rphmm.NewProfileSequence(r.Ref.Name(), r.Pos, refLen, r.Name)
		posInRef := 0
		posInRead := 0
		for _, co := range r.Cigar {
			n := co.Len()
			switch co.Type() {
			case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
				for k := 0; k < n; k++ {
					setBaseProb(profile, posInRef+k, seq8[posInRead+k], r.Qual[posInRead+k])
				}
				posInRef += n
				posInRead += n
			case sam.CigarInsertion, sam.CigarSoftClipped:
				posInRead += n
			case sam.CigarDeletion, sam.CigarSkipped:
				posInRef += n
			case sam.CigarHardClipped:
			default:
				return nil, malformedRead("unexpected CIGAR operation in " + r.Name)
			}
		}
		out = append(out, profile)
	}
	return out, nil
}

// setBaseProb fills in profile's quantized emission distribution at
// position index from one observed base call and its phred quality: the
// called base gets probability 1-err, the other three share err evenly. An
// ambiguous or N call (baseIndex[b] == -1) leaves the position at its
// zero-initialized "no information" state.
func setBaseProb(profile *rphmm.ProfileSequence, index int, b, qual byte) {
	k := baseIndex[b&0xf]
	if k < 0 {
		return
	}
	err := phredToErrProb(qual)
	correct := quantize(1 - err)
	wrong := quantize(err / (rphmm.Alphabet - 1))
	for j := 0; j < rphmm.Alphabet; j++ {
		if j == k {
			profile.Probs[index*rphmm.Alphabet+j] = correct
		} else {
			profile.Probs[index*rphmm.Alphabet+j] = wrong
		}
	}
}

// phredToErrProb converts a phred-scaled base quality (ASCII-offset already
// removed, as sam.Record.Qual stores it) into a linear error probability,
// capped so quantize never rounds down to a zero correct-base probability.
func phredToErrProb(qual byte) float64 {
	p := phredTable[qual]
	if p == 0 {
		return phredTable[0]
	}
	return p
}

var phredTable = buildPhredTable()

func buildPhredTable() [256]float64 {
	var t [256]float64
	for q := 0; q < 256; q++ {
		e := math.Pow(10, -float64(q)/10)
		if e > 0.75 {
			e = 0.75
		}
		t[q] = e
	}
	return t
}

// doubletsToBytes copies a sam.Seq's 2-bases-per-byte packed representation
// into a plain []byte. encoding/bam reinterprets this with an unsafe slice
// cast on its hot CIGAR-walking path; profile construction runs once per
// read, so a copy is simpler and keeps this package free of unsafe.
func doubletsToBytes(src []sam.Doublet) []byte {
	dst := make([]byte, len(src))
	for i, d := range src {
		dst[i] = byte(d)
	}
	return dst
}

func quantize(p float64) uint8 {
	v := p * 255.0
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
