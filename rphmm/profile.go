package rphmm

// Alphabet is the number of symbols the emission model distinguishes
// (A, C, G, T).
const Alphabet = 4

// ProfileSequence is one read's per-position emission table, anchored on a
// reference. It is produced by an upstream profile builder (see package
// readprofile) and is read-only for the lifetime of every HMM referencing
// it: columns keep borrowed pointers into Probs, never copies.
type ProfileSequence struct {
	// RefName is the reference sequence this profile is aligned against.
	RefName string
	// RefStart is the 0-based reference offset of the profile's first
	// position.
	RefStart int
	// Length is the number of reference positions this profile spans.
	// Must be positive.
	Length int
	// Probs is a dense, row-major [Length][Alphabet] table of quantized
	// emission probabilities in [0,255], decoded as value/255.
	Probs []uint8

	// ID identifies the underlying read, e.g. its BAM query name. Carried
	// through for reporting partitions back to callers; not used by any
	// inference computation.
	ID string
}

// NewProfileSequence allocates a zero-initialized profile of the given
// length. Every position starts with emission probability 0 for every base;
// callers fill in Probs before handing the sequence to the engine.
func NewProfileSequence(refName string, refStart, length int, id string) *ProfileSequence {
	if length <= 0 {
		panic("rphmm: NewProfileSequence requires length > 0")
	}
	return &ProfileSequence{
		RefName:  refName,
		RefStart: refStart,
		Length:   length,
		Probs:    make([]uint8, length*Alphabet),
		ID:       id,
	}
}

// RefEnd is the exclusive end of the profile's reference span.
func (p *ProfileSequence) RefEnd() int {
	return p.RefStart + p.Length
}

// prob decodes the quantized emission probability for base k (0..Alphabet)
// at reference-relative position index.
func (p *ProfileSequence) prob(index, k int) float64 {
	return float64(p.Probs[index*Alphabet+k]) / 255.0
}

// offsetFor returns the byte offset into p.Probs corresponding to reference
// position refStart, i.e. the pointer a Column spanning [refStart, ...)
// should use for this sequence.
func (p *ProfileSequence) offsetFor(refStart int) int {
	return (refStart - p.RefStart) * Alphabet
}
