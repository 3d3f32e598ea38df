package rphmm

import "math"

// HMM is a doubly-linked chain of columns and merge columns over one
// reference interval, plus the parameters and profile-sequence list it was
// built from.
type HMM struct {
	refName  string
	refStart int
	refLen   int

	profileSeqs []*ProfileSequence
	logSubMatrix SubstitutionMatrix

	firstColumn *Column
	lastColumn  *Column

	columnNumber int
	maxDepth     int

	forwardLogProb  float64
	backwardLogProb float64
}

// RefName is the reference sequence the HMM spans.
func (h *HMM) RefName() string { return h.refName }

// RefStart is the 0-based start of the HMM's reference interval.
func (h *HMM) RefStart() int { return h.refStart }

// RefLength is the length of the HMM's reference interval.
func (h *HMM) RefLength() int { return h.refLen }

// RefEnd is the exclusive end of the HMM's reference interval.
func (h *HMM) RefEnd() int { return h.refStart + h.refLen }

// ProfileSeqs returns the reads this HMM was built from, in insertion
// order.
func (h *HMM) ProfileSeqs() []*ProfileSequence { return h.profileSeqs }

// FirstColumn returns the head of the column chain.
func (h *HMM) FirstColumn() *Column { return h.firstColumn }

// LastColumn returns the tail of the column chain.
func (h *HMM) LastColumn() *Column { return h.lastColumn }

// ColumnNumber is the number of columns in the chain.
func (h *HMM) ColumnNumber() int { return h.columnNumber }

// MaxDepth is the largest column depth anywhere in the chain.
func (h *HMM) MaxDepth() int { return h.maxDepth }

// ForwardLogProb returns the HMM's total forward log-probability, valid
// after Forward or ForwardBackward has run.
func (h *HMM) ForwardLogProb() float64 { return h.forwardLogProb }

// BackwardLogProb returns the HMM's total backward log-probability, valid
// after Backward or ForwardBackward has run.
func (h *HMM) BackwardLogProb() float64 { return h.backwardLogProb }

// Columns calls f for every column in the chain, head to tail.
func (h *HMM) Columns(f func(*Column)) {
	for c := h.firstColumn; c != nil; c = nextColumn(c) {
		f(c)
	}
}

// newSingletonHMM builds the one-column, depth-1, two-cell HMM for a single
// profile sequence, per spec.md §4.6 "Construct from one seq".
func newSingletonHMM(seq *ProfileSequence, sm SubstitutionMatrix) *HMM {
	if seq.Length <= 0 {
		panic("rphmm: profile sequence must have positive length")
	}
	col := newColumn(seq.RefStart, seq.Length, []*ProfileSequence{seq}, [][]uint8{seq.Probs})
	return &HMM{
		refName:      seq.RefName,
		refStart:     seq.RefStart,
		refLen:       seq.Length,
		profileSeqs:  []*ProfileSequence{seq},
		logSubMatrix: sm,
		firstColumn:  col,
		lastColumn:   col,
		columnNumber: 1,
		maxDepth:     1,
		forwardLogProb:  math.Inf(-1),
		backwardLogProb: math.Inf(-1),
	}
}

// emptyColumn returns a depth-0 column spanning [refStart,refStart+length)
// with a single empty-partition cell, used as padding by AlignColumns and
// as the zero-width gap column Fuse may insert.
func emptyColumn(refStart, length int) *Column {
	return &Column{
		refStart: refStart,
		length:   length,
		depth:    0,
		head:     &Cell{partition: 0},
	}
}

// newTrivialMerge links left and right with a merge column that has no
// power to distinguish cells on either side (both masks all-zero): every
// cell on the left funnels into, and every cell on the right reads from,
// the single (0,0) merge cell. This is correct exactly when one side has
// depth 0 (so there is only one physical cell there anyway) and the other
// side's distinct cells should behave as though the boundary weren't
// there at all — Fuse's L/R join (L and R share no reads) and the
// empty-column padding AlignColumns inserts are both this case, the
// latter relying on depth-0 columns contributing 0 to every
// partitionLogProb (see emission.go) so the pass-through is a true no-op.
func newTrivialMerge(left, right *Column) *MergeColumn {
	m := &MergeColumn{left: left, right: right}
	left.nextMerge = m
	right.prevMerge = m
	m.insert(0, 0)
	return m
}

// prependEmptyColumn pads h with a depth-0 column spanning
// [newStart, h.refStart) before its current firstColumn, used by
// AlignColumns to bring two HMMs' chains onto the same starting
// coordinate.
func (h *HMM) prependEmptyColumn(newStart int) {
	gapLen := h.refStart - newStart
	if gapLen <= 0 {
		return
	}
	gap := emptyColumn(newStart, gapLen)
	newTrivialMerge(gap, h.firstColumn)
	h.firstColumn = gap
	h.refStart = newStart
	h.refLen += gapLen
	h.columnNumber++
}

// appendEmptyColumn pads h with a depth-0 column spanning
// [h.RefEnd(), newEnd) after its current lastColumn.
func (h *HMM) appendEmptyColumn(newEnd int) {
	gapLen := newEnd - h.RefEnd()
	if gapLen <= 0 {
		return
	}
	gap := emptyColumn(h.RefEnd(), gapLen)
	newTrivialMerge(h.lastColumn, gap)
	h.lastColumn = gap
	h.refLen += gapLen
	h.columnNumber++
}

// splitColumn divides c at offset k inside HMM h, fixing up h.lastColumn
// and h.columnNumber as spec.md §4.3 requires, and returns the new right
// column.
func (h *HMM) splitColumn(c *Column, k int) *Column {
	wasLast := c == h.lastColumn
	r := split(c, k)
	h.columnNumber++
	if r.depth > h.maxDepth {
		h.maxDepth = r.depth
	}
	if wasLast {
		h.lastColumn = r
	}
	return r
}

// Fuse concatenates two non-overlapping, same-reference HMMs L and R
// (L entirely before R) into one HMM spanning both intervals, inserting a
// gap column if there is space between them. Both inputs are consumed.
func Fuse(l, r *HMM) (*HMM, error) {
	if l.refName != r.refName {
		return nil, hmmMismatch("fuse requires the same reference name")
	}
	if l.refStart+l.refLen > r.refStart {
		return nil, hmmMismatch("fuse requires l to end at or before r starts")
	}
	if l.firstColumn == nil || r.firstColumn == nil {
		return nil, hmmMismatch("fuse requires non-empty HMMs")
	}
	if l.logSubMatrix != r.logSubMatrix {
		return nil, hmmMismatch("fuse requires the same substitution matrix")
	}

	// L and R share no reads, so the fuse boundary is trivial: see
	// newTrivialMerge.
	gapStart := l.refStart + l.refLen
	gapLen := r.refStart - gapStart
	if gapLen > 0 {
		gap := emptyColumn(gapStart, gapLen)
		newTrivialMerge(l.lastColumn, gap)
		newTrivialMerge(gap, r.firstColumn)
		l.columnNumber++
	} else {
		newTrivialMerge(l.lastColumn, r.firstColumn)
	}

	fused := &HMM{
		refName:      l.refName,
		refStart:     l.refStart,
		refLen:       r.refStart + r.refLen - l.refStart,
		profileSeqs:  append(append([]*ProfileSequence{}, l.profileSeqs...), r.profileSeqs...),
		logSubMatrix: l.logSubMatrix,
		firstColumn:  l.firstColumn,
		lastColumn:   r.lastColumn,
		columnNumber: l.columnNumber + r.columnNumber,
		maxDepth:     maxInt(l.maxDepth, r.maxDepth),
		forwardLogProb:  math.Inf(-1),
		backwardLogProb: math.Inf(-1),
	}
	return fused, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
