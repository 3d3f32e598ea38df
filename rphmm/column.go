package rphmm

import "math"

// Cell is one candidate hidden state inside a Column: a partition of the
// column's spanning reads into the two haplotypes. Cells within a column
// form an unordered singly-linked list.
type Cell struct {
	partition       partition
	forwardLogProb  float64
	backwardLogProb float64

	next *Cell
}

// Partition returns the cell's haplotype-1 bit-word.
func (c *Cell) Partition() uint64 { return uint64(c.partition) }

// ForwardLogProb returns the cell's forward message, valid after Forward or
// ForwardBackward has run on the owning HMM.
func (c *Cell) ForwardLogProb() float64 { return c.forwardLogProb }

// BackwardLogProb returns the cell's backward message, valid after Backward
// or ForwardBackward has run on the owning HMM.
func (c *Cell) BackwardLogProb() float64 { return c.backwardLogProb }

// Column is a reference subinterval over which the set of spanning reads is
// constant. Its read set and depth never change after construction; only
// its cell list and forward/backward totals mutate, during inference and
// pruning.
type Column struct {
	refStart int
	length   int
	depth    int

	seqHeaders []*ProfileSequence
	// seqs[i] is the slice of seqHeaders[i].Probs starting at this column's
	// refStart, mirroring the "pointer into probs" of spec.md's data model.
	seqs [][]uint8

	head *Cell

	forwardLogProb  float64
	backwardLogProb float64

	prevMerge *MergeColumn
	nextMerge *MergeColumn

	// bitCountVectors[pos][k][b] is memoized by the forward pass and reused
	// by the backward pass over the same HMM run; see emission.go.
	bitCountVectors [][Alphabet][8]partition
}

// RefStart is the 0-based reference offset of the column's first position.
func (c *Column) RefStart() int { return c.refStart }

// Length is the number of reference positions the column spans.
func (c *Column) Length() int { return c.length }

// Depth is the number of reads spanning the column.
func (c *Column) Depth() int { return c.depth }

// RefEnd is the exclusive end of the column's reference span.
func (c *Column) RefEnd() int { return c.refStart + c.length }

// SeqHeaders returns the reads spanning the column, in cell-bit order: bit i
// of a cell's partition refers to SeqHeaders()[i].
func (c *Column) SeqHeaders() []*ProfileSequence { return c.seqHeaders }

// ForwardLogProb returns the column's total forward probability, valid
// after Forward or ForwardBackward has run on the owning HMM.
func (c *Column) ForwardLogProb() float64 { return c.forwardLogProb }

// BackwardLogProb returns the column's total backward probability, valid
// after Backward or ForwardBackward has run on the owning HMM.
func (c *Column) BackwardLogProb() float64 { return c.backwardLogProb }

// Cells calls f for every cell in the column.
func (c *Column) Cells(f func(*Cell)) {
	for cell := c.head; cell != nil; cell = cell.next {
		f(cell)
	}
}

// newColumn builds a column spanning [refStart, refStart+length) over the
// given reads, with every one of the 2^depth partitions present as a cell.
// depth must be in [0,64].
func newColumn(refStart, length int, seqHeaders []*ProfileSequence, seqs [][]uint8) *Column {
	depth := len(seqHeaders)
	if depth > maxDepth {
		panic("rphmm: column depth exceeds 64")
	}
	c := &Column{
		refStart:   refStart,
		length:     length,
		depth:      depth,
		seqHeaders: seqHeaders,
		seqs:       seqs,
	}
	nStates := uint64(1) << uint(depth)
	for p := uint64(0); p < nStates; p++ {
		c.head = &Cell{partition: partition(p), next: c.head}
	}
	return c
}

// split divides column c at reference offset k (0 < k < c.length) into c
// (now shortened to length k) and a new right column of length
// c.length-k, installing an identity merge column between them. Returns the
// new right column.
func split(c *Column, k int) *Column {
	if k <= 0 || k >= c.length {
		panic("rphmm: split offset out of range")
	}
	rightSeqs := make([][]uint8, len(c.seqs))
	for i, s := range c.seqs {
		rightSeqs[i] = s[k*Alphabet:]
	}
	r := &Column{
		refStart:   c.refStart + k,
		length:     c.length - k,
		depth:      c.depth,
		seqHeaders: c.seqHeaders,
		seqs:       rightSeqs,
		nextMerge:  c.nextMerge,
	}
	if r.nextMerge != nil {
		r.nextMerge.left = r
	}
	c.length = k
	c.bitCountVectors = nil

	m := &MergeColumn{
		maskFrom: acceptMask(c.depth),
		maskTo:   acceptMask(c.depth),
		left:     c,
		right:    r,
	}
	c.nextMerge = m
	r.prevMerge = m
	// r gets its own fresh cells, one per partition present in c, so the two
	// columns never share Cell objects: each column owns its cells'
	// forward/backward accumulators.
	for cell := c.head; cell != nil; cell = cell.next {
		r.head = &Cell{partition: cell.partition, next: r.head}
		m.insert(cell.partition, cell.partition)
	}
	return r
}

// logClamp returns math.Inf(-1) for non-positive probabilities and log(p)
// otherwise, the engine's convention for "log 0".
func logClamp(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}
