package rphmm

import "math"

// CrossProduct builds the Cartesian-product HMM of two previously-aligned
// HMMs: for each aligned column pair (a,b) it builds one column whose
// state space is every (a-cell, b-cell) pairing, and for each aligned
// merge-column pair it builds the corresponding cross-producted merge
// column. a and b must have been passed through AlignColumns first.
func CrossProduct(a, b *HMM) (*HMM, error) {
	if a.refName != b.refName {
		return nil, hmmMismatch("cross product requires the same reference name")
	}
	if a.logSubMatrix != b.logSubMatrix {
		return nil, hmmMismatch("cross product requires the same substitution matrix")
	}
	if a.columnNumber != b.columnNumber {
		return nil, hmmMismatch("cross product requires aligned column structure")
	}

	crossCols := make([]*Column, 0, a.columnNumber)
	ca, cb := a.firstColumn, b.firstColumn
	for ca != nil && cb != nil {
		if ca.refStart != cb.refStart || ca.length != cb.length {
			return nil, hmmMismatch("cross product requires aligned column structure")
		}
		crossCols = append(crossCols, crossColumn(ca, cb))
		ca, cb = nextColumn(ca), nextColumn(cb)
	}
	if ca != nil || cb != nil {
		return nil, hmmMismatch("cross product requires aligned column structure")
	}

	ca, cb = a.firstColumn, b.firstColumn
	for i := 0; i < len(crossCols)-1; i++ {
		left, right := crossCols[i], crossCols[i+1]
		m := crossMergeColumn(ca.nextMerge, cb.nextMerge, left, right)
		left.nextMerge = m
		right.prevMerge = m
		ca, cb = nextColumn(ca), nextColumn(cb)
	}

	maxD := 0
	for _, c := range crossCols {
		if c.depth > maxD {
			maxD = c.depth
		}
	}

	return &HMM{
		refName:         a.refName,
		refStart:        a.refStart,
		refLen:          a.refLen,
		profileSeqs:     append(append([]*ProfileSequence{}, a.profileSeqs...), b.profileSeqs...),
		logSubMatrix:    a.logSubMatrix,
		firstColumn:     crossCols[0],
		lastColumn:      crossCols[len(crossCols)-1],
		columnNumber:    len(crossCols),
		maxDepth:        maxD,
		forwardLogProb:  math.Inf(-1),
		backwardLogProb: math.Inf(-1),
	}, nil
}

// crossColumn builds the state-space product of two aligned columns: depth
// a.depth+b.depth, one cell per (a-cell, b-cell) pair with partition =
// mergePartitions(aCell, bCell, a.depth, b.depth). That puts b's bits low
// and a's bits high, so the read lists are concatenated b first, then a,
// keeping bit i of every partition on SeqHeaders()[i].
func crossColumn(a, b *Column) *Column {
	depth := a.depth + b.depth
	if depth > maxDepth {
		panic("rphmm: cross product column depth exceeds 64; caller must bound coverage before merging")
	}
	c := &Column{
		refStart:   a.refStart,
		length:     a.length,
		depth:      depth,
		seqHeaders: append(append([]*ProfileSequence{}, b.seqHeaders...), a.seqHeaders...),
		seqs:       append(append([][]uint8{}, b.seqs...), a.seqs...),
	}
	a.Cells(func(ac *Cell) {
		b.Cells(func(bc *Cell) {
			c.head = &Cell{partition: mergePartitions(ac.partition, bc.partition, a.depth, b.depth), next: c.head}
		})
	})
	return c
}

// crossMergeColumn builds the cross-producted merge column for aligned
// merge-column pair (aM, bM), sitting between the already-built cross
// columns left and right.
func crossMergeColumn(aM, bM *MergeColumn, left, right *Column) *MergeColumn {
	m := &MergeColumn{
		maskFrom: mergePartitions(aM.maskFrom, bM.maskFrom, aM.left.depth, bM.left.depth),
		maskTo:   mergePartitions(aM.maskTo, bM.maskTo, aM.right.depth, bM.right.depth),
		left:     left,
		right:    right,
	}
	for _, ac := range aM.cellsFrom {
		for _, bc := range bM.cellsFrom {
			from := mergePartitions(ac.fromPartition, bc.fromPartition, aM.left.depth, bM.left.depth)
			to := mergePartitions(ac.toPartition, bc.toPartition, aM.right.depth, bM.right.depth)
			m.insert(from, to)
		}
	}
	return m
}
