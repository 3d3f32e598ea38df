package rphmm

// AlignColumns mutates a and b in place so that they span identical
// reference intervals with identical column boundaries: after it returns,
// a.ColumnNumber() == b.ColumnNumber(), and for every index i the i-th
// columns of a and b share the same (refStart, length). This is a
// prerequisite for CrossProduct.
//
// Calling AlignColumns on an already-aligned pair is a no-op: lockstep
// walking finds every pair of columns already equal in length and never
// splits anything.
func AlignColumns(a, b *HMM) error {
	if a.refName != b.refName {
		return hmmMismatch("align requires the same reference name")
	}
	if a.logSubMatrix != b.logSubMatrix {
		return hmmMismatch("align requires the same substitution matrix")
	}
	if a.firstColumn == nil || b.firstColumn == nil {
		return hmmMismatch("align requires non-empty HMMs")
	}

	if a.refStart < b.refStart {
		b.prependEmptyColumn(a.refStart)
	} else if b.refStart < a.refStart {
		a.prependEmptyColumn(b.refStart)
	}

	aEnd, bEnd := a.RefEnd(), b.RefEnd()
	if aEnd < bEnd {
		a.appendEmptyColumn(bEnd)
	} else if bEnd < aEnd {
		b.appendEmptyColumn(aEnd)
	}

	ca, cb := a.firstColumn, b.firstColumn
	for ca != nil && cb != nil {
		switch {
		case ca.length > cb.length:
			a.splitColumn(ca, cb.length)
		case cb.length > ca.length:
			b.splitColumn(cb, ca.length)
		}
		ca = nextColumn(ca)
		cb = nextColumn(cb)
	}
	return nil
}
