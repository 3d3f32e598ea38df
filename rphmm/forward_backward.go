package rphmm

import "math"

// logAdd computes log(exp(x)+exp(y)) in a numerically stable way, treating
// -Inf as log 0.
func logAdd(x, y float64) float64 {
	if math.IsInf(x, -1) {
		return y
	}
	if math.IsInf(y, -1) {
		return x
	}
	if x < y {
		x, y = y, x
	}
	return x + math.Log1p(math.Exp(y-x))
}

// resetLogProbs zeroes every forward/backward accumulator in the HMM to
// log 0, the required state before either pass runs.
func resetLogProbs(h *HMM) {
	h.forwardLogProb = math.Inf(-1)
	h.backwardLogProb = math.Inf(-1)
	for c := h.firstColumn; c != nil; c = nextColumn(c) {
		c.forwardLogProb = math.Inf(-1)
		c.backwardLogProb = math.Inf(-1)
		c.bitCountVectors = nil
		c.Cells(func(cell *Cell) {
			cell.forwardLogProb = math.Inf(-1)
			cell.backwardLogProb = math.Inf(-1)
		})
		if c.nextMerge != nil {
			c.nextMerge.Cells(func(m *MergeCell) {
				m.forwardLogProb = math.Inf(-1)
				m.backwardLogProb = math.Inf(-1)
			})
		}
	}
}

// nextColumn walks from c, across its trailing merge column, to the next
// column in the chain, or returns nil at the tail.
func nextColumn(c *Column) *Column {
	if c.nextMerge == nil {
		return nil
	}
	return c.nextMerge.right
}

// Forward runs the forward pass, head to tail, populating every column,
// cell, and merge cell's forward log-probability plus the HMM total.
// Prefer ForwardBackward unless only the forward pass is needed.
func Forward(h *HMM) {
	h.forwardLogProb = math.Inf(-1)
	for c := h.firstColumn; c != nil; c = nextColumn(c) {
		computeBitCountVectors(c)
		c.forwardLogProb = math.Inf(-1)
		c.Cells(func(x *Cell) {
			if x.forwardLogProb = math.Inf(-1); c.prevMerge != nil {
				if m := c.prevMerge.previousMergeCellOf(x); m != nil {
					x.forwardLogProb = m.forwardLogProb
				}
			} else {
				x.forwardLogProb = 0
			}
			x.forwardLogProb += emit(c, x, &h.logSubMatrix)

			if c.nextMerge != nil {
				if m := c.nextMerge.nextMergeCellOf(x); m != nil {
					m.forwardLogProb = logAdd(m.forwardLogProb, x.forwardLogProb)
				}
			} else {
				h.forwardLogProb = logAdd(h.forwardLogProb, x.forwardLogProb)
			}
			c.forwardLogProb = logAdd(c.forwardLogProb, x.forwardLogProb)
		})
	}
}

// Backward runs the backward pass, tail to head, populating every column,
// cell, and merge cell's backward log-probability plus the HMM total.
// Prefer ForwardBackward unless only the backward pass is needed.
func Backward(h *HMM) {
	h.backwardLogProb = math.Inf(-1)
	for c := h.lastColumn; c != nil; c = prevColumn(c) {
		computeBitCountVectors(c)
		c.backwardLogProb = math.Inf(-1)
		c.Cells(func(x *Cell) {
			if x.backwardLogProb = math.Inf(-1); c.nextMerge != nil {
				if m := c.nextMerge.nextMergeCellOf(x); m != nil {
					x.backwardLogProb = m.backwardLogProb
				}
			} else {
				x.backwardLogProb = 0
			}
			e := emit(c, x, &h.logSubMatrix)

			if c.prevMerge != nil {
				if m := c.prevMerge.previousMergeCellOf(x); m != nil {
					m.backwardLogProb = logAdd(m.backwardLogProb, x.backwardLogProb+e)
				}
			} else {
				h.backwardLogProb = logAdd(h.backwardLogProb, x.backwardLogProb+e)
			}
			// The column total is the log-sum of cell.backward+emit, per
			// spec: it is not simply the sum of the propagated messages.
			c.backwardLogProb = logAdd(c.backwardLogProb, x.backwardLogProb+e)
		})
	}
}

// prevColumn walks from c, across its leading merge column, to the
// preceding column in the chain, or returns nil at the head.
func prevColumn(c *Column) *Column {
	if c.prevMerge == nil {
		return nil
	}
	return c.prevMerge.left
}

// ForwardBackward runs Forward then Backward as a single composite
// operation, resetting all accumulators first. Pruning and traceback both
// require both passes to have completed on the current column/merge-column
// structure, so this is the entry point callers should use.
func ForwardBackward(h *HMM) {
	resetLogProbs(h)
	Forward(h)
	Backward(h)
}

// cellPosterior returns exp(x.forward + x.backward - column totals), the
// posterior probability of cell x, clamped to [0,1].
func cellPosterior(c *Column, x *Cell) float64 {
	return clampProb(math.Exp(x.forwardLogProb + x.backwardLogProb - (c.forwardLogProb + c.backwardLogProb)))
}

// mergeCellPosterior returns the posterior probability of a merge cell,
// using its right column's forward+backward total as the denominator.
func mergeCellPosterior(m *MergeColumn, cell *MergeCell) float64 {
	denom := m.right.forwardLogProb + m.right.backwardLogProb
	return clampProb(math.Exp(cell.forwardLogProb + cell.backwardLogProb - denom))
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
