package rphmm

// Prune removes, from every column and merge column in h whose depth is at
// or above params.MinColumnDepthToFilter, every cell (respectively merge
// cell) whose posterior probability falls below
// params.PosteriorProbabilityThreshold. It must only be called after
// ForwardBackward has run on h; posteriors computed against a stale
// forward/backward pass are meaningless.
func Prune(h *HMM, params Params) {
	h.Columns(func(c *Column) {
		if c.depth >= params.MinColumnDepthToFilter {
			pruneColumn(c, params.PosteriorProbabilityThreshold)
		}
		if m := c.nextMerge; m != nil && m.Depth() >= params.MinColumnDepthToFilter {
			pruneMergeColumn(m, params.PosteriorProbabilityThreshold)
		}
	})
}

func pruneColumn(c *Column, threshold float64) {
	var kept *Cell
	for cell := c.head; cell != nil; {
		next := cell.next
		if cellPosterior(c, cell) >= threshold {
			cell.next = kept
			kept = cell
		}
		cell = next
	}
	c.head = kept
}

func pruneMergeColumn(m *MergeColumn, threshold float64) {
	for _, cell := range m.cellsFrom {
		if mergeCellPosterior(m, cell) < threshold {
			m.delete(cell)
		}
	}
}
