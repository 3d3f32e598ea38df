package rphmm

import "math"

// ForwardTraceBack recovers the most probable partition path: starting from
// the highest-forward cell in the last column, it walks backward through
// merge-cell-compatible predecessors, then reverses the result so it reads
// head-to-tail. It requires Forward (or ForwardBackward) to have already
// run on h.
//
// It returns ErrTracebackInfeasible if, at any step, no merge cell
// connects the chosen cell to a compatible predecessor — the signature of
// over-aggressive pruning having removed a cell the optimal path needed.
func ForwardTraceBack(h *HMM) ([]*Cell, error) {
	if h.lastColumn == nil {
		return nil, invalidCoordinates("traceback requires a non-empty HMM")
	}

	tail := bestCell(h.lastColumn)
	if tail == nil {
		return nil, ErrTracebackInfeasible
	}
	path := []*Cell{tail}

	cur := h.lastColumn
	for cur.prevMerge != nil {
		m := cur.prevMerge.previousMergeCellOf(tail)
		if m == nil {
			return nil, ErrTracebackInfeasible
		}
		prevCol := cur.prevMerge.left
		y := bestCompatibleCell(prevCol, m)
		if y == nil {
			return nil, ErrTracebackInfeasible
		}
		path = append(path, y)
		tail = y
		cur = prevCol
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// bestCell returns the cell in c with the largest forward log-probability.
func bestCell(c *Column) *Cell {
	var best *Cell
	bestLP := math.Inf(-1)
	c.Cells(func(cell *Cell) {
		if cell.forwardLogProb > bestLP {
			bestLP = cell.forwardLogProb
			best = cell
		}
	})
	return best
}

// bestCompatibleCell returns the highest-forward cell in c whose projection
// across c.nextMerge equals the given merge cell, or nil if none does.
func bestCompatibleCell(c *Column, target *MergeCell) *Cell {
	var best *Cell
	bestLP := math.Inf(-1)
	c.Cells(func(cell *Cell) {
		if c.nextMerge.nextMergeCellOf(cell) == target && cell.forwardLogProb > bestLP {
			bestLP = cell.forwardLogProb
			best = cell
		}
	})
	return best
}

// PartitionSequencesByStatePath unions, across every cell in path, the
// reads whose bit in that cell's partition equals haplotypeIndex. path
// must be the head-to-tail traceback of h (as returned by
// ForwardTraceBack): path[i] is interpreted as the chosen cell of h's i-th
// column.
func PartitionSequencesByStatePath(h *HMM, path []*Cell, haplotypeIndex int) map[*ProfileSequence]struct{} {
	result := make(map[*ProfileSequence]struct{})
	want := partition(haplotypeIndex) & 1
	i := 0
	h.Columns(func(c *Column) {
		if i >= len(path) {
			return
		}
		cell := path[i]
		i++
		for idx, seq := range c.seqHeaders {
			bit := (cell.partition >> uint(idx)) & 1
			if bit == want {
				result[seq] = struct{}{}
			}
		}
	})
	return result
}
