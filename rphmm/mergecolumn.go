package rphmm

// MergeCell holds one pair of partitions observed at a merge-column
// boundary: the projection of some left-column cell's partition onto
// maskFrom, and the projection of some right-column cell's partition onto
// maskTo.
type MergeCell struct {
	fromPartition partition
	toPartition   partition

	forwardLogProb  float64
	backwardLogProb float64
}

// FromPartition returns the boundary-projected partition on the merge
// column's left side.
func (m *MergeCell) FromPartition() uint64 { return uint64(m.fromPartition) }

// ToPartition returns the boundary-projected partition on the merge
// column's right side.
func (m *MergeCell) ToPartition() uint64 { return uint64(m.toPartition) }

// ForwardLogProb returns the merge cell's forward message.
func (m *MergeCell) ForwardLogProb() float64 { return m.forwardLogProb }

// BackwardLogProb returns the merge cell's backward message.
func (m *MergeCell) BackwardLogProb() float64 { return m.backwardLogProb }

// MergeColumn is the boundary between two adjacent columns. maskFrom
// selects which of the left column's bits survive into the boundary (a
// clear bit means that read ends at the left column's right edge);
// maskTo is the symmetric mask on the right column's bits (a clear bit
// means that read starts at the right column's left edge).
//
// Two hash indexes map fromPartition/toPartition to the (shared) MergeCell;
// the two maps always hold the same set of cells.
type MergeColumn struct {
	maskFrom partition
	maskTo   partition

	left  *Column
	right *Column

	cellsFrom map[partition]*MergeCell
	cellsTo   map[partition]*MergeCell
}

// MaskFrom returns the boundary's left-projection mask.
func (m *MergeColumn) MaskFrom() uint64 { return uint64(m.maskFrom) }

// MaskTo returns the boundary's right-projection mask.
func (m *MergeColumn) MaskTo() uint64 { return uint64(m.maskTo) }

// Left returns the column preceding the boundary, or nil if this merge
// column is the HMM's leading edge.
func (m *MergeColumn) Left() *Column { return m.left }

// Right returns the column following the boundary, or nil if this merge
// column is the HMM's trailing edge.
func (m *MergeColumn) Right() *Column { return m.right }

// Depth is the number of distinct merge cells at this boundary.
func (m *MergeColumn) Depth() int { return len(m.cellsFrom) }

// Cells calls f for every merge cell at this boundary.
func (m *MergeColumn) Cells(f func(*MergeCell)) {
	for _, cell := range m.cellsFrom {
		f(cell)
	}
}

// nextMergeCellOf looks up the merge cell a left-column cell projects to
// across this boundary, or nil if none is present (e.g. pruned away).
func (m *MergeColumn) nextMergeCellOf(cell *Cell) *MergeCell {
	if m == nil {
		return nil
	}
	return m.cellsFrom[cell.partition&m.maskFrom]
}

// previousMergeCellOf looks up the merge cell a right-column cell projects
// to across this boundary, or nil if none is present.
func (m *MergeColumn) previousMergeCellOf(cell *Cell) *MergeCell {
	if m == nil {
		return nil
	}
	return m.cellsTo[cell.partition&m.maskTo]
}

// insert installs a merge cell for (fromPartition, toPartition) in both
// indexes, returning the existing cell if one is already present under
// either key.
func (m *MergeColumn) insert(fromPartition, toPartition partition) *MergeCell {
	if m.cellsFrom == nil {
		m.cellsFrom = make(map[partition]*MergeCell)
		m.cellsTo = make(map[partition]*MergeCell)
	}
	if cell, ok := m.cellsFrom[fromPartition]; ok {
		return cell
	}
	if cell, ok := m.cellsTo[toPartition]; ok {
		return cell
	}
	cell := &MergeCell{fromPartition: fromPartition, toPartition: toPartition}
	m.cellsFrom[fromPartition] = cell
	m.cellsTo[toPartition] = cell
	return cell
}

// delete removes a merge cell from both indexes.
func (m *MergeColumn) delete(cell *MergeCell) {
	delete(m.cellsFrom, cell.fromPartition)
	delete(m.cellsTo, cell.toPartition)
}
