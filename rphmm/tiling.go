package rphmm

import "sort"

// Overlap reports whether two HMMs overlap: same reference name, and their
// reference intervals intersect.
func Overlap(a, b *HMM) bool {
	if a.refName != b.refName {
		return false
	}
	lo := a.refStart
	if b.refStart > lo {
		lo = b.refStart
	}
	hi := a.RefEnd()
	if b.RefEnd() < hi {
		hi = b.RefEnd()
	}
	return lo < hi
}

// compareHMM orders HMMs lexicographically by (refName, refStart, refLen),
// the ordering every tiling and sort step in this package uses.
func compareHMM(a, b *HMM) int {
	if a.refName != b.refName {
		if a.refName < b.refName {
			return -1
		}
		return 1
	}
	if a.refStart != b.refStart {
		return a.refStart - b.refStart
	}
	return a.refLen - b.refLen
}

func sortHMMs(hmms []*HMM) {
	sort.Slice(hmms, func(i, j int) bool { return compareHMM(hmms[i], hmms[j]) < 0 })
}

// TilingPaths partitions hmms into the minimum number of maximal
// non-overlapping chains, greedily: repeatedly take the smallest remaining
// HMM to start a new path, then repeatedly extend it with the closest
// remaining HMM on the same reference whose refStart is at or past the
// path's current end, until none remains; then start the next path from
// whatever HMMs are left.
func TilingPaths(hmms []*HMM) [][]*HMM {
	remaining := append([]*HMM{}, hmms...)
	sortHMMs(remaining)

	var paths [][]*HMM
	for len(remaining) > 0 {
		path := []*HMM{remaining[0]}
		remaining = remaining[1:]
		refName := path[0].refName
		end := path[0].RefEnd()

		for i := 0; i < len(remaining); {
			h := remaining[i]
			if h.refName == refName && h.refStart >= end {
				path = append(path, h)
				end = h.RefEnd()
				remaining = append(remaining[:i], remaining[i+1:]...)
				continue
			}
			i++
		}
		paths = append(paths, path)
	}
	return paths
}
