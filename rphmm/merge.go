package rphmm

import "github.com/grailbio/base/traverse"

// mergeComponent is one overlap-connected group produced by
// overlapComponents: at most one contiguous run of HMMs from each of the
// two input paths. A singleton component has exactly one of the two runs
// populated and passes through mergeComponent unchanged; a paired
// component gets fused, aligned, cross-produced, run through
// forward/backward, and pruned.
type mergeComponent struct {
	left, right []*HMM
}

// overlapComponents scans path1 and path2 (each individually sorted and
// non-overlapping) with two pointers, grouping mutually-overlapping runs
// from both paths under the transitive closure of Overlap.
func overlapComponents(path1, path2 []*HMM) []mergeComponent {
	var components []mergeComponent
	i, j := 0, 0
	for i < len(path1) && j < len(path2) {
		a, b := path1[i], path2[j]
		if !Overlap(a, b) {
			if compareHMM(a, b) < 0 {
				components = append(components, mergeComponent{left: []*HMM{a}})
				i++
			} else {
				components = append(components, mergeComponent{right: []*HMM{b}})
				j++
			}
			continue
		}

		comp := mergeComponent{left: []*HMM{a}, right: []*HMM{b}}
		i++
		j++
		end := maxInt(a.RefEnd(), b.RefEnd())
		for {
			advanced := false
			if i < len(path1) && path1[i].refName == a.refName && path1[i].refStart < end {
				comp.left = append(comp.left, path1[i])
				end = maxInt(end, path1[i].RefEnd())
				i++
				advanced = true
			}
			if j < len(path2) && path2[j].refName == a.refName && path2[j].refStart < end {
				comp.right = append(comp.right, path2[j])
				end = maxInt(end, path2[j].RefEnd())
				j++
				advanced = true
			}
			if !advanced {
				break
			}
		}
		components = append(components, comp)
	}
	for ; i < len(path1); i++ {
		components = append(components, mergeComponent{left: []*HMM{path1[i]}})
	}
	for ; j < len(path2); j++ {
		components = append(components, mergeComponent{right: []*HMM{path2[j]}})
	}
	return components
}

// fuseChain fuses a sequence of non-overlapping, coordinate-ordered HMMs
// into a single HMM.
func fuseChain(hmms []*HMM) (*HMM, error) {
	h := hmms[0]
	for _, next := range hmms[1:] {
		var err error
		if h, err = Fuse(h, next); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// resolveComponent turns one overlap component into a single HMM: a
// singleton passes through unchanged; a pair is fused per side, aligned,
// cross-produced, and run through forward-backward and pruning.
func resolveComponent(comp mergeComponent, params Params) (*HMM, error) {
	if len(comp.left) == 0 {
		return comp.right[0], nil
	}
	if len(comp.right) == 0 {
		return comp.left[0], nil
	}
	l, err := fuseChain(comp.left)
	if err != nil {
		return nil, err
	}
	r, err := fuseChain(comp.right)
	if err != nil {
		return nil, err
	}
	if err := AlignColumns(l, r); err != nil {
		return nil, err
	}
	cp, err := CrossProduct(l, r)
	if err != nil {
		return nil, err
	}
	// Forward-backward here lets pruning act on this sub-region's own
	// posteriors before the top-level pass re-normalizes totals after the
	// rest of the fusion completes (spec open question 3).
	ForwardBackward(cp)
	Prune(cp, params)
	return cp, nil
}

// mergeTwoPaths merges two tiling paths into one, per spec.md §4.9: group
// into overlap components, resolve each, and return the result sorted by
// coordinate.
func mergeTwoPaths(path1, path2 []*HMM, params Params) ([]*HMM, error) {
	comps := overlapComponents(path1, path2)
	result := make([]*HMM, 0, len(comps))
	for _, comp := range comps {
		h, err := resolveComponent(comp, params)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	sortHMMs(result)
	return result, nil
}

// mergeTilingPaths recursively halves paths and merges the two halves, the
// one place this package runs work in parallel: the two recursive calls
// operate on disjoint HMM sets with no shared mutable state, so they run as
// two traverse.Each tasks exactly as pileup/snp and encoding/converter run
// their shard loops.
func mergeTilingPaths(paths [][]*HMM, params Params) ([]*HMM, error) {
	if len(paths) > params.MaxCoverageDepth || len(paths) > maxDepth {
		return nil, ErrCoverageExceeded
	}
	return mergeTilingPathsRecursive(paths, params)
}

func mergeTilingPathsRecursive(paths [][]*HMM, params Params) ([]*HMM, error) {
	switch len(paths) {
	case 0:
		return nil, nil
	case 1:
		return paths[0], nil
	}

	mid := len(paths) / 2
	var left, right []*HMM
	err := traverse.Each(2, func(i int) error {
		var err error
		if i == 0 {
			left, err = mergeTilingPathsRecursive(paths[:mid], params)
		} else {
			right, err = mergeTilingPathsRecursive(paths[mid:], params)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return mergeTwoPaths(left, right, params)
}

// FilterReadsByCoverageDepth builds tiling paths over profileSeqs and
// discards whole paths, deepest layer first, until the remaining path
// count is at most params.MaxCoverageDepth.
func FilterReadsByCoverageDepth(profileSeqs []*ProfileSequence, params Params) (kept, discarded []*ProfileSequence) {
	hmms := make([]*HMM, len(profileSeqs))
	for i, s := range profileSeqs {
		hmms[i] = newSingletonHMM(s, substitutionMatrixFor(s.RefName, nil, params))
	}
	paths := TilingPaths(hmms)
	for len(paths) > params.MaxCoverageDepth {
		last := paths[len(paths)-1]
		discarded = append(discarded, flattenSingletons(last)...)
		paths = paths[:len(paths)-1]
	}
	for _, p := range paths {
		kept = append(kept, flattenSingletons(p)...)
	}
	return kept, discarded
}

func flattenSingletons(path []*HMM) []*ProfileSequence {
	seqs := make([]*ProfileSequence, 0, len(path))
	for _, h := range path {
		seqs = append(seqs, h.profileSeqs...)
	}
	return seqs
}
