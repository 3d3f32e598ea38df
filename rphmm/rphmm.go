package rphmm

import "github.com/grailbio/base/log"

// substitutionMatrixFor picks the substitution matrix for a reference: the
// per-reference prior if the caller supplied one, else params' default.
func substitutionMatrixFor(refName string, priorsByReference map[string]*SubstitutionMatrix, params Params) SubstitutionMatrix {
	if sm, ok := priorsByReference[refName]; ok && sm != nil {
		return *sm
	}
	return params.LogSubstitutionMatrix
}

// GetRPHmms is the package's entry point: it builds one singleton HMM per
// profile sequence, tiles them into non-overlapping paths, and recursively
// merges the tiling paths into the final set of phased HMMs.
//
// If the tiling depth exceeds params.MaxCoverageDepth, GetRPHmms
// transparently discards the deepest reads via FilterReadsByCoverageDepth
// rather than failing outright. It has no mode that fails instead of
// filtering: it returns ErrCoverageExceeded only when MaxCoverageDepth is
// above 64 and the tiling depth is too.
func GetRPHmms(profileSeqs []*ProfileSequence, priorsByReference map[string]*SubstitutionMatrix, params Params) ([]*HMM, error) {
	if len(profileSeqs) == 0 {
		return nil, nil
	}

	hmms := make([]*HMM, len(profileSeqs))
	for i, seq := range profileSeqs {
		hmms[i] = newSingletonHMM(seq, substitutionMatrixFor(seq.RefName, priorsByReference, params))
	}
	paths := TilingPaths(hmms)

	if len(paths) > params.MaxCoverageDepth {
		log.Printf("rphmm: tiling depth %d exceeds MaxCoverageDepth %d, filtering reads", len(paths), params.MaxCoverageDepth)
		kept, discarded := FilterReadsByCoverageDepth(profileSeqs, params)
		log.Printf("rphmm: kept %d reads, discarded %d", len(kept), len(discarded))
		hmms = make([]*HMM, len(kept))
		for i, seq := range kept {
			hmms[i] = newSingletonHMM(seq, substitutionMatrixFor(seq.RefName, priorsByReference, params))
		}
		paths = TilingPaths(hmms)
	}

	log.Printf("rphmm: merging %d tiling paths", len(paths))
	result, err := mergeTilingPaths(paths, params)
	if err != nil {
		return nil, err
	}
	sortHMMs(result)

	// A singleton component passes through resolveComponent untouched, so
	// it never gets a forward/backward pass from merging; run one here on
	// every final HMM so ForwardTraceBack always has a populated forward
	// lattice to walk (spec.md §9 open question 3).
	for _, h := range result {
		ForwardBackward(h)
	}
	log.Printf("rphmm: produced %d phased HMMs", len(result))
	return result, nil
}
