package rphmm

// SubstitutionMatrix is an Alphabet x Alphabet row-major matrix of
// log P(derived | source) values, supplied by the caller. It is read-shared
// process-wide; the caller must keep it alive for the lifetime of every HMM
// referencing it.
type SubstitutionMatrix [Alphabet * Alphabet]float64

// At returns log P(k | src).
func (m *SubstitutionMatrix) At(src, k int) float64 { return m[src*Alphabet+k] }

// Params bundles the options recognized by GetRPHmms and the merge driver,
// mirroring the Opts/DefaultOpts convention the rest of this codebase uses
// for command options.
type Params struct {
	// PosteriorProbabilityThreshold: cells/merge cells with posterior below
	// this are pruned, in columns/merge columns at or above
	// MinColumnDepthToFilter.
	PosteriorProbabilityThreshold float64
	// MinColumnDepthToFilter: columns and merge columns shallower than this
	// are never pruned.
	MinColumnDepthToFilter int
	// MaxCoverageDepth: hard cap on tiling depth. GetRPHmms discards the
	// deepest tiling paths to get under it (see FilterReadsByCoverageDepth);
	// the merge step returns ErrCoverageExceeded when the depth it is given
	// is above this cap or above 64.
	MaxCoverageDepth int
	// LogSubstitutionMatrix is log P(derived | source), row-major over the
	// 4-letter alphabet.
	LogSubstitutionMatrix SubstitutionMatrix
}

// DefaultParams mirrors typical RP-HMM phasing defaults: prune aggressively
// only once a column is deep enough for pruning to matter, cap depth at the
// partition word width.
var DefaultParams = Params{
	PosteriorProbabilityThreshold: 0.001,
	MinColumnDepthToFilter:        10,
	MaxCoverageDepth:              64,
	LogSubstitutionMatrix:         IdentitySubstitutionMatrix(0.02),
}

// IdentitySubstitutionMatrix returns a substitution matrix with
// log(1-errRate) on the diagonal and log(errRate/(Alphabet-1)) off it, the
// simplest symmetric-error model.
func IdentitySubstitutionMatrix(errRate float64) SubstitutionMatrix {
	var m SubstitutionMatrix
	offDiag := logClamp(errRate / (Alphabet - 1))
	diag := logClamp(1 - errRate)
	for src := 0; src < Alphabet; src++ {
		for k := 0; k < Alphabet; k++ {
			if src == k {
				m[src*Alphabet+k] = diag
			} else {
				m[src*Alphabet+k] = offDiag
			}
		}
	}
	return m
}
