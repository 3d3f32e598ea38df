// Package readprofile builds rphmm.ProfileSequence values, the engine's
// only input type, from sequencing reads: either real alignments loaded
// from a BAM file (FromBAM) or synthetic reads drawn from a FASTA
// reference for testing (Synthesize). Nothing in rphmm depends on this
// package; the dependency runs one way, from here into rphmm.
package readprofile
