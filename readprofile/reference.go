package readprofile

import (
	"os"
	"strings"

	"github.com/grailbio/readphase/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// LoadIndexedReference opens a FASTA reference alongside its .fai index and
// returns a fasta.Fasta that seeks for each Get/Len instead of reading the
// whole file into memory, for references too large to hold resident (e.g. a
// full chromosome) when only a handful of regions will be synthesized from.
func LoadIndexedReference(fastaPath, faiPath string) (fasta.Fasta, error) {
	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, ioError(err, "opening reference "+fastaPath)
	}
	idx, err := os.Open(faiPath)
	if err != nil {
		f.Close() // nolint: errcheck
		return nil, ioError(err, "opening reference index "+faiPath)
	}
	defer idx.Close() // nolint: errcheck

	ref, err := fasta.NewIndexed(f, idx)
	if err != nil {
		f.Close() // nolint: errcheck
		return nil, ioError(err, "parsing reference index "+faiPath)
	}
	return ref, nil
}

// LoadReference opens a FASTA reference file, transparently decompressing
// it if path ends in ".gz", and returns it as an in-memory fasta.Fasta for
// Synthesize to draw reads from.
func LoadReference(path string) (fasta.Fasta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err, "opening reference "+path)
	}
	defer f.Close() // nolint: errcheck

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, ioError(err, "opening gzip reference "+path)
		}
		defer gz.Close() // nolint: errcheck
		ref, err := fasta.New(gz, fasta.OptClean)
		if err != nil {
			return nil, ioError(err, "parsing reference "+path)
		}
		return ref, nil
	}

	ref, err := fasta.New(f, fasta.OptClean)
	if err != nil {
		return nil, ioError(err, "parsing reference "+path)
	}
	return ref, nil
}
