package readprofile

import (
	"io"
	"os"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/readphase/rphmm"
)

// FromBAM reads every record from the BAM file at path and converts the
// ones that pass opts into profile sequences. It reads the file
// sequentially rather than through an index, the same raw-reader path
// markduplicates' test harness uses for BAM files with no index.
func FromBAM(path string, opts BAMOpts) ([]*rphmm.ProfileSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err, "opening "+path)
	}
	defer f.Close() // nolint: errcheck

	reader, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, ioError(err, "reading BAM header from "+path)
	}

	var records []*sam.Record
	for {
		r, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ioError(err, "reading record from "+path)
		}
		records = append(records, r)
	}
	return FromRecords(records, opts)
}
