// Package sample models a sequencing sample as an id plus a pair of
// gzipped fastq files, and discovers such pairs in an input directory.
package sample

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Pair is one sample with its two fastq files. The wrapped pipelines take
// exactly one R1/R2 pair per sample; samples sequenced over multiple lanes
// must be concatenated before processing.
type Pair struct {
	Sample string
	R1     string
	R2     string
}

// readSuffix matches the read designator at the end of an Illumina-style
// fastq file name, e.g. _R1_001.fastq.gz, _R2.fastq.gz, _1.fastq.gz.
var readSuffix = regexp.MustCompile(`_(R?)([12])(_\d{3})?\.fastq\.gz$`)

// VerifyDir checks that every file in fastqdir ends with .fastq.gz.
// A samplesheet.csv left over from a previous run is tolerated.
func VerifyDir(fastqdir string) error {
	entries, err := os.ReadDir(fastqdir)
	if err != nil {
		return errors.Wrapf(err, "reading fastq dir %s", fastqdir)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".fastq.gz") {
			continue
		}
		if strings.EqualFold(e.Name(), "samplesheet.csv") {
			continue
		}
		return errors.Errorf("found a file not ending with .fastq.gz in fastq dir: %s", e.Name())
	}
	return nil
}

// DiscoverPairs scans fastqdir and groups fastq files into R1/R2 pairs by
// sample name. A sample with more than two files is rejected: lanes must
// be concatenated externally before the wrapper is run.
func DiscoverPairs(fastqdir string) ([]Pair, error) {
	if err := VerifyDir(fastqdir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(fastqdir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading fastq dir %s", fastqdir)
	}

	files := make(map[string][]string) // sample name -> fastq paths, R1 before R2
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".fastq.gz") {
			continue
		}
		name, _, ok := splitName(e.Name())
		if !ok {
			return nil, errors.Errorf("cannot determine read number for fastq file: %s", e.Name())
		}
		files[name] = append(files[name], filepath.Join(fastqdir, e.Name()))
	}

	var ans []Pair
	for name, paths := range files {
		if len(paths) != 2 {
			return nil, errors.Errorf("sample %s has %d fastq files, expected exactly 2: concatenate lanes before processing", name, len(paths))
		}
		slices.SortFunc(paths, func(a, b string) int { return readNumber(a) - readNumber(b) })
		ans = append(ans, Pair{Sample: name, R1: paths[0], R2: paths[1]})
	}
	slices.SortFunc(ans, func(a, b Pair) int { return strings.Compare(a.Sample, b.Sample) })
	return ans, nil
}

// splitName strips the read designator from a fastq file name, returning
// the sample name and read number.
func splitName(filename string) (sample string, read int, ok bool) {
	m := readSuffix.FindStringSubmatchIndex(filename)
	if m == nil {
		return "", 0, false
	}
	sample = filename[:m[0]]
	if filename[m[4]:m[5]] == "2" {
		return sample, 2, true
	}
	return sample, 1, true
}

func readNumber(path string) int {
	_, read, ok := splitName(filepath.Base(path))
	if !ok {
		return 0
	}
	return read
}
