package sample

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// SheetRow is one line of an nf-core samplesheet. Both wrapped pipelines
// consume the same four-column layout.
type SheetRow struct {
	Sample       string `csv:"sample"`
	Fastq1       string `csv:"fastq_1"`
	Fastq2       string `csv:"fastq_2"`
	Strandedness string `csv:"strandedness"`
}

// WriteSamplesheet writes a samplesheet.csv for pairs at path.
func WriteSamplesheet(path string, pairs []Pair, strandedness string) error {
	rows := make([]SheetRow, len(pairs))
	for i, p := range pairs {
		rows[i] = SheetRow{
			Sample:       p.Sample,
			Fastq1:       p.R1,
			Fastq2:       p.R2,
			Strandedness: strandedness,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating samplesheet %s", path)
	}
	if err = gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing samplesheet %s", path)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "writing samplesheet %s", path)
	}
	return nil
}

// ReadSamplesheet parses an existing samplesheet.csv.
func ReadSamplesheet(path string) ([]SheetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening samplesheet %s", path)
	}
	defer f.Close()

	var rows []SheetRow
	if err = gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "parsing samplesheet %s", path)
	}
	return rows, nil
}
