package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/clinical-genomics-gbg/qdrnaseq/sample"
	"github.com/vertgenlab/gonomics/exception"
)

func samplesheetUsage(ssFlags *flag.FlagSet) {
	fmt.Print(
		"samplesheet - Write an nf-core samplesheet.csv from a fastq directory\n\n" +
			"Usage:\n" +
			"  qdrnaseq samplesheet [options] -fastqdir /path/to/fastqs\n\n" +
			"Options:\n")
	ssFlags.PrintDefaults()
}

func runSamplesheet(args []string) {
	var err error
	ssFlags := flag.NewFlagSet("samplesheet", flag.ExitOnError)

	fastqdir := ssFlags.String("fastqdir", "", "Directory with one gzipped fastq pair per sample.")
	output := ssFlags.String("o", "", "Output samplesheet path. Defaults to <fastqdir>/samplesheet.csv.")
	strandedness := ssFlags.String("strandedness", "reverse", "Strandedness of the sequencing libraries.")

	err = ssFlags.Parse(args)
	exception.PanicOnErr(err)
	ssFlags.Usage = func() { samplesheetUsage(ssFlags) }

	if *fastqdir == "" {
		ssFlags.Usage()
		errExit("\nERROR: must input a fastq directory with -fastqdir")
	}
	if *output == "" {
		*output = filepath.Join(*fastqdir, "samplesheet.csv")
	}

	pairs, err := sample.DiscoverPairs(*fastqdir)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}
	err = sample.WriteSamplesheet(*output, pairs, *strandedness)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}
	fmt.Println(*output)
}
