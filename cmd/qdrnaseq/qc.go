package main

import (
	"flag"
	"fmt"

	"github.com/clinical-genomics-gbg/qdrnaseq/sample"
	"github.com/vertgenlab/gonomics/exception"
)

func qcUsage(qcFlags *flag.FlagSet) {
	fmt.Print(
		"qc - Summarize read counts and base qualities of a fastq pair\n\n" +
			"Usage:\n" +
			"  qdrnaseq qc [options] -1 r1.fastq.gz -2 r2.fastq.gz\n\n" +
			"Options:\n")
	qcFlags.PrintDefaults()
}

func runQc(args []string) {
	var err error
	qcFlags := flag.NewFlagSet("qc", flag.ExitOnError)

	r1 := qcFlags.String("1", "", "FASTQ file containing R1 reads. May be gzipped.")
	r2 := qcFlags.String("2", "", "FASTQ file containing R2 reads. May be gzipped.")
	maxPairs := qcFlags.Int("n", 10000, "Number of read pairs to sample. 0 reads the whole pair.")
	plotFile := qcFlags.String("plot", "", "Also save the per-cycle quality plot to this file (.png, .pdf, .svg).")

	err = qcFlags.Parse(args)
	exception.PanicOnErr(err)
	qcFlags.Usage = func() { qcUsage(qcFlags) }

	if *r1 == "" || *r2 == "" {
		qcFlags.Usage()
		errExit("\nERROR: must have inputs for -1 and -2")
	}

	qc := sample.PairQC(sample.Pair{R1: *r1, R2: *r2}, *maxPairs)

	fmt.Printf("read pairs sampled:\t%d\n", qc.Pairs)
	fmt.Printf("mean read length:\t%.1f\n", qc.MeanLength)
	fmt.Printf("mean base quality:\t%.1f (sd %.1f)\n", qc.MeanQuality, qc.StdevQuality)
	fmt.Println("\nmean quality per cycle (blue R1, red R2):")
	fmt.Println(qc.QualityGraph())

	if *plotFile != "" {
		err = qc.SaveQualityPlot(*plotFile)
		exception.PanicOnErr(err)
		fmt.Println("saved quality plot to", *plotFile)
	}
}
