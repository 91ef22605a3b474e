package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/clinical-genomics-gbg/qdrnaseq/logging"
	"github.com/clinical-genomics-gbg/qdrnaseq/report"
	"github.com/vertgenlab/gonomics/exception"
)

func reportUsage(reportFlags *flag.FlagSet) {
	fmt.Print(
		"report - Copy the configured report subset of a finished run\n\n" +
			"Usage:\n" +
			"  qdrnaseq report [options] -outdir /path/to/run -sample NAME\n\n" +
			"Options:\n")
	reportFlags.PrintDefaults()
}

func runReport(args []string) {
	var err error
	reportFlags := flag.NewFlagSet("report", flag.ExitOnError)

	configFile := reportFlags.String("config", "", "Config file. Defaults to config.ini in the working directory.")
	outdir := reportFlags.String("outdir", "", "Pipeline output directory of the finished run.")
	sampleName := reportFlags.String("sample", "", "Sample name, used as subdirectory in the report dir.")
	pipelines := reportFlags.String("pipelines", "rnaseq,rnafusion", "Comma-separated pipelines to stage output for.")

	err = reportFlags.Parse(args)
	exception.PanicOnErr(err)
	reportFlags.Usage = func() { reportUsage(reportFlags) }

	if *outdir == "" || *sampleName == "" {
		reportFlags.Usage()
		errExit("\nERROR: must have inputs for -outdir and -sample")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}
	log := logging.NewConsole()

	copied, err := report.Stage(cfg, strings.Split(*pipelines, ","), *outdir, *sampleName)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	for pipe, n := range copied {
		log.Printf("moved %d files generated by %s", n, pipe)
	}
}
