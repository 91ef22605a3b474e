package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/clinical-genomics-gbg/qdrnaseq/logging"
	"github.com/clinical-genomics-gbg/qdrnaseq/pipeline"
	"github.com/clinical-genomics-gbg/qdrnaseq/references"
	"github.com/clinical-genomics-gbg/qdrnaseq/report"
	"github.com/clinical-genomics-gbg/qdrnaseq/sample"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
)

func startUsage(startFlags *flag.FlagSet) {
	fmt.Print(
		"start - Run the rnaseq and rnafusion pipelines on one sample\n\n" +
			"Usage:\n" +
			"  qdrnaseq start [options] -fastqdir /path/to/fastqs\n\n" +
			"Options:\n")
	startFlags.PrintDefaults()
}

type startOpts struct {
	fastqdir      string
	ssPath        string
	sampleName    string
	strandedness  string
	outdir        string
	testrun       bool
	skipRnaseq    bool
	skipRnafusion bool
	saveReference bool
	skipReport    bool
}

func runStart(args []string) {
	var err error
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)

	configFile := startFlags.String("config", "", "Config file. Defaults to config.ini in the working directory.")
	fastqdir := startFlags.String("fastqdir", "", "Directory with one gzipped fastq pair per sample.")
	ssPath := startFlags.String("samplesheet", "", "Existing samplesheet.csv to use instead of a fastq directory.")
	sampleName := startFlags.String("sample", "", "Sample name used in output. Defaults to the fastqdir basename.")
	strandedness := startFlags.String("strandedness", "", "Strandedness of the sequencing libraries.")
	outdir := startFlags.String("outdir", "", "Output directory. Defaults to <output_dir>/<sample>.")
	testrun := startFlags.Bool("testrun", false, "Run the pipelines with nf-core test data.")
	skipRnaseq := startFlags.Bool("skip-rnaseq", false, "Skip the nf-core/rnaseq pipeline.")
	skipRnafusion := startFlags.Bool("skip-rnafusion", false, "Skip the nf-core/rnafusion pipeline.")
	saveReference := startFlags.Bool("save-reference", false, "Download genome references and keep them in the output directory.")
	skipReport := startFlags.Bool("skip-report", false, "Skip copying output to the report directory.")

	err = startFlags.Parse(args)
	exception.PanicOnErr(err)
	startFlags.Usage = func() { startUsage(startFlags) }

	cfg, err := config.Load(*configFile)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}

	log, logfile, err := logging.New(cfg.Get("general", "wrapper_log_dir"))
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}
	log.Printf("starting the rnaseq pipeline wrapper, logging to %s", logfile)

	err = startSample(cfg, log, startOpts{
		fastqdir:      *fastqdir,
		ssPath:        *ssPath,
		sampleName:    *sampleName,
		strandedness:  *strandedness,
		outdir:        *outdir,
		testrun:       *testrun,
		skipRnaseq:    *skipRnaseq,
		skipRnafusion: *skipRnafusion,
		saveReference: *saveReference,
		skipReport:    *skipReport,
	})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

// startSample runs the full per-sample flow: samplesheet, reference
// preflight, both pipelines in parallel, report staging. Shared between
// the start and batch subcommands.
func startSample(cfg *config.Config, log *logging.Logger, o startOpts) error {
	var err error

	if o.testrun {
		o.sampleName = "testrun"
		o.ssPath = "" // the test profile carries its own input
		log.Print("running pipelines with test data")
	} else {
		if o.fastqdir == "" && o.ssPath == "" {
			return errors.New("provide either a fastq dir or a samplesheet")
		}
		if o.strandedness == "" {
			o.strandedness = cfg.Get("general", "strandedness")
		}
		if o.ssPath == "" {
			if o.sampleName == "" {
				o.sampleName = filepath.Base(filepath.Clean(o.fastqdir))
			}
			log.Printf("no samplesheet provided, creating samplesheet.csv from %s", o.fastqdir)
			pairs, err := sample.DiscoverPairs(o.fastqdir)
			if err != nil {
				return err
			}
			o.ssPath = filepath.Join(o.fastqdir, "samplesheet.csv")
			if err = sample.WriteSamplesheet(o.ssPath, pairs, o.strandedness); err != nil {
				return err
			}
		}
		if o.sampleName == "" {
			rows, err := sample.ReadSamplesheet(o.ssPath)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return errors.Errorf("samplesheet %s is empty", o.ssPath)
			}
			o.sampleName = rows[0].Sample
		}
	}

	if o.outdir == "" {
		o.outdir = filepath.Join(cfg.Get("general", "output_dir"), o.sampleName)
	}
	if err = os.MkdirAll(o.outdir, 0755); err != nil {
		return errors.Wrapf(err, "creating output dir %s", o.outdir)
	}

	if err = pipeline.Preflight(cfg); err != nil {
		return err
	}
	if !o.testrun {
		if err = references.Verify(cfg, log); err != nil {
			return err
		}
	}

	opts := pipeline.Options{Sample: o.sampleName, Testrun: o.testrun, SaveReference: o.saveReference}
	var invs []pipeline.Invocation
	if !o.skipRnaseq {
		inv, err := pipeline.RnaseqCommand(cfg, o.outdir, o.ssPath, opts)
		if err != nil {
			return err
		}
		invs = append(invs, inv)
	}
	if !o.skipRnafusion {
		inv, err := pipeline.RnafusionCommand(cfg, o.outdir, o.ssPath, opts)
		if err != nil {
			return err
		}
		invs = append(invs, inv)
	}

	finished, err := pipeline.Run(log, o.sampleName, pipeline.Environ(cfg), invs...)
	if err != nil {
		return err
	}

	if o.skipReport {
		log.Print("reporting disabled, skipping copy to report dir")
	} else {
		copied, err := report.Stage(cfg, finished, o.outdir, o.sampleName)
		if err != nil {
			return err
		}
		for pipe, n := range copied {
			log.Printf("moved %d files generated by %s", n, pipe)
		}
	}

	log.Printf("completed the rnaseq wrapper workflow for %s", o.sampleName)
	return nil
}
