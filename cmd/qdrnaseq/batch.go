package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/clinical-genomics-gbg/qdrnaseq/logging"
	"github.com/clinical-genomics-gbg/qdrnaseq/sample"
	"github.com/clinical-genomics-gbg/qdrnaseq/slims"
	"github.com/clinical-genomics-gbg/qdrnaseq/tracker"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
	"golang.org/x/exp/slices"
)

func batchUsage(batchFlags *flag.FlagSet) {
	fmt.Print(
		"batch - Analyse all samples flagged for rnaseq analysis in SLIMS\n\n" +
			"Samples already present in the tracking file are skipped. Each\n" +
			"sample runs through the same flow as the start subcommand, and is\n" +
			"appended to the tracking file once both pipelines finish.\n\n" +
			"Usage:\n" +
			"  qdrnaseq batch [options]\n\n" +
			"Options:\n")
	batchFlags.PrintDefaults()
}

func runBatch(args []string) {
	var err error
	batchFlags := flag.NewFlagSet("batch", flag.ExitOnError)

	configFile := batchFlags.String("config", "", "Config file. Defaults to config.ini in the working directory.")
	slimsStatus := batchFlags.Bool("slims-status", false, "Record analysis state on SLIMS bioinformatics records.")
	dryRun := batchFlags.Bool("dry-run", false, "List pending samples without starting any pipeline.")
	skipReport := batchFlags.Bool("skip-report", false, "Skip copying output to the report directory.")

	err = batchFlags.Parse(args)
	exception.PanicOnErr(err)
	batchFlags.Usage = func() { batchUsage(batchFlags) }

	cfg, err := config.Load(*configFile)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}

	log, logfile, err := logging.New(cfg.Get("general", "wrapper_log_dir"))
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %v", err))
	}
	log.Printf("starting the rnaseq batch wrapper, logging to %s", logfile)

	client := slims.NewClient(
		cfg.Get("slims", "url"),
		cfg.Get("slims", "username"),
		cfg.Get("slims", "password"),
	)
	secondaryAnalysis := int64(cfg.GetInt("slims", "secondary_analysis"))

	track, err := tracker.New(cfg.Get("general", "previously_analysed"))
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	records, err := client.SamplesForAnalysis(secondaryAnalysis)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	log.Printf("found %d samples flagged for analysis", len(records))

	var failed int
	for _, rec := range records {
		id := rec.String("cntn_id")
		if track.IsProcessed(id) {
			log.Printf("%s - already analysed, skipping", id)
			continue
		}
		if *dryRun {
			log.Printf("%s - pending analysis", id)
			continue
		}
		// a failed sample is terminal for that sample only, the batch moves on
		if err = processSample(cfg, log, client, track, rec, secondaryAnalysis, *slimsStatus, *skipReport); err != nil {
			log.Printf("ERROR: %s - %v", id, err)
			failed++
		}
	}

	if failed > 0 {
		log.Fatalf("ERROR: completed the batch run, %d samples failed", failed)
	}
	log.Print("completed the batch run")
}

func processSample(cfg *config.Config, log *logging.Logger, client *slims.Client, track *tracker.Tracker, rec slims.Record, secondaryAnalysis int64, slimsStatus, skipReport bool) error {
	id := rec.String("cntn_id")

	info, err := client.Translate(rec)
	if err != nil {
		return err
	}
	log.Printf("%s - department %s, priority %v", id, info.Department, info.IsPriority)

	fastqRecords, err := client.FastqRecords(id)
	if err != nil {
		return err
	}
	if len(fastqRecords) == 0 {
		return errors.Errorf("no fastq records registered for %s", id)
	}

	runTag, err := slims.RunTag(fastqRecords)
	if err != nil {
		return err
	}
	log.Printf("%s - newest run tag %s", id, runTag)

	sets, err := slims.FastqPaths(fastqRecords)
	if err != nil {
		return err
	}
	var paths []string
	for _, set := range sets {
		paths = append(paths, set.Paths...)
	}
	if len(paths) != 2 {
		return errors.Errorf("%d fastq files registered for %s, expected exactly 2: concatenate lanes before processing", len(paths), id)
	}
	slices.Sort(paths) // R1 sorts before R2

	outdir := filepath.Join(cfg.Get("general", "output_dir"), id)
	ssPath := filepath.Join(outdir, "samplesheet.csv")
	pair := sample.Pair{Sample: id, R1: paths[0], R2: paths[1]}

	var bioinfoPK int64
	if slimsStatus {
		bioinfoPK, err = markRunning(client, id, fastqRecords[0].PK, secondaryAnalysis)
		if err != nil {
			return err
		}
	}

	err = runPair(cfg, log, pair, outdir, ssPath, skipReport)
	if slimsStatus {
		state := slims.StateComplete
		if err != nil {
			state = slims.StateError
		}
		if stateErr := client.SetAnalysisState(bioinfoPK, state); stateErr != nil {
			log.Printf("ERROR: %s - %v", id, stateErr)
		}
	}
	if err != nil {
		return err
	}

	return track.MarkProcessed(id)
}

func runPair(cfg *config.Config, log *logging.Logger, pair sample.Pair, outdir, ssPath string, skipReport bool) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrapf(err, "creating output dir %s", outdir)
	}
	if err := sample.WriteSamplesheet(ssPath, []sample.Pair{pair}, cfg.Get("general", "strandedness")); err != nil {
		return err
	}
	return startSample(cfg, log, startOpts{
		ssPath:     ssPath,
		sampleName: pair.Sample,
		outdir:     outdir,
		skipReport: skipReport,
	})
}

// markRunning finds or creates the bioinformatics record for a sample and
// flags its analysis as running.
func markRunning(client *slims.Client, id string, fastqPK, secondaryAnalysis int64) (int64, error) {
	rec, found, err := client.FindBioinformatics(id, secondaryAnalysis)
	if err != nil {
		return 0, err
	}
	if !found {
		rec, err = client.AddBioinformatics(id, fastqPK, secondaryAnalysis, slims.StateRunning)
		if err != nil {
			return 0, err
		}
		return rec.PK, nil
	}
	return rec.PK, client.SetAnalysisState(rec.PK, slims.StateRunning)
}
