package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
// New subcommands can be added to qdrnaseq by adding a new entry to this array.
var SubCommands = []*subcommand{
	{"start", runStart, "run both pipelines on one fastq directory or samplesheet"},
	{"batch", runBatch, "analyse all samples flagged in SLIMS, skipping finished ones"},
	{"samplesheet", runSamplesheet, "write a samplesheet.csv from a fastq directory"},
	{"qc", runQc, "summarize read counts and base qualities of a fastq pair"},
	{"report", runReport, "copy the report subset of a finished run to the report directory"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: qdrnaseq (wrapper for the nf-core rnaseq and rnafusion pipelines)\n" +
			"Version: " + version + "\n" +
			"Contact: Clinical Genomics Gothenburg <cgg-bioinformatics@gu.se>\n" +
			"\nUsage:\tqdrnaseq <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	// check if first argument is a valid subcommand
	command := commandMap()[flag.Arg(0)]

	// if no command is found, print the usage and return
	if command == nil {
		flag.Usage()
		return
	}

	// if command successfully found, pass in remaining arguments and execute
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
