// Package references preflights the reference data the pipelines need:
// every configured reference path must exist before nextflow is started,
// and an indexed genome fasta gets a basic sanity report from its .fai.
package references

import (
	"os"
	"strconv"
	"strings"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/clinical-genomics-gbg/qdrnaseq/logging"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
)

// Verify checks that all reference paths in [rnaseq-references] and the
// rnafusion dependency tree exist. When the genome fasta has a .fai
// alongside, the index is parsed and its contig count and total length
// are logged.
func Verify(cfg *config.Config, log *logging.Logger) error {
	refs := cfg.Section("rnaseq-references")
	options := make([]string, 0, len(refs))
	for option := range refs {
		options = append(options, option)
	}
	slices.Sort(options)

	for _, option := range options {
		if _, err := os.Stat(refs[option]); err != nil {
			return errors.Errorf("rnaseq reference %s not found: %s", option, refs[option])
		}
	}

	if cfg.Has("rnafusion", "dependencies_fusion") {
		if _, err := os.Stat(cfg.Get("rnafusion", "dependencies_fusion")); err != nil {
			return errors.Errorf("rnafusion dependency tree not found: %s", cfg.Get("rnafusion", "dependencies_fusion"))
		}
	}

	if fasta, ok := refs["fasta"]; ok {
		if _, err := os.Stat(fasta + ".fai"); err == nil {
			contigs, bases, err := readFastaIndex(fasta + ".fai")
			if err != nil {
				return err
			}
			log.Printf("genome fasta index: %d contigs, %d bases", contigs, bases)
		}
	}
	return nil
}

// readFastaIndex parses a samtools faidx file and returns the contig
// count and summed contig length.
func readFastaIndex(filename string) (contigs int, bases int, err error) {
	file := fileio.EasyOpen(filename)
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col := strings.Split(line, "\t")
		if len(col) != 5 {
			file.Close()
			return 0, 0, errors.Errorf("malformed fasta index %s, offending line: %s", filename, line)
		}
		length, convErr := strconv.Atoi(col[1])
		if convErr != nil {
			file.Close()
			return 0, 0, errors.Wrapf(convErr, "malformed fasta index %s", filename)
		}
		contigs++
		bases += length
	}
	if err = file.Close(); err != nil {
		return 0, 0, errors.Wrapf(err, "reading fasta index %s", filename)
	}
	return contigs, bases, nil
}
