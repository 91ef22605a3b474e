// Package report stages the configured subset of pipeline output into the
// reporting directory. Which files to keep is driven by the
// [report-rnaseq] and [report-rnafusion] config sections, where each
// option names an output subdirectory and holds a comma-separated list of
// glob patterns.
package report

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// igvExtensions are routed to the IGV directory instead of the report
// directory, so the browser picks them up directly.
var igvExtensions = []string{".bam", ".bai", ".bigWig"}

// Stage copies the configured output subset of each finished pipeline
// from outdir into <report_dir>/<sample>, and alignment files into
// <igv_dir>/<sample>. Returns the number of copied files per pipeline.
func Stage(cfg *config.Config, finished []string, outdir, sampleName string) (map[string]int, error) {
	reportDir := filepath.Join(cfg.Get("general", "report_dir"), sampleName)
	igvDir := filepath.Join(cfg.Get("general", "igv_dir"), sampleName)

	copied := make(map[string]int)
	for _, pipe := range finished {
		// strip the org prefix: nf-core/rnaseq -> rnaseq
		name := path.Base(pipe)

		section := cfg.Section("report-" + name)
		options := make([]string, 0, len(section))
		for option := range section {
			options = append(options, option)
		}
		slices.Sort(options)

		for _, option := range options {
			for _, pattern := range splitPatterns(section[option]) {
				searchPath := filepath.Join(outdir, name, option, pattern)
				// stringtie output is nested under the aligner directory
				if option == "stringtie" {
					searchPath = filepath.Join(outdir, name, cfg.Get("rnaseq", "aligner"), option, pattern)
				}

				matches, err := filepath.Glob(searchPath)
				if err != nil {
					return copied, errors.Wrapf(err, "bad report pattern %s", pattern)
				}
				for _, match := range matches {
					if err = stageFile(match, option, reportDir, igvDir); err != nil {
						return copied, err
					}
					copied[name]++
				}
			}
		}
	}
	return copied, nil
}

func stageFile(src, option, reportDir, igvDir string) error {
	if slices.Contains(igvExtensions, filepath.Ext(src)) {
		return copyFile(src, filepath.Join(igvDir, filepath.Base(src)))
	}

	dest := filepath.Join(reportDir, option, filepath.Base(src))
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "staging %s", src)
	}
	if info.IsDir() {
		return copyDir(src, dest)
	}
	return copyFile(src, dest)
}

func splitPatterns(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, "creating report dir for %s", dest)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "copying %s", src)
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "copying %s", src)
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %s", src)
	}
	return errors.Wrapf(out.Close(), "copying %s", src)
}

func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dest, rel), 0755)
		}
		return copyFile(p, filepath.Join(dest, rel))
	})
}
