package pipeline

import (
	"path/filepath"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// RnaseqCommand builds the nf-core/rnaseq invocation for a sample.
// References come from [rnaseq-references] when present; otherwise (and
// when re-downloading with SaveReference) the named iGenomes genome is
// used. The star_salmon and star_rsem aligners take their index from the
// matching reference option.
func RnaseqCommand(cfg *config.Config, outdir, ssPath string, opts Options) (Invocation, error) {
	args := []string{
		cfg.Get("nextflow", "executable"),
		"-log", filepath.Join(outdir, "logs", "rnaseq.log"),
		"run", cfg.Get("rnaseq", "main"),
		"-work-dir", filepath.Join(outdir, "work"),
		"-with-report", filepath.Join(outdir, "logs", "rnaseq-execution.html"),
		"-name", runName(opts.Sample),
	}

	if cfg.Has("nextflow", "custom_config") {
		args = append(args, "-c", cfg.Get("nextflow", "custom_config"))
	}

	if opts.Testrun {
		args = append(args, "-profile", cfg.Get("nextflow", "test_profile"))
	} else {
		args = append(args, "-profile", cfg.Get("nextflow", "profile"))
	}

	args = append(args, "--outdir", filepath.Join(outdir, "rnaseq"))

	// the test profile carries its own input and references
	if opts.Testrun {
		return Invocation{Name: "nf-core/rnaseq", Args: args}, nil
	}

	if cfg.HasSection("rnaseq-references") && !opts.SaveReference {
		refs := cfg.Section("rnaseq-references")
		options := make([]string, 0, len(refs))
		for option := range refs {
			options = append(options, option)
		}
		slices.Sort(options)
		for _, option := range options {
			// which index to use depends on the aligner, handled below
			if option == "star_index" || option == "rsem_index" {
				continue
			}
			args = append(args, "--"+option, refs[option])
		}
	} else {
		args = append(args, "--genome", cfg.Get("rnaseq", "genome"))
	}

	aligner := cfg.Get("rnaseq", "aligner")
	args = append(args, "--aligner", aligner)
	if aligner != "star_salmon" {
		args = append(args, "--pseudo_aligner", "salmon")
	}

	switch aligner {
	case "star_salmon":
		args = append(args, "--star_index", cfg.Get("rnaseq-references", "star_index"))
	case "star_rsem":
		args = append(args, "--rsem_index", cfg.Get("rnaseq-references", "rsem_index"))
	default:
		return Invocation{}, errors.Errorf("aligner %s not supported", aligner)
	}

	args = append(args, "--input", ssPath)

	if opts.SaveReference {
		args = append(args, "--save_reference")
	}

	return Invocation{Name: "nf-core/rnaseq", Args: args}, nil
}
