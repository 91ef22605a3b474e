package pipeline

import (
	"path/filepath"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
)

// RnafusionCommand builds the nf-core/rnafusion invocation for a sample.
// All fusion callers are run (--all). The arriba references are pointed
// at the local dependency tree explicitly, the upstream defaults resolve
// wrong paths under --genomes_base.
func RnafusionCommand(cfg *config.Config, outdir, ssPath string, opts Options) (Invocation, error) {
	args := []string{
		cfg.Get("nextflow", "executable"),
		"-log", filepath.Join(outdir, "logs", "rnafusion.log"),
		"run", cfg.Get("rnafusion", "main"),
		"-work-dir", filepath.Join(outdir, "work"),
		"-with-report", filepath.Join(outdir, "logs", "rnafusion-execution.html"),
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

	args = append(args,
		"--all",
		"--genomes_base", cfg.Get("rnafusion", "dependencies_fusion"),
		"--arriba_ref", cfg.Get("rnafusion", "dependencies_arriba_ref"),
		"--arriba_ref_blacklist", cfg.Get("rnafusion", "dependencies_arriba_ref_blacklist"),
		"--arriba_ref_protein_domain", cfg.Get("rnafusion", "dependencies_arriba_ref_protein_domain"),
		"--fusioninspector_filter",
		"--fusionreport-tool-cutoff", cfg.Get("rnafusion", "fusionreport_tool_cutoff"),
		"--read_length", cfg.Get("rnafusion", "readlength"),
	)

	if !opts.Testrun {
		args = append(args, "--input", ssPath)
	}

	args = append(args, "--outdir", filepath.Join(outdir, "rnafusion"))

	return Invocation{Name: "nf-core/rnafusion", Args: args}, nil
}
