// Package pipeline builds and runs the nextflow invocations for the two
// wrapped nf-core pipelines. Both pipelines for a sample run as external
// processes in parallel, and the wrapper blocks until both exit.
package pipeline

import (
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/clinical-genomics-gbg/qdrnaseq/config"
	"github.com/clinical-genomics-gbg/qdrnaseq/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Invocation is one ready-to-run pipeline command line.
type Invocation struct {
	Name string // pipeline name, e.g. nf-core/rnaseq
	Args []string
}

// Options modify how pipeline commands are built.
type Options struct {
	Sample        string
	Testrun       bool // run with the nf-core test profile and data
	SaveReference bool // download references and keep them in the outdir
}

// Preflight verifies the workflow engine binary is on PATH before any
// commands are built.
func Preflight(cfg *config.Config) error {
	nf := cfg.Get("nextflow", "executable")
	if _, err := exec.LookPath(nf); err != nil {
		return errors.Wrapf(err, "workflow engine %s not found on PATH", nf)
	}
	return nil
}

// Environ returns the environment for pipeline processes. The singularity
// image cache dir from the config is exported as NXF_SINGULARITY_CACHEDIR
// unless already set, the workflow engine reads it directly.
func Environ(cfg *config.Config) []string {
	env := os.Environ()
	if cfg.Has("nextflow", "singularity_cachedir") && os.Getenv("NXF_SINGULARITY_CACHEDIR") == "" {
		env = append(env, "NXF_SINGULARITY_CACHEDIR="+cfg.Get("nextflow", "singularity_cachedir"))
	}
	return env
}

// Run starts all invocations in parallel and waits for every one to
// finish. Pipeline output is streamed to log. Returns the names of the
// pipelines that exited zero; a non-zero exit from any pipeline is
// returned as an error after all pipelines have finished.
func Run(log *logging.Logger, sample string, env []string, invs ...Invocation) ([]string, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var finished []string
	var errs []error

	for i := range invs {
		wg.Add(1)
		go func(inv Invocation) {
			defer wg.Done()
			log.Printf("%s - starting the %s pipeline", sample, inv.Name)
			cmd := exec.Command(inv.Args[0], inv.Args[1:]...)
			cmd.Stdout = log
			cmd.Stderr = log
			cmd.Env = env
			err := cmd.Run()

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, errors.Wrapf(err, "%s pipeline failed for %s", inv.Name, sample))
				return
			}
			log.Printf("%s - completed the %s pipeline", sample, inv.Name)
			finished = append(finished, inv.Name)
		}(invs[i])
	}
	wg.Wait()

	if len(errs) > 0 {
		return finished, errs[0]
	}
	return finished, nil
}

// runName builds a unique nextflow run name for a sample, so a rerun of
// the same sample never collides with an earlier session. Nextflow run
// names must start with a lowercase letter and contain only lowercase
// alphanumerics and underscores.
func runName(sample string) string {
	mangled := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, sample)
	return "qd_" + mangled + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
