// Package nltk fetches toolkit corpora through the interpreter's own
// downloader.
package nltk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.CorpusFetcher.
type Fetcher struct {
	executor ports.Executor
	runtime  ports.RuntimeLocator
	verifier ports.Verifier
}

// NewFetcher creates a new Fetcher.
func NewFetcher(executor ports.Executor, runtime ports.RuntimeLocator, verifier ports.Verifier) *Fetcher {
	return &Fetcher{
		executor: executor,
		runtime:  runtime,
		verifier: verifier,
	}
}

// DataDir returns the corpus data directory the step operates on. The step
// environment wins, then the process environment, then ~/nltk_data, which is
// where the downloader unpacks by default.
func DataDir(step *domain.Step) (string, error) {
	if dir, ok := step.Environment[domain.DataDirEnvVar]; ok && dir != "" {
		return dir, nil
	}
	if dir := os.Getenv(domain.DataDirEnvVar); dir != "" {
		return dir, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, domain.DefaultDataDirName), nil
}

// Present reports whether every corpus the step names is already unpacked
// (or at least downloaded) under the data directory. Corpora without known
// marker paths are reported as absent so they are always fetched.
func (f *Fetcher) Present(step *domain.Step) (bool, error) {
	dataDir, err := DataDir(step)
	if err != nil {
		return false, err
	}

	for _, name := range step.Corpora {
		markers := domain.LookupCorpus(name.String()).MarkerPaths()
		if len(markers) == 0 {
			return false, nil
		}

		present, err := f.verifier.VerifyPresence(dataDir, markers)
		if err != nil {
			return false, err
		}
		if !present {
			return false, nil
		}
	}

	return true, nil
}

// Fetch downloads the step's corpora by running a short inline instruction
// with the interpreter. The downloader reports failures through its return
// value rather than the process exit code, so the instruction turns the
// result into one.
func (f *Fetcher) Fetch(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error {
	if len(step.Corpora) == 0 {
		return nil
	}

	interp, err := f.runtime.Locate(ctx, step.Interpreter.String())
	if err != nil {
		return err
	}

	if vtx, ok := ports.VertexFromContext(ctx); ok {
		for _, name := range step.Corpora {
			vtx.Log(domain.LogLevelInfo, fmt.Sprintf("fetching corpus %s", name.String()))
		}
	}

	cmd := &domain.Step{
		Name:        step.Name,
		Kind:        domain.KindRun,
		Command:     []string{interp.Path.String(), "-c", downloadInstruction(step.Corpora)},
		Environment: step.Environment,
		WorkingDir:  step.WorkingDir,
	}

	if err := f.executor.Execute(ctx, cmd, stdout, stderr); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCorpusFetchFailed.Error()), "corpora", joinNames(step.Corpora))
	}
	return nil
}

func downloadInstruction(corpora []domain.InternedString) string {
	names := make([]string, len(corpora))
	for i, c := range corpora {
		names[i] = fmt.Sprintf("%q", c.String())
	}

	return fmt.Sprintf(
		"import sys, nltk; ok = all(nltk.download(c, quiet=True) for c in [%s]); sys.exit(0 if ok else 1)",
		strings.Join(names, ", "),
	)
}

func joinNames(corpora []domain.InternedString) string {
	names := make([]string, len(corpora))
	for i, c := range corpora {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
