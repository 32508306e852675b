// Package pyrt locates the Python runtime that provisioning steps run with.
package pyrt

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// runtimeEnvVar overrides interpreter discovery without touching the plan.
const runtimeEnvVar = "RIG_PYTHON"

// Locator implements ports.RuntimeLocator by probing interpreter binaries.
type Locator struct {
	mu    sync.Mutex
	cache map[string]domain.Interpreter
}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{
		cache: make(map[string]domain.Interpreter),
	}
}

// Locate finds a usable interpreter and probes its version. The explicit
// path takes precedence, then $RIG_PYTHON, then python3 and python on the
// PATH. Results are cached for the lifetime of the process.
func (l *Locator) Locate(ctx context.Context, explicit string) (domain.Interpreter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if interp, ok := l.cache[explicit]; ok {
		return interp, nil
	}

	interp, err := locate(ctx, explicit)
	if err != nil {
		return domain.Interpreter{}, err
	}

	l.cache[explicit] = interp
	return interp, nil
}

func locate(ctx context.Context, explicit string) (domain.Interpreter, error) {
	candidates := candidatePaths(explicit)

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		path := candidate
		if !filepath.IsAbs(path) {
			resolved, err := exec.LookPath(path)
			if err != nil {
				tried = append(tried, candidate)
				continue
			}
			path = resolved
		}

		interp, err := probe(ctx, path)
		if err != nil {
			tried = append(tried, candidate)
			continue
		}
		return interp, nil
	}

	return domain.Interpreter{}, zerr.With(domain.ErrInterpreterNotFound, "tried", strings.Join(tried, ", "))
}

func candidatePaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	if env := os.Getenv(runtimeEnvVar); env != "" {
		return []string{env}
	}
	return []string{"python3", "python"}
}

// probe runs the interpreter with --version and parses the result. Old
// interpreters print the version to stderr, so both streams are read.
func probe(ctx context.Context, path string) (domain.Interpreter, error) {
	//nolint:gosec // path comes from PATH lookup or user configuration
	cmd := exec.CommandContext(ctx, path, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return domain.Interpreter{}, zerr.With(zerr.Wrap(err, "failed to probe interpreter"), "path", path)
	}

	version := strings.TrimSpace(string(output))
	version = strings.TrimPrefix(version, "Python ")

	return domain.Interpreter{
		Path:    domain.NewInternedString(path),
		Version: domain.NewInternedString(version),
	}, nil
}
