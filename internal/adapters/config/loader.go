// Package config provides the plan loader for rig.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mitchellh/go-homedir"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the plan file rig looks for in the working directory.
const DefaultFilename = "rig.yaml"

// defaultManifest is assumed for install steps that name no manifest.
const defaultManifest = "requirements.txt"

// Loader implements ports.ConfigLoader using a YAML plan file.
type Loader struct {
	Filename string
	Logger   ports.Logger
}

// NewLoader returns a Loader that reads DefaultFilename.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Filename: DefaultFilename, Logger: log}
}

// Load reads the plan from the given working directory. When no plan file
// exists, the built-in default plan is returned instead of an error.
func (l *Loader) Load(cwd string) (*domain.Plan, error) {
	path := l.Filename
	if path == "" {
		path = DefaultFilename
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			if l.Logger != nil {
				l.Logger.Info(fmt.Sprintf("no %s found, using the built-in plan", filepath.Base(path)))
			}
			return DefaultPlan()
		}
		return nil, zerr.Wrap(err, "failed to read plan file")
	}

	var rigfile Rigfile
	if err := yaml.Unmarshal(data, &rigfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse plan file")
	}

	return l.toPlan(&rigfile)
}

// DefaultPlan returns the plan rig runs when no plan file exists: upgrade the
// installer, install the manifest, then fetch the toolkit corpora.
func DefaultPlan() (*domain.Plan, error) {
	rigfile := &Rigfile{
		Version: "1",
		Steps: map[string]StepDTO{
			"upgrade": {
				Kind: string(domain.KindUpgradeInstaller),
			},
			"install": {
				Kind:     string(domain.KindInstallPackages),
				Manifest: defaultManifest,
				Needs:    []string{"upgrade"},
			},
			"corpora": {
				Kind:    string(domain.KindFetchCorpora),
				Corpora: []string{"punkt", "stopwords"},
				Needs:   []string{"install"},
			},
		},
	}

	l := &Loader{}
	return l.toPlan(rigfile)
}

// toPlan converts the parsed plan file into a validated domain plan.
func (l *Loader) toPlan(rigfile *Rigfile) (*domain.Plan, error) {
	if len(rigfile.Steps) == 0 {
		return nil, zerr.Wrap(domain.ErrNoStepsDefined, "plan file defines no steps")
	}

	dataDir, err := resolveDataDir(rigfile.Workspace.DataDir)
	if err != nil {
		return nil, err
	}

	stepNames := make(map[string]bool)

	// First pass: collect all step names to verify dependencies later
	for name := range rigfile.Steps {
		stepNames[name] = true
	}

	// Second pass: create steps and add to the plan
	p := domain.NewPlan()
	for name, dto := range rigfile.Steps {
		step, err := l.toStep(name, dto, rigfile.Workspace, dataDir, stepNames)
		if err != nil {
			return nil, err
		}
		if err := p.AddStep(step); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (l *Loader) toStep(name string, dto StepDTO, ws WorkspaceDTO, dataDir string, stepNames map[string]bool) (*domain.Step, error) {
	kind := domain.StepKind(dto.Kind)
	if dto.Kind == "" {
		kind = domain.KindRun
	}
	if !kind.Valid() {
		return nil, zerr.With(zerr.With(domain.ErrUnknownStepKind, "step_name", name), "step_kind", dto.Kind)
	}

	cache, err := parseCacheMode(dto.Cache)
	if err != nil {
		return nil, zerr.With(err, "step_name", name)
	}

	// Validate dependencies exist
	for _, dep := range dto.Needs {
		if !stepNames[dep] {
			return nil, zerr.With(zerr.With(domain.ErrMissingStepDependency, "step_name", name), "missing_dependency", dep)
		}
	}

	step := &domain.Step{
		Name:        domain.NewInternedString(name),
		Kind:        kind,
		Command:     dto.Cmd,
		Corpora:     domain.NewInternedStrings(dto.Corpora),
		Inputs:      canonicalizeStrings(dto.Input),
		Needs:       domain.NewInternedStrings(dto.Needs),
		Environment: dto.Environment,
		Cache:       cache,
	}

	if dto.WorkingDir != "" {
		step.WorkingDir = domain.NewInternedString(dto.WorkingDir)
	}

	// Workspace settings are denormalized onto each step so that adapters
	// never need the surrounding plan.
	if ws.Interpreter != "" {
		step.Interpreter = domain.NewInternedString(ws.Interpreter)
	}

	switch kind {
	case domain.KindInstallPackages:
		manifest := dto.Manifest
		if manifest == "" {
			manifest = defaultManifest
		}
		step.Manifest = domain.NewInternedString(manifest)
	case domain.KindFetchCorpora:
		for _, corpus := range dto.Corpora {
			if domain.LookupCorpus(corpus).Collection.String() == "" && l.Logger != nil {
				l.Logger.Warn(fmt.Sprintf("unknown corpus %q, presence on disk cannot be checked", corpus))
			}
		}
		if dataDir != "" {
			step.Environment = withDataDir(step.Environment, dataDir)
		}
	}

	return step, nil
}

// resolveDataDir expands a leading ~ in the configured corpus data directory.
func resolveDataDir(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to expand data directory")
	}
	return expanded, nil
}

// withDataDir sets the toolkit data directory on the step environment unless
// the step already pins one.
func withDataDir(env map[string]string, dataDir string) map[string]string {
	if _, ok := env[domain.DataDirEnvVar]; ok {
		return env
	}
	merged := make(map[string]string, len(env)+1)
	for k, v := range env {
		merged[k] = v
	}
	merged[domain.DataDirEnvVar] = dataDir
	return merged
}

func parseCacheMode(s string) (domain.CacheMode, error) {
	switch s {
	case "":
		return domain.CacheDefault, nil
	case "always":
		return domain.CacheAlways, nil
	case "never":
		return domain.CacheNever, nil
	default:
		return domain.CacheDefault, zerr.With(zerr.New("invalid cache mode, expected 'always' or 'never'"), "cache_mode", s)
	}
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	// Sort strings
	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	// Deduplicate and intern
	unique := slices.Compact(sorted)
	return domain.NewInternedStrings(unique)
}
