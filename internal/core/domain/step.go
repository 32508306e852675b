package domain

// StepKind identifies the built-in behavior a provisioning step executes.
type StepKind string

const (
	// KindUpgradeInstaller upgrades the package installer itself before any
	// packages are installed.
	KindUpgradeInstaller StepKind = "upgrade-installer"
	// KindInstallPackages installs every dependency named in a manifest file.
	KindInstallPackages StepKind = "install-packages"
	// KindFetchCorpora downloads toolkit data assets via the toolkit's own
	// downloader.
	KindFetchCorpora StepKind = "fetch-corpora"
	// KindRun executes an arbitrary command.
	KindRun StepKind = "run"
)

// Valid reports whether the kind is one of the built-in step kinds.
func (k StepKind) Valid() bool {
	switch k {
	case KindUpgradeInstaller, KindInstallPackages, KindFetchCorpora, KindRun:
		return true
	default:
		return false
	}
}

// CacheMode controls whether a step consults and records receipts.
type CacheMode int

const (
	// CacheDefault applies the kind-specific caching behavior.
	CacheDefault CacheMode = iota
	// CacheAlways forces receipt caching regardless of kind.
	CacheAlways
	// CacheNever disables receipt caching, forcing execution on every run.
	CacheNever
)

// Step represents a unit of provisioning work.
// It uses InternedString for fields that are frequently repeated to save memory.
type Step struct {
	Name        InternedString
	Kind        StepKind
	Command     []string
	Manifest    InternedString
	Corpora     []InternedString
	Inputs      []InternedString
	Needs       []InternedString
	Environment map[string]string
	WorkingDir  InternedString
	Interpreter InternedString
	Cache       CacheMode
}

// Cacheable reports whether the step participates in receipt caching.
//
// Installer upgrades always re-run. Corpus fetches are short-circuited by a
// presence check on disk instead of receipts. Run steps cache only when they
// declare inputs.
func (s *Step) Cacheable() bool {
	switch s.Cache {
	case CacheAlways:
		return true
	case CacheNever:
		return false
	}

	switch s.Kind {
	case KindInstallPackages:
		return true
	case KindRun:
		return len(s.Inputs) > 0
	default:
		return false
	}
}
