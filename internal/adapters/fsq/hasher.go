package fsq

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes receipt hashes for steps and their input files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeStepHash computes a single hash covering the step definition, its
// environment, the given salt (the interpreter version, so a runtime swap
// invalidates receipts) and the content of the manifest and input files.
func (h *Hasher) ComputeStepHash(step *domain.Step, salt string, rootDir string) (string, error) {
	hasher := xxhash.New()

	h.hashStepDefinition(step, hasher)
	h.hashEnvironment(step.Environment, hasher)

	_, _ = hasher.WriteString(salt)
	_, _ = hasher.Write([]byte{0})

	if err := h.hashContent(step, rootDir, hasher); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashStepDefinition hashes every declarative field of the step.
func (h *Hasher) hashStepDefinition(step *domain.Step, hasher *xxhash.Digest) {
	writeSection := func(values ...string) {
		for _, v := range values {
			_, _ = hasher.WriteString(v)
			_, _ = hasher.Write([]byte{0}) // Separator
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	writeSection(step.Name.String(), string(step.Kind))
	writeSection(step.Command...)
	writeSection(step.Manifest.String())

	corpora := make([]string, len(step.Corpora))
	for i, c := range step.Corpora {
		corpora[i] = c.String()
	}
	writeSection(corpora...)

	inputs := make([]string, len(step.Inputs))
	for i, in := range step.Inputs {
		inputs[i] = in.String()
	}
	writeSection(inputs...)

	needs := make([]string, len(step.Needs))
	for i, n := range step.Needs {
		needs[i] = n.String()
	}
	writeSection(needs...)
}

// hashEnvironment hashes environment variables in a deterministic order.
func (h *Hasher) hashEnvironment(env map[string]string, hasher *xxhash.Digest) {
	// Sort keys for determinism
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(env[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashContent hashes the manifest and input files the step depends on.
func (h *Hasher) hashContent(step *domain.Step, root string, hasher *xxhash.Digest) error {
	if step.Manifest.String() != "" {
		if err := h.hashInputPath(filepath.Join(root, step.Manifest.String()), hasher); err != nil {
			return err
		}
	}

	for _, input := range step.Inputs {
		if err := h.hashInputPath(filepath.Join(root, input.String()), hasher); err != nil {
			return err
		}
	}
	return nil
}

// hashInputPath hashes a single input path, attempting glob resolution if
// the path doesn't exist as-is.
func (h *Hasher) hashInputPath(path string, hasher *xxhash.Digest) error {
	_, err := os.Stat(path)
	if err != nil {
		return h.tryGlobAndHash(path, hasher)
	}
	return h.hashPath(path, hasher)
}

// tryGlobAndHash attempts to resolve a path as a glob pattern and hash all matches.
func (h *Hasher) tryGlobAndHash(path string, hasher *xxhash.Digest) error {
	matches, globErr := filepath.Glob(path)
	if globErr == nil && len(matches) > 0 {
		for _, match := range matches {
			if err := h.hashPath(match, hasher); err != nil {
				return err
			}
		}
		return nil
	}
	// If not a glob or no matches, return error as the input is missing
	return zerr.With(zerr.New("input not found"), "path", path)
}

func (h *Hasher) hashPath(path string, mainHasher io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if info.IsDir() {
		for filePath := range h.walker.WalkFiles(path, nil) {
			if err := h.hashFile(filePath, mainHasher); err != nil {
				return err
			}
		}
		return nil
	}
	return h.hashFile(path, mainHasher)
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
