package fsq_test

import (
	"path/filepath"
	"regexp"
	"testing"

	"go.trai.ch/rig/internal/adapters/fsq"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

func installStep(manifest string) *domain.Step {
	return &domain.Step{
		Name:     domain.NewInternedString("install"),
		Kind:     domain.KindInstallPackages,
		Manifest: domain.NewInternedString(manifest),
	}
}

func TestHasher_ComputeStepHash(t *testing.T) {
	tmpDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tmpDir, "requirements.txt"), "nltk==3.9\n")

	hasher := fsq.NewHasher(fsq.NewWalker())

	hash1, err := hasher.ComputeStepHash(installStep("requirements.txt"), "3.12.4", tmpDir)
	if err != nil {
		t.Fatalf("ComputeStepHash failed: %v", err)
	}

	if matched, _ := regexp.MatchString("^[0-9a-f]{16}$", hash1); !matched {
		t.Errorf("expected 16 hex chars, got %q", hash1)
	}

	// Stable for an unchanged step
	again, err := hasher.ComputeStepHash(installStep("requirements.txt"), "3.12.4", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != again {
		t.Error("expected deterministic hash for unchanged step")
	}

	// 1. Changes with the step definition
	renamed := installStep("requirements.txt")
	renamed.Name = domain.NewInternedString("install-dev")
	hash2, err := hasher.ComputeStepHash(renamed, "3.12.4", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash2 {
		t.Error("expected hash to change when step name changes")
	}

	// 2. Changes with the salt (interpreter version)
	hash3, err := hasher.ComputeStepHash(installStep("requirements.txt"), "3.13.0", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash3 {
		t.Error("expected hash to change when salt changes")
	}

	// 3. Changes with the environment
	withEnv := installStep("requirements.txt")
	withEnv.Environment = map[string]string{"PIP_INDEX_URL": "https://mirror.invalid"}
	hash4, err := hasher.ComputeStepHash(withEnv, "3.12.4", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash4 {
		t.Error("expected hash to change when environment changes")
	}

	// 4. Changes with the manifest content
	mustWriteFile(t, filepath.Join(tmpDir, "requirements.txt"), "nltk==3.9\nrequests==2.32\n")
	hash5, err := hasher.ComputeStepHash(installStep("requirements.txt"), "3.12.4", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash5 {
		t.Error("expected hash to change when manifest content changes")
	}
}

func TestHasher_ComputeStepHash_InputFiles(t *testing.T) {
	tmpDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tmpDir, "data", "a.txt"), "a")
	mustWriteFile(t, filepath.Join(tmpDir, "data", "b.txt"), "b")

	hasher := fsq.NewHasher(fsq.NewWalker())

	step := &domain.Step{
		Name:   domain.NewInternedString("prep"),
		Kind:   domain.KindRun,
		Inputs: []domain.InternedString{domain.NewInternedString("data")},
	}

	hash1, err := hasher.ComputeStepHash(step, "", tmpDir)
	if err != nil {
		t.Fatalf("ComputeStepHash failed: %v", err)
	}

	mustWriteFile(t, filepath.Join(tmpDir, "data", "b.txt"), "changed")
	hash2, err := hasher.ComputeStepHash(step, "", tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash2 {
		t.Error("expected hash to change when a file under an input directory changes")
	}
}

func TestHasher_ComputeStepHash_GlobInput(t *testing.T) {
	tmpDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tmpDir, "one.cfg"), "1")
	mustWriteFile(t, filepath.Join(tmpDir, "two.cfg"), "2")

	hasher := fsq.NewHasher(fsq.NewWalker())

	step := &domain.Step{
		Name:   domain.NewInternedString("cfg"),
		Kind:   domain.KindRun,
		Inputs: []domain.InternedString{domain.NewInternedString("*.cfg")},
	}

	if _, err := hasher.ComputeStepHash(step, "", tmpDir); err != nil {
		t.Fatalf("ComputeStepHash failed for glob input: %v", err)
	}
}

func TestHasher_ComputeStepHash_MissingManifest(t *testing.T) {
	tmpDir := t.TempDir()

	hasher := fsq.NewHasher(fsq.NewWalker())

	_, err := hasher.ComputeStepHash(installStep("requirements.txt"), "3.12.4", tmpDir)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T: %v", err, err)
	}
	if path, ok := zErr.Metadata()["path"].(string); !ok || path == "" {
		t.Errorf("expected path metadata, got %v", zErr.Metadata()["path"])
	}
}
