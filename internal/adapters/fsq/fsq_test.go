package fsq_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/rig/internal/adapters/fsq"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   .rig/receipts.json
	//   ignored/file
	//   src/main.py
	//   requirements.txt
	tmpDir := t.TempDir()

	mustWriteFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	mustWriteFile(t, filepath.Join(tmpDir, ".rig", "receipts.json"), "{}")
	mustWriteFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored content")
	mustWriteFile(t, filepath.Join(tmpDir, "src", "main.py"), "print('hi')")
	mustWriteFile(t, filepath.Join(tmpDir, "requirements.txt"), "nltk==3.9")

	walker := fsq.NewWalker()
	ignores := []string{"ignored"}

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, ignores) {
		rel, err := filepath.Rel(tmpDir, path)
		if err != nil {
			t.Fatal(err)
		}
		files[rel] = true
	}

	if files[filepath.Join(".git", "config")] {
		t.Error("expected .git/config to be skipped")
	}
	if files[filepath.Join(".rig", "receipts.json")] {
		t.Error("expected .rig/receipts.json to be skipped")
	}
	if files[filepath.Join("ignored", "file")] {
		t.Error("expected ignored/file to be skipped")
	}
	if !files[filepath.Join("src", "main.py")] {
		t.Error("expected src/main.py to be found")
	}
	if !files["requirements.txt"] {
		t.Error("expected requirements.txt to be found")
	}
}

func TestWalker_WalkFiles_IgnoredFilePattern(t *testing.T) {
	tmpDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tmpDir, "keep.py"), "keep")
	mustWriteFile(t, filepath.Join(tmpDir, "skip.pyc"), "skip")

	walker := fsq.NewWalker()

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, []string{"*.pyc"}) {
		files[filepath.Base(path)] = true
	}

	if files["skip.pyc"] {
		t.Error("expected skip.pyc to be skipped")
	}
	if !files["keep.py"] {
		t.Error("expected keep.py to be found")
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.txt")
	mustWriteFile(t, path, "hello world")

	hasher := fsq.NewHasher(fsq.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	if err != nil {
		t.Fatalf("ComputeFileHash failed: %v", err)
	}
	if hash1 == 0 {
		t.Error("expected non-zero hash")
	}

	// Verify determinism
	hash2, err := hasher.ComputeFileHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Error("expected deterministic hash")
	}
}
