// Package fsq provides file system adapters for hashing step inputs and
// checking corpus assets on disk.
package fsq

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/rig/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root. VCS metadata and rig's own state
// directory are skipped so that receipts never invalidate themselves.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if skipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if matchesAny(d.Name(), ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

func skipDir(name string, ignores []string) bool {
	switch name {
	case ".git", ".jj", domain.StateDirName:
		return true
	}
	return matchesAny(name, ignores)
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
