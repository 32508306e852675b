package ports

import "go.trai.ch/rig/internal/core/domain"

// Hasher defines the interface for computing receipt hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeStepHash computes the receipt hash of a step: its definition,
	// the given salt (typically the interpreter version) and the content of
	// its input files resolved relative to rootDir.
	ComputeStepHash(step *domain.Step, salt string, rootDir string) (string, error)
}
