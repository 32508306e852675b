package ports

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
)

// RuntimeLocator discovers the interpreter that runs installer and toolkit
// commands.
//
//go:generate mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type RuntimeLocator interface {
	// Locate resolves an interpreter binary and probes its version.
	//
	// An explicit path or binary name takes precedence. When explicit is
	// empty, implementations fall back to environment overrides and PATH
	// discovery. Results are cached for the lifetime of the process.
	Locate(ctx context.Context, explicit string) (domain.Interpreter, error)
}
