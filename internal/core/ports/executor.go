// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/rig/internal/core/domain"
)

// Executor defines the interface for executing run steps.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the step's command.
	//
	// Subprocess output is streamed to stdout and stderr, which are
	// typically the writers of the step's telemetry vertex.
	//
	// It returns an error carrying the subprocess exit code in its
	// metadata if the command fails.
	Execute(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error
}
