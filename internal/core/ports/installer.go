package ports

import (
	"context"
	"io"

	"go.trai.ch/rig/internal/core/domain"
)

// Installer manages the workspace package installer and the packages it
// installs.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// SelfUpgrade upgrades the package installer itself to its latest
	// version. Installer output is streamed to stdout and stderr.
	SelfUpgrade(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error

	// Install installs every dependency declared in the step's manifest
	// file. Installer output is streamed to stdout and stderr.
	Install(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error
}
