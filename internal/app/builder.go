package app

import (
	"go.trai.ch/rig/internal/adapters/config"
	"go.trai.ch/rig/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger

	// ConfigLoader is exposed concretely so the CLI layer can point it at
	// the plan file named by the --config flag.
	ConfigLoader *config.Loader
}
