package ports

import "go.trai.ch/rig/internal/core/domain"

// ConfigLoader defines the interface for loading the provisioning plan.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the plan file from the given working directory and returns
	// the provisioning plan. When no plan file exists, implementations
	// return the built-in default plan.
	Load(cwd string) (*domain.Plan, error)
}
