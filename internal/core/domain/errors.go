package domain

import "go.trai.ch/zerr"

var (
	// ErrStepAlreadyExists is returned when attempting to add a step with a name that already exists.
	ErrStepAlreadyExists = zerr.New("step already exists")

	// ErrMissingStepDependency is returned when a step needs another step that doesn't exist in the plan.
	ErrMissingStepDependency = zerr.New("missing step dependency")

	// ErrCycleDetected is returned when a cycle is detected in the step dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownStepKind is returned when a plan file declares a step kind that doesn't exist.
	ErrUnknownStepKind = zerr.New("unknown step kind")

	// ErrNoStepsDefined is returned when a plan file exists but declares no steps.
	ErrNoStepsDefined = zerr.New("no steps defined")

	// ErrInterpreterNotFound is returned when no usable interpreter binary can be located.
	ErrInterpreterNotFound = zerr.New("interpreter not found")

	// ErrInstallerFailed is returned when the package installer exits with an error.
	ErrInstallerFailed = zerr.New("installer failed")

	// ErrCorpusFetchFailed is returned when the toolkit downloader exits with an error.
	ErrCorpusFetchFailed = zerr.New("corpus fetch failed")

	// ErrStepExecutionFailed is returned when a step execution fails.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrProvisioningFailed is returned when one or more steps fail during a run.
	ErrProvisioningFailed = zerr.New("provisioning failed")
)
