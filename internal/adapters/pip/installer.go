// Package pip drives the package installer through the Python runtime.
package pip

import (
	"context"
	"io"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.Installer by invoking `<interpreter> -m pip`.
// Going through the interpreter rather than a `pip` binary guarantees the
// installer and the runtime belong to the same installation.
type Installer struct {
	executor ports.Executor
	runtime  ports.RuntimeLocator
}

// NewInstaller creates a new Installer.
func NewInstaller(executor ports.Executor, runtime ports.RuntimeLocator) *Installer {
	return &Installer{
		executor: executor,
		runtime:  runtime,
	}
}

// SelfUpgrade upgrades the installer itself to the latest release.
func (i *Installer) SelfUpgrade(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error {
	interp, err := i.runtime.Locate(ctx, step.Interpreter.String())
	if err != nil {
		return err
	}

	cmd := derive(step, []string{interp.Path.String(), "-m", "pip", "install", "--upgrade", "pip"})
	if err := i.executor.Execute(ctx, cmd, stdout, stderr); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallerFailed.Error()), "operation", "self-upgrade")
	}
	return nil
}

// Install installs every dependency named in the step's manifest. Missing or
// unreadable manifests surface as the installer's own error output.
func (i *Installer) Install(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error {
	interp, err := i.runtime.Locate(ctx, step.Interpreter.String())
	if err != nil {
		return err
	}

	cmd := derive(step, []string{interp.Path.String(), "-m", "pip", "install", "-r", step.Manifest.String()})
	if err := i.executor.Execute(ctx, cmd, stdout, stderr); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallerFailed.Error()), "manifest", step.Manifest.String())
	}
	return nil
}

// derive builds the step actually handed to the executor, keeping the
// declaring step's name, environment and working directory.
func derive(step *domain.Step, command []string) *domain.Step {
	return &domain.Step{
		Name:        step.Name,
		Kind:        domain.KindRun,
		Command:     command,
		Environment: step.Environment,
		WorkingDir:  step.WorkingDir,
	}
}
