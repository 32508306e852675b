// Package app implements the application layer for rig.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/rig/internal/adapters/config"
	"go.trai.ch/rig/internal/adapters/telemetry/console"
	"go.trai.ch/rig/internal/adapters/telemetry/progrock"
	"go.trai.ch/rig/internal/adapters/watch"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	store        ports.ReceiptStore
	watcher      ports.Watcher
	logger       ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	store ports.ReceiptStore,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		store:        store,
		watcher:      watcher,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects the output streams of the App.
// This is primarily used for testing to capture output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Jobs    int
	NoCache bool
	Quiet   bool
	Watch   bool
}

// Run executes the provisioning plan in the working directory.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Watch {
		return a.runWatch(ctx, opts)
	}
	return a.runOnce(ctx, opts)
}

func (a *App) runOnce(ctx context.Context, opts RunOptions) error {
	// 1. Load the plan
	plan, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}

	// 2. Initialize telemetry
	// Step announcements and results go to stderr, streamed subprocess
	// output goes to stdout.
	sink := console.NewWriter(a.stdout, a.stderr, console.Options{Quiet: opts.Quiet})
	recorder := progrock.NewRecorder(sink)
	defer func() {
		_ = recorder.Close()
	}()

	// 3. Run the scheduler
	err = a.scheduler.Run(ctx, plan, recorder, scheduler.RunConfig{
		Parallelism: opts.Jobs,
		NoCache:     opts.NoCache,
	})
	if err != nil {
		return errors.Join(domain.ErrProvisioningFailed, err)
	}

	fmt.Fprintln(a.stdout, "Workspace ready.")
	return nil
}

// runWatch executes the plan, then re-executes it whenever workspace files
// change. It blocks until the context is canceled.
func (a *App) runWatch(ctx context.Context, opts RunOptions) error {
	// The initial run happens immediately. A failed run does not end watch
	// mode; the next change retries it.
	if err := a.runOnce(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := a.watcher.Start(ctx, "."); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info("watching for changes")

	// Re-run triggers are buffered so changes arriving mid-run collapse
	// into a single pending run instead of queueing up.
	triggers := make(chan []string, 1)
	debouncer := watch.NewDebouncer(watch.DefaultDebounceWindow, func(paths []string) {
		select {
		case triggers <- paths:
		default:
		}
	})

	// Collector Routine: feeds file events into the debouncer.
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Runner Routine: re-runs the plan for each debounced batch of changes.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-triggers:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, re-running plan", len(paths)))
				if err := a.runOnce(ctx, opts); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	// Shutdown Routine: stopping the watcher ends the collector's event
	// stream.
	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	return g.Wait()
}

// Plan resolves the provisioning plan and prints its execution order
// without executing anything.
func (a *App) Plan(_ context.Context) error {
	plan, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}

	if err := plan.Validate(); err != nil {
		return zerr.Wrap(err, "invalid plan")
	}

	i := 0
	for step := range plan.Walk() {
		i++
		line := fmt.Sprintf("%d. %s (%s)", i, step.Name.String(), step.Kind)
		if len(step.Needs) > 0 {
			needs := make([]string, len(step.Needs))
			for j, need := range step.Needs {
				needs[j] = need.String()
			}
			line += " needs: " + strings.Join(needs, ", ")
		}
		fmt.Fprintln(a.stdout, line)
	}

	return nil
}

// Clean removes the recorded receipts so that the next run re-provisions
// every step.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("clearing receipts...")
	if err := a.store.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear receipts")
	}
	a.logger.Info("receipts cleared")
	return nil
}

// Init writes a starter plan file into the working directory. It fails if
// a plan file already exists.
func (a *App) Init(_ context.Context) error {
	path, err := config.WriteStarter(".")
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", path)
	return nil
}
