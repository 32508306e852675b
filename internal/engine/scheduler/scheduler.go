// Package scheduler implements the step execution scheduler.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// StepStatus represents the status of a step.
type StepStatus string

const (
	// StatusPending indicates the step is waiting to be executed.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusCompleted indicates the step has finished successfully.
	StatusCompleted StepStatus = "Completed"
	// StatusFailed indicates the step execution failed.
	StatusFailed StepStatus = "Failed"
	// StatusCached indicates the step was skipped because its work was already done.
	StatusCached StepStatus = "Cached"
)

// Scheduler executes the steps of a provisioning plan in dependency order.
type Scheduler struct {
	executor  ports.Executor
	installer ports.Installer
	fetcher   ports.CorpusFetcher
	runtime   ports.RuntimeLocator
	hasher    ports.Hasher
	store     ports.ReceiptStore

	mu         sync.RWMutex
	stepStatus map[domain.InternedString]StepStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	executor ports.Executor,
	installer ports.Installer,
	fetcher ports.CorpusFetcher,
	runtime ports.RuntimeLocator,
	hasher ports.Hasher,
	store ports.ReceiptStore,
) *Scheduler {
	return &Scheduler{
		executor:   executor,
		installer:  installer,
		fetcher:    fetcher,
		runtime:    runtime,
		hasher:     hasher,
		store:      store,
		stepStatus: make(map[domain.InternedString]StepStatus),
	}
}

// RunConfig controls a single plan execution.
type RunConfig struct {
	// Parallelism caps the number of steps executing at once. Values below
	// one are treated as one, which is the canonical sequential mode.
	Parallelism int
	// NoCache bypasses receipts and presence checks, forcing every step to
	// execute.
	NoCache bool
	// Root is the workspace directory input hashes are resolved against.
	Root string
}

// Run executes the plan's steps with the given configuration.
//
// Steps become eligible once all the steps they need have completed. A
// failing step poisons its dependents: they are never started, and Run
// returns the joined errors of everything that failed.
func (s *Scheduler) Run(
	ctx context.Context,
	plan *domain.Plan,
	telemetry ports.Telemetry,
	cfg RunConfig,
) error {
	// Explicitly validate the plan to ensure executionOrder is populated
	if err := plan.Validate(); err != nil {
		return err
	}

	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}

	s.initStepStatuses(plan)

	state := s.newRunState(ctx, plan, telemetry, cfg)
	return state.runExecutionLoop()
}

// initStepStatuses initializes all steps in the plan to Pending.
func (s *Scheduler) initStepStatuses(plan *domain.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for step := range plan.Walk() {
		s.stepStatus[step.Name] = StatusPending
	}
}

// updateStatus updates the status of a step.
func (s *Scheduler) updateStatus(name domain.InternedString, status StepStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepStatus[name] = status
}

// getStatus retrieves the status of a step.
func (s *Scheduler) getStatus(name domain.InternedString) StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepStatus[name]
}

type result struct {
	step domain.InternedString
	err  error
}

type schedulerRunState struct {
	plan      *domain.Plan
	telemetry ports.Telemetry
	inDegree  map[domain.InternedString]int
	steps     map[domain.InternedString]domain.Step
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	errs      error
	ctx       context.Context
	cfg       RunConfig
	s         *Scheduler
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	plan *domain.Plan,
	telemetry ports.Telemetry,
	cfg RunConfig,
) *schedulerRunState {
	stepCount := plan.StepCount()
	inDegree := make(map[domain.InternedString]int, stepCount)
	steps := make(map[domain.InternedString]domain.Step, stepCount)

	// Roots are queued in the plan's walk order so that announcement order
	// is stable between runs.
	var ready []domain.InternedString
	for step := range plan.Walk() {
		steps[step.Name] = step
		inDegree[step.Name] = len(step.Needs)
		if len(step.Needs) == 0 {
			ready = append(ready, step.Name)
		}
	}

	return &schedulerRunState{
		plan:      plan,
		telemetry: telemetry,
		inDegree:  inDegree,
		steps:     steps,
		ready:     ready,
		resultsCh: make(chan result, cfg.Parallelism),
		ctx:       ctx,
		cfg:       cfg,
		s:         s,
	}
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.cfg.Parallelism && state.ctx.Err() == nil {
		stepName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(stepName, StatusRunning)

		go func(st domain.Step) {
			state.resultsCh <- result{step: st.Name, err: state.executeStep(&st)}
		}(state.steps[stepName])
	}
}

// executeStep runs a single step against its telemetry vertex.
//
// The vertex is recorded before any of the step's work happens, so the
// step announcement always precedes its execution.
func (state *schedulerRunState) executeStep(step *domain.Step) error {
	ctx, vtx := state.telemetry.Record(state.ctx, step.Name.String())

	hash, hit := state.checkCache(ctx, step, vtx)
	if hit {
		state.s.updateStatus(step.Name, StatusCached)
		vtx.Cached()
		return nil
	}

	if err := state.execute(ctx, step, vtx); err != nil {
		vtx.Complete(err)
		return err
	}

	state.recordReceipt(step, hash, vtx)
	vtx.Complete(nil)
	return nil
}

// checkCache decides whether the step's work is already done. It returns
// the step's input hash (when one was computed) and whether to skip.
func (state *schedulerRunState) checkCache(ctx context.Context, step *domain.Step, vtx ports.Vertex) (string, bool) {
	// Corpus steps are short-circuited by what is actually on disk, not by
	// receipts: assets removed out-of-band must be fetched again.
	if step.Kind == domain.KindFetchCorpora {
		if state.cfg.NoCache {
			return "", false
		}
		present, err := state.s.fetcher.Present(step)
		return "", err == nil && present
	}

	if !step.Cacheable() {
		return "", false
	}

	hash, err := state.computeStepHash(ctx, step)
	if err != nil {
		// A hash failure is a cache miss, not a step failure. The step runs
		// and surfaces its own error if something is genuinely wrong.
		vtx.Log(domain.LogLevelWarn, "input hashing failed, step will run: "+err.Error())
		return "", false
	}

	// The hash is still computed in no-cache mode so the receipt written
	// after execution stays fresh.
	if state.cfg.NoCache {
		return hash, false
	}

	receipt, err := state.s.store.Get(step.Name.String())
	if err == nil && receipt != nil && receipt.InputHash == hash {
		return hash, true
	}
	return hash, false
}

// computeStepHash computes the receipt hash for a step. Installer steps are
// salted with the interpreter version so a runtime swap invalidates them.
func (state *schedulerRunState) computeStepHash(ctx context.Context, step *domain.Step) (string, error) {
	var salt string
	if step.Kind == domain.KindInstallPackages {
		interp, err := state.s.runtime.Locate(ctx, step.Interpreter.String())
		if err != nil {
			return "", err
		}
		salt = interp.Version.String()
	}

	return state.s.hasher.ComputeStepHash(step, salt, state.cfg.Root)
}

func (state *schedulerRunState) execute(ctx context.Context, step *domain.Step, vtx ports.Vertex) error {
	switch step.Kind {
	case domain.KindUpgradeInstaller:
		return state.s.installer.SelfUpgrade(ctx, step, vtx.Stdout(), vtx.Stderr())
	case domain.KindInstallPackages:
		return state.s.installer.Install(ctx, step, vtx.Stdout(), vtx.Stderr())
	case domain.KindFetchCorpora:
		return state.s.fetcher.Fetch(ctx, step, vtx.Stdout(), vtx.Stderr())
	default:
		return state.s.executor.Execute(ctx, step, vtx.Stdout(), vtx.Stderr())
	}
}

// recordReceipt stores the receipt of a successful step. A failure to write
// the receipt does not fail the run; the step re-executes next time.
func (state *schedulerRunState) recordReceipt(step *domain.Step, hash string, vtx ports.Vertex) {
	receipt := domain.Receipt{
		StepName:  step.Name.String(),
		InputHash: hash,
		Timestamp: time.Now(),
	}
	if err := state.s.store.Put(receipt); err != nil {
		vtx.Log(domain.LogLevelWarn, "failed to record receipt: "+err.Error())
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		enhancedErr := zerr.With(zerr.Wrap(res.err, domain.ErrStepExecutionFailed.Error()), "step", res.step.String())
		state.errs = errors.Join(state.errs, enhancedErr)
		state.s.updateStatus(res.step, StatusFailed)
		return
	}

	// Cached steps keep their status; everything else completed.
	if state.s.getStatus(res.step) != StatusCached {
		state.s.updateStatus(res.step, StatusCompleted)
	}

	for _, dep := range state.plan.Dependents(res.step) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
