package app_test

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/config"
	"go.trai.ch/rig/internal/app"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/rig/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// testApp bundles the mocked dependencies behind a fully wired App.
type testApp struct {
	loader    *mocks.MockConfigLoader
	executor  *mocks.MockExecutor
	installer *mocks.MockInstaller
	fetcher   *mocks.MockCorpusFetcher
	runtime   *mocks.MockRuntimeLocator
	hasher    *mocks.MockHasher
	store     *mocks.MockReceiptStore
	logger    *mocks.MockLogger
	watcher   *fakeWatcher

	app    *app.App
	stdout *syncBuffer
	stderr *syncBuffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ta := &testApp{
		loader:    mocks.NewMockConfigLoader(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		installer: mocks.NewMockInstaller(ctrl),
		fetcher:   mocks.NewMockCorpusFetcher(ctrl),
		runtime:   mocks.NewMockRuntimeLocator(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockReceiptStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		watcher:   newFakeWatcher(),
		stdout:    &syncBuffer{},
		stderr:    &syncBuffer{},
	}

	sched := scheduler.NewScheduler(
		ta.executor,
		ta.installer,
		ta.fetcher,
		ta.runtime,
		ta.hasher,
		ta.store,
	)
	ta.app = app.New(ta.loader, sched, ta.store, ta.watcher, ta.logger).
		WithOutput(ta.stdout, ta.stderr)

	return ta
}

func singleStepPlan(t *testing.T, step *domain.Step) *domain.Plan {
	t.Helper()

	plan := domain.NewPlan()
	require.NoError(t, plan.AddStep(step))
	return plan
}

func runStep(name string) *domain.Step {
	return &domain.Step{
		Name:    domain.NewInternedString(name),
		Kind:    domain.KindRun,
		Command: []string{"echo", "hello"},
	}
}

func TestApp_Run_Success(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ta := newTestApp(t)
	plan := singleStepPlan(t, runStep("greet"))

	ta.loader.EXPECT().Load(".").Return(plan, nil)
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Step, stdout, _ io.Writer) error {
			_, _ = stdout.Write([]byte("hello\n"))
			return nil
		})
	ta.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := ta.app.Run(context.Background(), app.RunOptions{})

	require.NoError(t, err)
	assert.Contains(t, ta.stderr.String(), "[greet] Starting...")
	assert.Contains(t, ta.stderr.String(), "✓ Completed in")

	// Streamed output precedes the final confirmation.
	stdout := ta.stdout.String()
	logIdx := strings.Index(stdout, "[greet] hello")
	doneIdx := strings.Index(stdout, "Workspace ready.")
	require.NotEqual(t, -1, logIdx)
	require.NotEqual(t, -1, doneIdx)
	assert.Less(t, logIdx, doneIdx)
}

func TestApp_Run_DefaultSequence(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ta := newTestApp(t)
	plan, err := config.DefaultPlan()
	require.NoError(t, err)

	interp := domain.Interpreter{
		Path:    domain.NewInternedString("/usr/bin/python3"),
		Version: domain.NewInternedString("Python 3.12.4"),
	}

	ta.loader.EXPECT().Load(".").Return(plan, nil)
	ta.installer.EXPECT().SelfUpgrade(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ta.runtime.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(interp, nil)
	ta.hasher.EXPECT().ComputeStepHash(gomock.Any(), "Python 3.12.4", ".").Return("manifest-hash", nil)
	ta.store.EXPECT().Get("install").Return(nil, nil)
	ta.installer.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ta.fetcher.EXPECT().Present(gomock.Any()).Return(false, nil)
	ta.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ta.store.EXPECT().Put(gomock.Any()).Return(nil).Times(3)

	err = ta.app.Run(context.Background(), app.RunOptions{})

	require.NoError(t, err)

	// The canonical sequence announces in order.
	stderr := ta.stderr.String()
	upgradeIdx := strings.Index(stderr, "[upgrade] Starting...")
	installIdx := strings.Index(stderr, "[install] Starting...")
	corporaIdx := strings.Index(stderr, "[corpora] Starting...")
	require.NotEqual(t, -1, upgradeIdx)
	require.NotEqual(t, -1, installIdx)
	require.NotEqual(t, -1, corporaIdx)
	assert.Less(t, upgradeIdx, installIdx)
	assert.Less(t, installIdx, corporaIdx)

	assert.True(t, strings.HasSuffix(ta.stdout.String(), "Workspace ready.\n"))
}

func TestApp_Run_LoadError(t *testing.T) {
	ta := newTestApp(t)

	ta.loader.EXPECT().Load(".").Return(nil, zerr.New("mangled plan file"))

	err := ta.app.Run(context.Background(), app.RunOptions{})

	require.Error(t, err)
	require.ErrorContains(t, err, "failed to load plan")
}

func TestApp_Run_StepFailure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ta := newTestApp(t)
	plan := singleStepPlan(t, runStep("greet"))

	ta.loader.EXPECT().Load(".").Return(plan, nil)
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.New("command failed"))

	err := ta.app.Run(context.Background(), app.RunOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvisioningFailed)
	assert.Contains(t, ta.stderr.String(), "✗ Failed after")
	assert.Contains(t, ta.stderr.String(), "command failed")

	// No partial-success reporting.
	assert.NotContains(t, ta.stdout.String(), "Workspace ready.")
}

func TestApp_Run_CachedStep(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ta := newTestApp(t)
	step := runStep("greet")
	step.Inputs = domain.NewInternedStrings([]string{"data.txt"})
	plan := singleStepPlan(t, step)

	ta.loader.EXPECT().Load(".").Return(plan, nil)
	ta.hasher.EXPECT().ComputeStepHash(gomock.Any(), "", ".").Return("hash123", nil)
	ta.store.EXPECT().Get("greet").Return(&domain.Receipt{
		StepName:  "greet",
		InputHash: "hash123",
	}, nil)

	err := ta.app.Run(context.Background(), app.RunOptions{})

	require.NoError(t, err)
	assert.Contains(t, ta.stderr.String(), "[greet] ~ Cached")
	assert.Contains(t, ta.stdout.String(), "Workspace ready.")
}

func TestApp_Run_NoCache(t *testing.T) {
	ta := newTestApp(t)
	step := runStep("greet")
	step.Inputs = domain.NewInternedStrings([]string{"data.txt"})
	plan := singleStepPlan(t, step)

	ta.loader.EXPECT().Load(".").Return(plan, nil)
	ta.hasher.EXPECT().ComputeStepHash(gomock.Any(), "", ".").Return("hash123", nil)
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	// The receipt is still recorded so the next cached run stays fresh.
	ta.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(receipt domain.Receipt) error {
		assert.Equal(t, "greet", receipt.StepName)
		assert.Equal(t, "hash123", receipt.InputHash)
		return nil
	})

	err := ta.app.Run(context.Background(), app.RunOptions{NoCache: true})

	require.NoError(t, err)
}

func TestApp_Plan(t *testing.T) {
	ta := newTestApp(t)
	plan, err := config.DefaultPlan()
	require.NoError(t, err)

	ta.loader.EXPECT().Load(".").Return(plan, nil)

	require.NoError(t, ta.app.Plan(context.Background()))

	want := "1. upgrade (upgrade-installer)\n" +
		"2. install (install-packages) needs: upgrade\n" +
		"3. corpora (fetch-corpora) needs: install\n"
	assert.Equal(t, want, ta.stdout.String())
}

func TestApp_Plan_LoadError(t *testing.T) {
	ta := newTestApp(t)

	ta.loader.EXPECT().Load(".").Return(nil, zerr.New("mangled plan file"))

	err := ta.app.Plan(context.Background())

	require.Error(t, err)
	require.ErrorContains(t, err, "failed to load plan")
}

func TestApp_Clean(t *testing.T) {
	ta := newTestApp(t)

	ta.logger.EXPECT().Info("clearing receipts...")
	ta.store.EXPECT().Clear().Return(nil)
	ta.logger.EXPECT().Info("receipts cleared")

	require.NoError(t, ta.app.Clean(context.Background()))
}

func TestApp_Clean_Error(t *testing.T) {
	ta := newTestApp(t)

	ta.logger.EXPECT().Info("clearing receipts...")
	ta.store.EXPECT().Clear().Return(zerr.New("permission denied"))

	err := ta.app.Clean(context.Background())

	require.Error(t, err)
	require.ErrorContains(t, err, "failed to clear receipts")
}

func TestApp_Init(t *testing.T) {
	ta := newTestApp(t)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(cwd)
	}()
	require.NoError(t, os.Chdir(t.TempDir()))

	require.NoError(t, ta.app.Init(context.Background()))
	assert.Equal(t, "Wrote rig.yaml\n", ta.stdout.String())

	data, err := os.ReadFile("rig.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Starter, string(data))

	// A second init must not overwrite the existing plan file.
	err = ta.app.Init(context.Background())
	require.ErrorContains(t, err, "plan file already exists")
}

func TestApp_Run_Watch_RerunsOnChange(t *testing.T) {
	ta := newTestApp(t)
	plan := singleStepPlan(t, runStep("greet"))

	ta.loader.EXPECT().Load(".").Return(plan, nil).Times(2)
	ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).Times(2)
	ta.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ta.app.Run(ctx, app.RunOptions{Watch: true})
	}()

	select {
	case <-ta.watcher.started:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was never started")
	}

	ta.watcher.emit(ports.WatchEvent{Path: "/workspace/requirements.txt", Operation: ports.OpWrite})

	require.Eventually(t, func() bool {
		return strings.Count(ta.stdout.String(), "Workspace ready.") == 2
	}, 3*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch mode did not shut down")
	}
}

func TestApp_Run_Watch_ContinuesAfterFailure(t *testing.T) {
	ta := newTestApp(t)
	plan := singleStepPlan(t, runStep("greet"))

	ta.loader.EXPECT().Load(".").Return(plan, nil).Times(2)
	gomock.InOrder(
		ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(zerr.New("network gone")),
		ta.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil),
	)
	ta.store.EXPECT().Put(gomock.Any()).Return(nil)
	ta.logger.EXPECT().Error(gomock.Any())
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ta.app.Run(ctx, app.RunOptions{Watch: true})
	}()

	select {
	case <-ta.watcher.started:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was never started")
	}

	ta.watcher.emit(ports.WatchEvent{Path: "/workspace/rig.yaml", Operation: ports.OpWrite})

	require.Eventually(t, func() bool {
		return strings.Count(ta.stdout.String(), "Workspace ready.") == 1
	}, 3*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch mode did not shut down")
	}
}

// fakeWatcher is a channel-backed ports.Watcher for exercising watch mode
// without touching the file system.
type fakeWatcher struct {
	mu      sync.Mutex
	events  chan ports.WatchEvent
	started chan struct{}
	stopped bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events:  make(chan ports.WatchEvent, 16),
		started: make(chan struct{}),
	}
}

func (f *fakeWatcher) Start(_ context.Context, _ string) error {
	close(f.started)
	return nil
}

func (f *fakeWatcher) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stopped {
		f.stopped = true
		close(f.events)
	}
	return nil
}

func (f *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range f.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (f *fakeWatcher) emit(event ports.WatchEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stopped {
		f.events <- event
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
