package config_test

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/config"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// TestLoad_Workspace_Interpreter tests that the workspace interpreter is
// denormalized onto every step.
func TestLoad_Workspace_Interpreter(t *testing.T) {
	content := `
version: "1"
workspace:
  interpreter: /opt/py/bin/python3
steps:
  upgrade:
    kind: upgrade-installer
  install:
    kind: install-packages
    needs: [upgrade]
`
	tmpDir := writePlanFile(t, content)

	loader := &config.Loader{}
	p, err := loader.Load(tmpDir)
	require.NoError(t, err)

	require.NoError(t, p.Validate())
	for step := range p.Walk() {
		assert.Equal(t, "/opt/py/bin/python3", step.Interpreter.String(),
			"step %s should carry the workspace interpreter", step.Name.String())
	}
}

// TestLoad_Workspace_DataDir tests that the workspace data directory is
// injected into the environment of corpus fetch steps, with ~ expanded.
func TestLoad_Workspace_DataDir(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	fakeHome := t.TempDir()
	t.Setenv("HOME", fakeHome)

	content := `
version: "1"
workspace:
  dataDir: ~/toolkit_data
steps:
  corpora:
    kind: fetch-corpora
    corpora: [punkt]
  smoke:
    cmd: ["echo", "ok"]
`
	tmpDir := writePlanFile(t, content)

	loader := &config.Loader{}
	p, err := loader.Load(tmpDir)
	require.NoError(t, err)

	corpora, ok := p.Step(domain.NewInternedString("corpora"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join(fakeHome, "toolkit_data"), corpora.Environment[domain.DataDirEnvVar])

	// Only fetch steps get the data directory injected.
	smoke, ok := p.Step(domain.NewInternedString("smoke"))
	require.True(t, ok)
	_, injected := smoke.Environment[domain.DataDirEnvVar]
	assert.False(t, injected, "run steps should not inherit the data directory")
}

// TestLoad_Workspace_DataDirOverride tests that a step-level environment
// entry wins over the workspace data directory.
func TestLoad_Workspace_DataDirOverride(t *testing.T) {
	content := `
version: "1"
workspace:
  dataDir: /srv/shared/toolkit_data
steps:
  corpora:
    kind: fetch-corpora
    corpora: [stopwords]
    environment:
      NLTK_DATA: /tmp/pinned
`
	tmpDir := writePlanFile(t, content)

	loader := &config.Loader{}
	p, err := loader.Load(tmpDir)
	require.NoError(t, err)

	corpora, ok := p.Step(domain.NewInternedString("corpora"))
	require.True(t, ok)
	assert.Equal(t, "/tmp/pinned", corpora.Environment[domain.DataDirEnvVar])
}

// TestLoad_UnknownCorpusWarning tests that the loader warns when a fetch step
// names a corpus without known presence markers.
func TestLoad_UnknownCorpusWarning(t *testing.T) {
	content := `
version: "1"
steps:
  corpora:
    kind: fetch-corpora
    corpora: [treebank]
`
	tmpDir := writePlanFile(t, content)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().
		Warn(gomock.Any()).
		Do(func(msg string) {
			assert.Contains(t, msg, "treebank")
			assert.Contains(t, msg, "unknown corpus")
		})

	loader := config.NewLoader(mockLogger)
	_, err := loader.Load(tmpDir)
	require.NoError(t, err)
}
