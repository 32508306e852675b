//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var rigBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "rig-e2e-*")
	if err != nil {
		panic(err)
	}

	rigBinary = filepath.Join(tmpDir, "rig")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", rigBinary, "./cmd/rig")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build rig binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

// stubInterpreter stands in for python3 in the scripts. It answers the
// version probe, accepts the two installer invocations and materializes
// corpus markers the way the real downloader would.
const stubInterpreter = `#!/bin/sh
set -e
data_dir="${NLTK_DATA:-$HOME/nltk_data}"
case "$1" in
--version)
	echo "Python 3.12.4"
	;;
-m)
	if [ "$4" = "-r" ]; then
		cat "$5" >/dev/null
		echo "installed packages from $5"
	else
		echo "installer upgraded"
	fi
	;;
-c)
	mkdir -p "$data_dir/tokenizers/punkt" "$data_dir/corpora/stopwords"
	echo "fetched corpora"
	;;
*)
	echo "unexpected invocation: $*" >&2
	exit 2
	;;
esac
`

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	stubDir := filepath.Join(env.WorkDir, ".stub")
	if err := os.MkdirAll(stubDir, 0o750); err != nil {
		return err
	}
	//nolint:gosec // The interpreter stub must be executable
	if err := os.WriteFile(filepath.Join(stubDir, "python3"), []byte(stubInterpreter), 0o755); err != nil {
		return err
	}

	binDir := filepath.Dir(rigBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+stubDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
