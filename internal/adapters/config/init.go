package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Starter is the plan file written by `rig init`. It spells out the built-in
// default plan so it can be edited.
const Starter = `version: "1"

# workspace:
#   interpreter: /usr/bin/python3
#   dataDir: ~/nltk_data

steps:
  upgrade:
    kind: upgrade-installer

  install:
    kind: install-packages
    manifest: requirements.txt
    needs: [upgrade]

  corpora:
    kind: fetch-corpora
    corpora: [punkt, stopwords]
    needs: [install]
`

// WriteStarter writes the starter plan file into the given directory. It
// refuses to overwrite an existing plan file.
func WriteStarter(cwd string) (string, error) {
	path := filepath.Join(cwd, DefaultFilename)
	if _, err := os.Stat(path); err == nil {
		return "", zerr.With(zerr.New("plan file already exists"), "path", path)
	}
	if err := os.WriteFile(path, []byte(Starter), 0o600); err != nil {
		return "", zerr.Wrap(err, "failed to write plan file")
	}
	return path, nil
}
