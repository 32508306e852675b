package domain

import "path/filepath"

const (
	// DirPerm is the permission mode for directories created by the tool.
	DirPerm = 0o750
	// FilePerm is the permission mode for state files written by the tool.
	FilePerm = 0o600
)

// StateDirName is the workspace-relative directory holding run state.
const StateDirName = ".rig"

// DefaultReceiptPath returns the workspace-relative path of the receipt store.
func DefaultReceiptPath() string {
	return filepath.Join(StateDirName, "receipts.json")
}

// DefaultDataDirName is the directory under the user's home where the toolkit
// keeps downloaded corpora when no override is configured.
const DefaultDataDirName = "nltk_data"

// DataDirEnvVar is the environment variable the toolkit honors for relocating
// its data directory.
const DataDirEnvVar = "NLTK_DATA"
