package ports

import (
	"context"
	"iter"
)

// Watcher watches a workspace tree for changes to provisioning inputs.
//
// Watch mode re-runs the plan when a watched file changes, so
// implementations must skip directories the run itself writes to (the
// state directory, the corpus data directory) to avoid feedback loops.
type Watcher interface {
	// Start begins watching root and its subdirectories.
	Start(ctx context.Context, root string) error

	// Stop releases watch resources. Pending events are discarded.
	Stop() error

	// Events returns the stream of file system events. The sequence ends
	// when the watcher stops or its context is canceled.
	Events() iter.Seq[WatchEvent]
}

// WatchEvent is a single file system change seen by a Watcher.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Operation is the kind of change.
	Operation WatchOp
}

// WatchOp is the kind of file system change carried by a WatchEvent.
type WatchOp uint8

const (
	// OpCreate marks a created file or directory.
	OpCreate WatchOp = iota
	// OpWrite marks a modified file.
	OpWrite
	// OpRemove marks a removed file or directory.
	OpRemove
	// OpRename marks a renamed file or directory.
	OpRename
)
