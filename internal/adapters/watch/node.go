package watch

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the file watcher node.
	NodeID graft.ID = "adapter.watcher"
)

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher()
		},
	})
}

// DefaultDebounceWindow is the time window for coalescing file events before
// a plan re-run.
const DefaultDebounceWindow = 500 * time.Millisecond
