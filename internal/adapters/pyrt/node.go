package pyrt

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID identifies the runtime locator in the dependency graph.
const NodeID graft.ID = "adapter.runtime"

func init() {
	graft.Register(graft.Node[ports.RuntimeLocator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RuntimeLocator, error) {
			return NewLocator(), nil
		},
	})
}
