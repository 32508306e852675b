package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/fsq"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/adapters/nltk"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/adapters/pip"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/adapters/pyrt"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/adapters/shell" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/adapters/state" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			pip.NodeID,
			nltk.NodeID,
			pyrt.NodeID,
			fsq.HasherNodeID,
			state.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.CorpusFetcher](ctx)
			if err != nil {
				return nil, err
			}

			runtime, err := graft.Dep[ports.RuntimeLocator](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ReceiptStore](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(
				executor,
				installer,
				fetcher,
				runtime,
				hasher,
				store,
			), nil
		},
	})
}
