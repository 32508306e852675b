package nltk

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rig/internal/adapters/fsq"
	"go.trai.ch/rig/internal/adapters/pyrt"
	"go.trai.ch/rig/internal/adapters/shell"
	"go.trai.ch/rig/internal/core/ports"
)

// NodeID identifies the corpus fetcher in the dependency graph.
const NodeID graft.ID = "adapter.corpus_fetcher"

func init() {
	graft.Register(graft.Node[ports.CorpusFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, pyrt.NodeID, fsq.VerifierNodeID},
		Run: func(ctx context.Context) (ports.CorpusFetcher, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			runtime, err := graft.Dep[ports.RuntimeLocator](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(executor, runtime, verifier), nil
		},
	})
}
