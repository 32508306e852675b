package ports

import (
	"context"
	"io"

	"go.trai.ch/rig/internal/core/domain"
)

// CorpusFetcher downloads toolkit data assets into the local data directory.
//
//go:generate mockgen -source=corpus_fetcher.go -destination=mocks/mock_corpus_fetcher.go -package=mocks
type CorpusFetcher interface {
	// Present reports whether every corpus requested by the step is already
	// materialized in the data directory. Corpora without known marker
	// paths are reported as absent.
	Present(step *domain.Step) (bool, error)

	// Fetch invokes the toolkit downloader for the step's corpora.
	// Downloader output is streamed to stdout and stderr.
	Fetch(ctx context.Context, step *domain.Step, stdout, stderr io.Writer) error
}
