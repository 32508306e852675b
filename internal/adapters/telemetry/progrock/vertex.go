package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex wraps a *progrock.VertexRecorder as a ports.Vertex.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns the writer for the step's standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the writer for the step's error output stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a diagnostic message on the vertex. Warnings and errors go
// to the vertex error stream, everything below to the output stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	out := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		out = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(out, "[%s] %s\n", level, msg)
}

// Complete marks the vertex as finished, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
