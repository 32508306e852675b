// Package console renders progrock status updates as linear, chronological
// step output suitable for terminals and CI logs.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/ui/style"
)

// Writer implements progrock.Writer. Step status lines go to stderr and
// streamed subprocess output goes to stdout with a step name prefix.
type Writer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	quiet  bool

	mu       sync.Mutex
	order    []string
	vertices map[string]*vertexState // vertex id -> state
}

type vertexState struct {
	name   string
	buf    *bytes.Buffer
	status domain.VertexStatus
}

// Options configure the console writer.
type Options struct {
	// Quiet suppresses streamed subprocess output. Step status lines are
	// still printed.
	Quiet bool
}

// NewWriter creates a console writer over the given streams.
func NewWriter(stdout, stderr io.Writer, opts Options) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Writer{
		stdout:   stdout,
		stderr:   stderr,
		output:   style.NewOutput(stderr),
		quiet:    opts.Quiet,
		vertices: make(map[string]*vertexState),
	}
}

// WriteStatus renders the vertex and log events carried by the update.
func (w *Writer) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		w.applyVertexLocked(v)
	}
	for _, l := range update.Logs {
		w.appendLogLocked(l)
	}

	return nil
}

// Close flushes any buffered partial lines.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, id := range w.order {
		w.flushBufferLocked(w.vertices[id])
	}

	return nil
}

// applyVertexLocked prints the state transitions carried by a vertex update.
// Progrock re-sends the full vertex on every change, so each transition is
// printed exactly once. Must be called with w.mu held.
func (w *Writer) applyVertexLocked(v *progrock.Vertex) {
	state, ok := w.vertices[v.Id]
	if !ok {
		state = &vertexState{name: v.Name, buf: new(bytes.Buffer), status: domain.VertexStatusPending}
		w.vertices[v.Id] = state
		w.order = append(w.order, v.Id)
	}

	if state.status == domain.VertexStatusPending && v.Started != nil {
		state.status = domain.VertexStatusRunning
		prefix := w.output.String(fmt.Sprintf("[%s]", state.name)).Faint().String()
		_, _ = fmt.Fprintf(w.stderr, "%s Starting...\n", prefix)
	}

	if state.status.IsTerminal() {
		return
	}

	switch {
	case v.Cached:
		state.status = domain.VertexStatusCached
		w.flushBufferLocked(state)
		symbol := w.output.String(style.Tilde).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(w.stderr, "[%s] %s Cached\n", state.name, symbol)
	case v.Completed != nil:
		w.flushBufferLocked(state)

		var duration time.Duration
		if v.Started != nil {
			duration = v.Completed.AsTime().Sub(v.Started.AsTime())
		}

		if v.Error != nil {
			state.status = domain.VertexStatusFailed
			symbol := w.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
			_, _ = fmt.Fprintf(w.stderr, "[%s] %s Failed after %v: %s\n",
				state.name, symbol, duration, *v.Error)
		} else {
			state.status = domain.VertexStatusCompleted
			symbol := w.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
			_, _ = fmt.Fprintf(w.stderr, "[%s] %s Completed in %v\n",
				state.name, symbol, duration)
		}
	}
}

// appendLogLocked buffers log data and prints complete lines with the step
// name prefix. Must be called with w.mu held.
func (w *Writer) appendLogLocked(l *progrock.VertexLog) {
	if w.quiet {
		return
	}

	state, ok := w.vertices[l.Vertex]
	if !ok {
		return
	}

	state.buf.Write(l.Data)

	for {
		line, err := state.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				state.buf = newBuf
			}
			break
		}

		w.printLineLocked(state.name, line)
	}
}

// flushBufferLocked prints any buffered partial line for the vertex.
// Must be called with w.mu held.
func (w *Writer) flushBufferLocked(state *vertexState) {
	if state == nil || state.buf.Len() == 0 {
		return
	}

	w.printLineLocked(state.name, state.buf.Bytes())
	state.buf.Reset()
}

// printLineLocked prints a single output line with the step name prefix.
// Must be called with w.mu held.
func (w *Writer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w.stdout, "[%s] %s\n", name, string(line))
}
