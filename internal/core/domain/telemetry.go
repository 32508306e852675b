package domain

// VertexStatus is the lifecycle state of one recorded unit of work in a
// provisioning run. The console sink tracks one status per step vertex.
type VertexStatus string

const (
	// VertexStatusPending means the vertex is announced but not yet started.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusRunning means the vertex is executing.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted means the vertex finished successfully.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed means the vertex finished with an error.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached means the vertex was satisfied by a prior run.
	VertexStatusCached VertexStatus = "cached"
)

// IsTerminal reports whether the status is final. A terminal vertex
// receives no further transitions.
func (s VertexStatus) IsTerminal() bool {
	switch s {
	case VertexStatusCompleted, VertexStatusFailed, VertexStatusCached:
		return true
	default:
		return false
	}
}

// LogLevel is the severity of a vertex log message. The values mirror the
// standard slog levels.
type LogLevel int

const (
	// LogLevelDebug is debug verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError is error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the level's log prefix.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
