package ports

// Logger is the tool's user-facing logger. Errors render with their
// full cause chain, so callers pass the error itself rather than a
// formatted message.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
