package domain

import "go.trai.ch/zerr"

// ExitCodeKey is the metadata key under which adapters record the exit code
// of a failed subprocess.
const ExitCodeKey = "exit_code"

// ExitStatus returns the process exit status to use for the given error.
// It walks the error chain and returns the first subprocess exit code
// recorded by an adapter, 1 for any other error, and 0 for nil.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCode(err); ok && code > 0 {
		return code
	}
	return 1
}

func exitCode(err error) (int, bool) {
	if z, ok := err.(*zerr.Error); ok {
		if code, ok := z.Metadata()[ExitCodeKey].(int); ok {
			return code, true
		}
	}

	// errors.Unwrap does not descend into joined errors, so handle both
	// unwrap forms explicitly.
	switch unwrapped := err.(type) {
	case interface{ Unwrap() error }:
		if inner := unwrapped.Unwrap(); inner != nil {
			return exitCode(inner)
		}
	case interface{ Unwrap() []error }:
		for _, inner := range unwrapped.Unwrap() {
			if code, ok := exitCode(inner); ok {
				return code, true
			}
		}
	}
	return 0, false
}
