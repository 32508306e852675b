package domain

// Interpreter describes a located interpreter binary.
type Interpreter struct {
	// Path is the resolved path to the binary.
	Path InternedString

	// Version is the probed version string (e.g. "Python 3.12.4").
	Version InternedString
}
