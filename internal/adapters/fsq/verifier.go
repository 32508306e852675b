package fsq

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Verifier checks for the presence of files under a root directory.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyPresence reports whether any of the candidate paths exists under
// root. Candidates are alternate forms of the same asset (an unpacked
// directory or the archive it came from), so one hit is enough.
func (v *Verifier) VerifyPresence(root string, candidates []string) (bool, error) {
	for _, candidate := range candidates {
		path := filepath.Join(root, candidate)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
		}
		return true, nil
	}
	return false, nil
}
