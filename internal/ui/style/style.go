// Package style provides icons and terminal color helpers for rig's console
// output.
package style

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)

// ColorProfile returns the color profile for linear output. NO_COLOR forces
// plain text; otherwise ANSI is used for broad terminal and CI compatibility.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// NewOutput creates a termenv.Output over w using rig's color profile.
func NewOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(ColorProfile()))
}
