package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestExitStatus(t *testing.T) {
	withCode := zerr.With(zerr.New("command failed"), domain.ExitCodeKey, 3)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"exit code attached", withCode, 3},
		{"exit code in wrapped chain", zerr.Wrap(withCode, "step execution failed"), 3},
		{"exit code behind joined errors", errors.Join(zerr.Wrap(withCode, "step execution failed")), 3},
		{"signal termination maps to 1", zerr.With(zerr.New("killed"), domain.ExitCodeKey, -1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExitStatus(tt.err))
		})
	}
}
