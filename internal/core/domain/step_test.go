package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rig/internal/core/domain"
)

func TestStepKind_Valid(t *testing.T) {
	for _, kind := range []domain.StepKind{
		domain.KindUpgradeInstaller,
		domain.KindInstallPackages,
		domain.KindFetchCorpora,
		domain.KindRun,
	} {
		assert.True(t, kind.Valid(), "kind %q should be valid", kind)
	}

	assert.False(t, domain.StepKind("compile").Valid())
	assert.False(t, domain.StepKind("").Valid())
}

func TestStep_Cacheable(t *testing.T) {
	tests := []struct {
		name string
		step domain.Step
		want bool
	}{
		{
			name: "upgrade never caches",
			step: domain.Step{Kind: domain.KindUpgradeInstaller},
			want: false,
		},
		{
			name: "install caches by default",
			step: domain.Step{Kind: domain.KindInstallPackages},
			want: true,
		},
		{
			name: "corpora use presence check instead of receipts",
			step: domain.Step{Kind: domain.KindFetchCorpora},
			want: false,
		},
		{
			name: "run without inputs never caches",
			step: domain.Step{Kind: domain.KindRun},
			want: false,
		},
		{
			name: "run with inputs caches",
			step: domain.Step{
				Kind:   domain.KindRun,
				Inputs: []domain.InternedString{domain.NewInternedString("main.py")},
			},
			want: true,
		},
		{
			name: "cache always overrides kind",
			step: domain.Step{Kind: domain.KindUpgradeInstaller, Cache: domain.CacheAlways},
			want: true,
		},
		{
			name: "cache never overrides kind",
			step: domain.Step{Kind: domain.KindInstallPackages, Cache: domain.CacheNever},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.Cacheable())
		})
	}
}
