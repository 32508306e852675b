package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/core/domain"
)

func TestInternedString_SharesHandles(t *testing.T) {
	a := domain.NewInternedString("install")
	b := domain.NewInternedString("install")

	assert.Equal(t, a.Value(), b.Value(), "identical strings should intern to the same handle")
	assert.Equal(t, "install", a.String())
}

func TestInternedString_JSONRoundTrip(t *testing.T) {
	original := domain.NewInternedString("install-packages")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"install-packages"`, string(data))

	var decoded domain.InternedString
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.String(), decoded.String())
}

func TestInternedString_JSONInStruct(t *testing.T) {
	// Receipts serialize step names through this path.
	type payload struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(payload{Name: domain.NewInternedString("corpora")})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"corpora"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "corpora", decoded.Name.String())
}

func TestNewInternedStrings(t *testing.T) {
	interned := domain.NewInternedStrings([]string{"upgrade", "install", "corpora"})

	require.Len(t, interned, 3)
	for i, want := range []string{"upgrade", "install", "corpora"} {
		assert.Equal(t, want, interned[i].String())
	}

	assert.Empty(t, domain.NewInternedStrings(nil))

	dup := domain.NewInternedStrings([]string{"step", "step"})
	assert.Equal(t, dup[0].Value(), dup[1].Value(), "identical strings should share a handle")
}
