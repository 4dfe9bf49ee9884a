package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	registry, err := LoadRegistry()
	require.NoError(t, err)

	assert.Equal(t, 4, registry.Count())
	assert.Equal(t, []string{"corridor", "crypt", "default", "hall"}, registry.Names())

	for _, p := range registry.all {
		assert.Greater(t, p.Size, float32(0), p.Name)
		assert.Greater(t, p.Height, float32(0), p.Name)
	}
}

func TestGetByName(t *testing.T) {
	registry := MustLoadRegistry()

	tests := []struct {
		name   string
		size   float32
		height float32
	}{
		{"default", 3, 3},
		{"corridor", 2, 2.5},
		{"hall", 4, 5},
		{"crypt", 3, 2.25},
	}

	for _, tt := range tests {
		p, err := registry.GetByName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.size, p.Size, tt.name)
		assert.Equal(t, tt.height, p.Height, tt.name)
	}

	_, err := registry.GetByName("cathedral")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load[PresetsFile]("missing.json")
	assert.Error(t, err)
}
