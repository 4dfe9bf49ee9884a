package presets

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named pair of tile dimensions.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        float32 `json:"size"`   // Tile edge length
	Height      float32 `json:"height"` // Floor to ceiling
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []Preset `json:"presets"`
}

// Registry holds loaded presets keyed by name.
type Registry struct {
	byName map[string]*Preset
	all    []Preset
}

// NewRegistry creates a registry from loaded presets.
func NewRegistry(presets []Preset) *Registry {
	r := &Registry{
		byName: make(map[string]*Preset, len(presets)),
		all:    presets,
	}
	for i := range presets {
		r.byName[presets[i].Name] = &presets[i]
	}
	return r
}

// LoadRegistry loads the embedded presets.json.
func LoadRegistry() (*Registry, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	if len(file.Presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewRegistry(file.Presets), nil
}

// MustLoadRegistry loads the registry, panicking on error.
func MustLoadRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// GetByName returns the preset with the given name.
func (r *Registry) GetByName(name string) (*Preset, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Names returns all preset names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.all))
	for _, p := range r.all {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of presets.
func (r *Registry) Count() int {
	return len(r.all)
}
