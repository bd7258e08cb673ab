package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/lfpfade/core/degradation"
)

// PresetsConfig points at a directory of pack preset files.
type PresetsConfig struct {
	Dir string `json:"dir"`
}

// Preset is a named set of calculator inputs, typically a commercial pack.
type Preset struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Inputs degradation.Inputs `json:"inputs"`
}

type presetFile struct {
	Battery struct {
		Name               string `yaml:"name"`
		degradation.Inputs `yaml:",inline"`
	} `yaml:"battery"`
}

// LoadPresets reads every *.yaml file in dir. The file name without its
// extension is the preset ID. Presets whose inputs fall outside b are
// rejected. A missing directory yields no presets.
func LoadPresets(dir string, b degradation.Bounds) ([]Preset, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Preset
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		p, err := loadPreset(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		if err := p.Inputs.Validate(b); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func loadPreset(path string) (Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var f presetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Preset{}, err
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := f.Battery.Name
	if name == "" {
		name = id
	}
	return Preset{ID: id, Name: name, Inputs: f.Battery.Inputs}, nil
}

// FindPreset returns the preset with the given ID.
func FindPreset(presets []Preset, id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
