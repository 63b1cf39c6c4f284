// Package config provides reusable building blocks for fail-open configuration:
// key/value sources (environment, config files), typed loaders that fall back
// to defaults on invalid input, validators and prometheus metrics that expose
// when a fallback is in effect.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source looks up raw configuration values by key.
type Source interface {
	Lookup(key string) (string, bool)
	Name() string
}

// EnvSource reads values from the process environment.
// Empty variables are treated as unset.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func (EnvSource) Name() string { return "env" }

// MapSource serves values from an in-memory map, typically decoded from a file.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource returns a MapSource. Keys are matched case-insensitively.
func NewMapSource(name string, values map[string]string) *MapSource {
	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[strings.ToUpper(k)] = v
	}
	return &MapSource{name: name, values: normalized}
}

func (m *MapSource) Lookup(key string) (string, bool) {
	v, ok := m.values[strings.ToUpper(key)]
	return v, ok && v != ""
}

func (m *MapSource) Name() string { return m.name }

// LoadFile decodes a flat YAML or TOML file into a MapSource. The format is
// chosen by extension (.yaml, .yml or .toml). Keys use the same names as the
// environment variables, in any case, e.g. "refresh_interval: 5m".
func LoadFile(path string) (*MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("decode toml config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case nil:
			continue
		case map[string]any, []any, []map[string]any:
			return nil, fmt.Errorf("config key %q: nested values are not supported", k)
		default:
			values[k] = fmt.Sprint(tv)
		}
	}
	return NewMapSource("file:"+filepath.Base(path), values), nil
}
