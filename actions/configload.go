package actions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigLoad loads the configuration subtree for a nested key, either from
// inline YAML/JSON text or from a file path.
type ConfigLoad struct {
	Key string
}

// NewConfigLoad returns a config-subtree loading action for nestedKey.
func NewConfigLoad(nestedKey string) *ConfigLoad {
	return &ConfigLoad{Key: nestedKey}
}

// Apply parses raw into the subtree mapping. When raw names an existing
// file, its contents are loaded instead.
func (a *ConfigLoad) Apply(raw string) (any, error) {
	data := []byte(raw)
	if info, err := os.Stat(raw); err == nil && !info.IsDir() {
		data, err = os.ReadFile(raw)
		if err != nil {
			return nil, fmt.Errorf("config for %q: %w", a.Key, err)
		}
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("config for %q: %w", a.Key, err)
	}
	return tree, nil
}
