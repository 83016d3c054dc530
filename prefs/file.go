package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/c360/graphdeco/errors"
)

// LoadFile reads a configuration file and returns it as a Source.
// The format is chosen by extension: .json, .yaml/.yml, .toml, .properties.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "prefs", "LoadFile", "read config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, errors.WrapInvalid(err, "prefs", "LoadFile", "decode JSON config")
		}
		return NewMapSource(tree), nil
	case ".yaml", ".yml":
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.WrapInvalid(err, "prefs", "LoadFile", "decode YAML config")
		}
		return NewMapSource(tree), nil
	case ".toml":
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, errors.WrapInvalid(err, "prefs", "LoadFile", "decode TOML config")
		}
		return NewMapSource(tree), nil
	case ".properties":
		props, err := ParseProperties(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return FromProperties(props), nil
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("unsupported config format %q", filepath.Ext(path)),
			"prefs", "LoadFile", "detect config format")
	}
}
