package svgtint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads an Options record from a .yaml, .yml or .json file.
// JSON files may contain comments and trailing commas. The color is resolved
// with ResolveColor so CSS color names are accepted in files.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load options: %w", err)
	}
	o, err := ParseOptions(data, filepath.Ext(path))
	if err != nil {
		return Options{}, fmt.Errorf("load options %s: %w", path, err)
	}
	return o, nil
}

// ParseOptions decodes an Options record. ext selects the format and is
// ".json" for JSON with comments, anything else for YAML.
func ParseOptions(data []byte, ext string) (Options, error) {
	var o Options
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &o); err != nil {
			return Options{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &o); err != nil {
			return Options{}, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if strings.TrimSpace(o.Color) == "" {
		o.Color = DefaultColor
	}
	color, err := ResolveColor(o.Color)
	if err != nil {
		return Options{}, err
	}
	o.Color = color
	return o, nil
}
