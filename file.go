// FILE: lixenwraith/appconfig/file.go
package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// includeKey is the reserved file key referencing other files to load
// before the file's own entries.
const includeKey = "_include"

// LoadFile reads a configuration file and returns its nested mapping
// with all _include directives expanded. Includes are resolved relative
// to the directory of the including file and applied depth-first,
// left to right, before the file's own keys, so the including file wins
// on key collision. Fails with ErrFileNotFound, a ParseError, or an
// IncludeCycleError.
func LoadFile(path string) (map[string]any, error) {
	return loadFileRec(path, nil)
}

// loadFileRec carries the chain of currently open files, scoped to one
// root expansion, to detect include cycles.
func loadFileRec(path string, open []string) (map[string]any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path '%s': %w", path, err)
	}
	for i, p := range open {
		if p == abs {
			return nil, &IncludeCycleError{Cycle: append(append([]string{}, open[i:]...), abs)}
		}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, abs)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", abs, err)
	}

	conf, err := parseFile(abs, data)
	if err != nil {
		return nil, err
	}

	result := make(map[string]any)
	if inc, ok := conf[includeKey]; ok {
		paths, err := includePaths(abs, inc)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(abs)
		for _, incPath := range paths {
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(dir, incPath)
			}
			included, err := loadFileRec(incPath, append(open, abs))
			if err != nil {
				return nil, err
			}
			deepMerge(result, included)
		}
		delete(conf, includeKey)
	}
	deepMerge(result, conf)
	return result, nil
}

func includePaths(path string, inc any) ([]string, error) {
	switch v := inc.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		paths := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ParseError{Path: path,
					Err: fmt.Errorf("%s must be a string or a list of strings", includeKey)}
			}
			paths[i] = s
		}
		return paths, nil
	}
	return nil, &ParseError{Path: path,
		Err: fmt.Errorf("%s must be a string or a list of strings", includeKey)}
}

// parseFile decodes file content by extension, falling back to content
// sniffing for unrecognized extensions.
func parseFile(path string, data []byte) (map[string]any, error) {
	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, &ParseError{Path: path, Err: errors.New("unable to determine file format")}
		}
	}

	conf := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &conf); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // preserve number precision
		if err := decoder.Decode(&conf); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}
	return conf, nil
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts detection by parsing. JSON first as
// the strictest format, then YAML, then TOML.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}
	return ""
}
