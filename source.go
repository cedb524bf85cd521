// FILE: lixenwraith/appconfig/source.go
package appconfig

import (
	"strings"
)

// Source identifies a ranked producer of raw configuration values.
type Source string

const (
	// SourceDefault represents default values from the target struct.
	SourceDefault Source = "default"
	// SourceOverride represents the caller-supplied override mapping.
	SourceOverride Source = "override"
	// SourceFile represents values loaded from a configuration file.
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables.
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments.
	SourceCLI Source = "cli"
)

// Provenance records which source supplied a value. Detail names the
// concrete origin: the resolved file path, the environment variable, or
// the command-line option.
type Provenance struct {
	Source Source
	Detail string
}

func (p Provenance) String() string {
	if p.Detail == "" {
		return string(p.Source)
	}
	return string(p.Source) + ":" + p.Detail
}

// Resolved is the final value of one field together with its
// provenance. Produced once per field and never mutated.
type Resolved struct {
	Path       string
	Value      any
	Provenance Provenance
}

// rawValue is a candidate value for a field path as produced by a
// source adapter, before coercion.
type rawValue struct {
	path string
	raw  any
	prov Provenance
}

// fromMapping yields raw candidates for every schema leaf present in a
// nested mapping. Entries that match no schema field are ignored.
// Override mappings may also use flat dotted keys.
func fromMapping(leaves []leaf, data map[string]any, prov Provenance) []rawValue {
	var out []rawValue
	for _, l := range leaves {
		if raw, ok := lookupPath(data, l.path); ok {
			out = append(out, rawValue{path: l.path, raw: raw, prov: prov})
		}
	}
	return out
}

// fromEnviron yields raw candidates from an environment snapshot in
// os.Environ form. A leaf path maps to prefix plus the path segments
// joined by underscores; names match case-insensitively. A prefix of a
// single dash, or an empty prefix, disables the source.
func fromEnviron(leaves []leaf, environ []string, prefix string) []rawValue {
	if prefix == "" || prefix == "-" {
		return nil
	}
	byName := make(map[string]envEntry, len(environ))
	for _, kv := range environ {
		if eq := strings.IndexByte(kv, '='); eq > 0 {
			byName[strings.ToUpper(kv[:eq])] = envEntry{name: kv[:eq], value: kv[eq+1:]}
		}
	}
	var out []rawValue
	for _, l := range leaves {
		name := prefix + strings.ReplaceAll(l.path, ".", "_")
		if entry, ok := byName[strings.ToUpper(name)]; ok {
			out = append(out, rawValue{
				path: l.path,
				raw:  entry.value,
				prov: Provenance{Source: SourceEnv, Detail: entry.name},
			})
		}
	}
	return out
}

type envEntry struct {
	name  string
	value string
}
