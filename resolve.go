// FILE: lixenwraith/appconfig/resolve.go
package appconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
)

// secretMask replaces secret values in all diagnostic output.
const secretMask = "*****"

// Options configures one resolution pass.
type Options struct {
	// Overrides replaces defaults before any external source is
	// consulted. Keys may be nested maps or flat dotted paths.
	Overrides map[string]any

	// Files are configuration files applied in list order; a later
	// file's keys override an earlier file's. Every listed file must
	// exist.
	Files []string

	// FilesDir is the base directory for relative file paths. Empty
	// means the current working directory.
	FilesDir string

	// EnvPrefix selects environment variables named
	// <prefix><PATH_SEGMENTS_JOINED_BY_UNDERSCORES>, matched
	// case-insensitively. Empty or "-" disables the environment
	// source.
	EnvPrefix string

	// Environ is the environment snapshot in os.Environ form. Nil
	// means the process environment is captured when Resolve runs.
	Environ []string

	// Args are command-line arguments (without the program name). Nil
	// disables the CLI source; to parse the real command line pass
	// os.Args[1:].
	Args []string

	// ArgAliases maps one-letter short options to field paths,
	// overriding the synthesized aliases.
	ArgAliases map[string]string

	// Logger receives one debug line per discovered candidate and one
	// info line per final decision. Nil means slog.Default().
	Logger *slog.Logger
}

// candidate is the currently winning raw value for a field path.
type candidate struct {
	raw  any
	prov Provenance
}

// Resolve gathers configuration for the target struct from all
// configured sources and populates it. The target must be a non-nil
// struct pointer; its field values before the call serve as schema
// defaults. Sources are consulted from lowest to highest precedence:
// defaults, overrides, files in list order, environment, command line.
//
// Returns the per-field provenance records in schema order. On failure
// the target is left untouched: introspection and file errors are
// fatal immediately, while conversion errors and missing required
// fields are collected across all fields and reported together as a
// single ResolutionError.
func Resolve(target any, opts Options) ([]Resolved, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("resolve target must be a non-nil struct pointer, got %T", target)
	}

	sc, err := Introspect(target)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	leaves := sc.leaves("", rv.Elem())
	secret := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		secret[l.path] = l.field.Secret
	}

	winners := make(map[string]candidate, len(leaves))
	for _, l := range leaves {
		if l.def.IsValid() {
			winners[l.path] = candidate{raw: l.def.Interface(), prov: Provenance{Source: SourceDefault}}
		}
	}

	record := func(values []rawValue) {
		for _, v := range values {
			winners[v.path] = candidate{raw: v.raw, prov: v.prov}
			logger.Debug("discovered",
				"path", v.path,
				"value", maskValue(v.raw, secret[v.path]),
				"source", v.prov.String())
		}
	}

	record(fromMapping(leaves, opts.Overrides, Provenance{Source: SourceOverride}))

	for _, file := range opts.Files {
		if opts.FilesDir != "" && !filepath.IsAbs(file) {
			file = filepath.Join(opts.FilesDir, file)
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path '%s': %w", file, err)
		}
		conf, err := LoadFile(abs)
		if err != nil {
			return nil, err
		}
		record(fromMapping(leaves, conf, Provenance{Source: SourceFile, Detail: abs}))
	}

	environ := opts.Environ
	if environ == nil && opts.EnvPrefix != "" && opts.EnvPrefix != "-" {
		environ = os.Environ()
	}
	record(fromEnviron(leaves, environ, opts.EnvPrefix))

	if opts.Args != nil {
		cliValues, _, err := fromArgs(leaves, opts.Args, opts.ArgAliases)
		if err != nil {
			return nil, err
		}
		record(cliValues)
	}

	var errs []error
	resolved := make([]Resolved, 0, len(leaves))
	data := make(map[string]any)
	for _, l := range leaves {
		winner, ok := winners[l.path]
		if !ok {
			errs = append(errs, &MissingFieldError{Path: l.path})
			continue
		}
		var value any
		if winner.prov.Source == SourceDefault {
			// Defaults are already of the declared type.
			value = winner.raw
		} else {
			value, err = coerceValue(l.path, winner.raw, l.field.Desc)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		}
		resolved = append(resolved, Resolved{Path: l.path, Value: value, Provenance: winner.prov})
		setNestedValue(data, l.path, value)
		logger.Info("final",
			"path", l.path,
			"value", maskValue(value, secret[l.path]),
			"source", winner.prov.String())
	}
	if len(errs) > 0 {
		return nil, &ResolutionError{Errors: errs}
	}

	if err := decodeInto(target, data); err != nil {
		return nil, err
	}
	return resolved, nil
}

func maskValue(v any, isSecret bool) any {
	if isSecret {
		return secretMask
	}
	return v
}
