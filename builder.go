// FILE: lixenwraith/appconfig/builder.go
package appconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ValidatorFunc validates the fully resolved target. It runs after the
// target is populated and should return an error if the configuration
// is semantically invalid.
type ValidatorFunc func(target any) error

// Builder provides a fluent interface for configuring a resolution.
type Builder struct {
	opts       Options
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a resolution builder. Environment and CLI sources
// stay disabled until WithEnvPrefix and WithArgs are called.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithOverrides sets the caller override mapping.
func (b *Builder) WithOverrides(overrides map[string]any) *Builder {
	b.opts.Overrides = overrides
	return b
}

// WithFiles appends configuration files, applied in list order.
func (b *Builder) WithFiles(paths ...string) *Builder {
	b.opts.Files = append(b.opts.Files, paths...)
	return b
}

// WithFilesDir sets the base directory for relative file paths.
func (b *Builder) WithFilesDir(dir string) *Builder {
	b.opts.FilesDir = dir
	return b
}

// WithEnvPrefix enables the environment source with the given prefix.
// A prefix of "-" keeps it disabled.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnviron injects an environment snapshot in os.Environ form,
// replacing the process environment.
func (b *Builder) WithEnviron(environ []string) *Builder {
	b.opts.Environ = environ
	return b
}

// WithArgs enables the CLI source with the given arguments, normally
// os.Args[1:].
func (b *Builder) WithArgs(args []string) *Builder {
	b.opts.Args = args
	if args == nil {
		b.opts.Args = []string{}
	}
	return b
}

// WithEnvPrefixFlag lets the command line override the environment
// prefix: when the arguments contain the flag ("-e PREFIX" or
// "-e=PREFIX" forms), its value replaces any prefix set so far. A
// value of a sole dash disables the environment source at runtime.
// Call after WithArgs.
func (b *Builder) WithEnvPrefixFlag(flag string) *Builder {
	for i, arg := range b.opts.Args {
		if arg == flag && i+1 < len(b.opts.Args) {
			b.opts.EnvPrefix = b.opts.Args[i+1]
			return b
		}
		if strings.HasPrefix(arg, flag+"=") {
			b.opts.EnvPrefix = strings.TrimPrefix(arg, flag+"=")
			return b
		}
	}
	return b
}

// WithFilesFlag appends configuration files named on the command line:
// each occurrence of the flag contributes the values that follow it, up
// to the next option. Files land after any set with WithFiles, so the
// command line wins on key collision. Call after WithArgs.
func (b *Builder) WithFilesFlag(flag string) *Builder {
	args := b.opts.Args
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], flag+"=") {
			b.opts.Files = append(b.opts.Files, strings.TrimPrefix(args[i], flag+"="))
			continue
		}
		if args[i] != flag {
			continue
		}
		for i++; i < len(args) && !strings.HasPrefix(args[i], "-"); i++ {
			b.opts.Files = append(b.opts.Files, args[i])
		}
		i--
	}
	return b
}

// WithAlias registers a one-letter short option for a field path.
func (b *Builder) WithAlias(short, path string) *Builder {
	if len(short) != 1 {
		b.err = fmt.Errorf("short option %q must be a single character", short)
		return b
	}
	if b.opts.ArgAliases == nil {
		b.opts.ArgAliases = make(map[string]string)
	}
	b.opts.ArgAliases[short] = path
	return b
}

// WithLogger sets the logger receiving discovery and decision lines.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithValidator adds a validation function run after the target is
// populated. Validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build resolves configuration into the target struct pointer, whose
// current field values serve as defaults.
func (b *Builder) Build(target any) ([]Resolved, error) {
	if b.err != nil {
		return nil, b.err
	}
	resolved, err := Resolve(target, b.opts)
	if err != nil {
		return nil, err
	}
	for _, validate := range b.validators {
		if err := validate(target); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return resolved, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(target any) []Resolved {
	resolved, err := b.Build(target)
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return resolved
}

// Gather resolves configuration with the standard source set: defaults
// from the target, the listed files, environment variables under the
// prefix, and the process command line. This is the recommended entry
// point for most applications.
func Gather(target any, envPrefix string, files ...string) ([]Resolved, error) {
	return NewBuilder().
		WithFiles(files...).
		WithEnvPrefix(envPrefix).
		WithArgs(os.Args[1:]).
		Build(target)
}
