// FILE: lixenwraith/appconfig/discovery.go
package appconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery.
type FileDiscoveryOptions struct {
	// Base name of the config file, without extension.
	Name string

	// Extensions to try, in order.
	Extensions []string

	// Custom search paths, tried before the defaults.
	Paths []string

	// Environment variable holding an explicit path.
	EnvVar string

	// CLI flag naming an explicit path (e.g. "--config").
	CLIFlag string

	// Whether to search XDG config directories.
	UseXDG bool

	// Whether to search the current directory.
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults for an application
// name.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery appends a discovered config file to the file list.
// An explicit path from the CLI flag or the environment variable wins;
// otherwise search paths are probed in order. Finding no file is not an
// error.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if opts.CLIFlag != "" {
		for i, arg := range b.opts.Args {
			if arg == opts.CLIFlag && i+1 < len(b.opts.Args) {
				return b.WithFiles(b.opts.Args[i+1])
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return b.WithFiles(strings.TrimPrefix(arg, opts.CLIFlag+"="))
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return b.WithFiles(path)
		}
	}

	searchPaths := append([]string{}, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if _, err := os.Stat(path); err == nil {
				return b.WithFiles(path)
			}
		}
	}
	return b
}

// OptionalFile returns a single-element list with the path if the file
// exists, and an empty list otherwise. Useful to build file lists:
//
//	appconfig.NewBuilder().WithFiles(appconfig.OptionalFile("config.yml")...)
func OptionalFile(path string) []string {
	if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
		return []string{path}
	}
	return nil
}

// FilesInParents returns every file with the given name found along the
// base path's parent chain, root first, so that files closer to the
// base directory override files above them. An empty base means the
// current working directory.
func FilesInParents(fileName, basePath string) []string {
	if basePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil
		}
		basePath = cwd
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil
	}
	var files []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		files = append(OptionalFile(filepath.Join(dir, fileName)), files...)
		if dir == filepath.Dir(dir) {
			break
		}
	}
	return files
}

// xdgConfigPaths returns XDG-compliant config search paths.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}
	return paths
}
