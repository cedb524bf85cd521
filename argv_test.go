// FILE: lixenwraith/appconfig/argv_test.go
package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromArgs(t *testing.T) {
	leaves := serverLeaves(t)

	t.Run("Long Options", func(t *testing.T) {
		args := []string{
			"--port", "9090",
			"--host=example.org",
			"--tags", "a",
			"--tags", "b",
			"positional",
		}
		values, rest, err := fromArgs(leaves, args, nil)
		require.NoError(t, err)

		got := rawByPath(values)
		assert.Equal(t, "9090", got["port"].raw)
		assert.Equal(t, "example.org", got["host"].raw)
		assert.Equal(t, []string{"a", "b"}, got["tags"].raw)
		assert.Equal(t, SourceCLI, got["port"].prov.Source)
		assert.Equal(t, "--port", got["port"].prov.Detail)
		assert.Equal(t, []string{"positional"}, rest)
	})

	t.Run("Unset Options Yield Nothing", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--port", "1"}, nil)
		require.NoError(t, err)
		assert.Len(t, values, 1)
	})

	t.Run("Bool Without Argument", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--debug"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "true", got["debug"].raw)
	})

	t.Run("Bool With Explicit Argument", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--debug=no"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "no", got["debug"].raw)
	})

	t.Run("Hyphens For Underscores", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--log-level=WARN"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "WARN", got["log_level"].raw)
	})

	t.Run("Dotted Paths For Nested Fields", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--limits.open", "5"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "5", got["limits.open"].raw)
	})

	t.Run("Synthesized Short Options", func(t *testing.T) {
		// "token" and "tags" share a first letter, so neither gets one;
		// "host" loses "h" to help.
		values, _, err := fromArgs(leaves, []string{"-p", "8080", "-d"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "8080", got["port"].raw)
		assert.Equal(t, "true", got["debug"].raw)
	})

	t.Run("Explicit Alias Wins", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"-q", "1234"},
			map[string]string{"q": "port"})
		require.NoError(t, err)
		got := rawByPath(values)
		assert.Equal(t, "1234", got["port"].raw)
	})

	t.Run("Alias Must Be Single Character", func(t *testing.T) {
		_, _, err := fromArgs(leaves, nil, map[string]string{"pp": "port"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single character")
	})

	t.Run("Alias H Reserved", func(t *testing.T) {
		_, _, err := fromArgs(leaves, nil, map[string]string{"h": "host"})
		require.Error(t, err)
	})

	t.Run("Unknown Flags Ignored", func(t *testing.T) {
		values, _, err := fromArgs(leaves, []string{"--nope=1", "--port", "2"}, nil)
		require.NoError(t, err)
		got := rawByPath(values)
		require.Len(t, got, 1)
		assert.Equal(t, "2", got["port"].raw)
	})

	t.Run("Missing Argument", func(t *testing.T) {
		_, _, err := fromArgs(leaves, []string{"--port"}, nil)
		assert.ErrorIs(t, err, ErrCLIParse)
	})
}

func TestUsage(t *testing.T) {
	sc, err := Introspect(serverConfig{})
	require.NoError(t, err)

	out := Usage(sc, nil)
	assert.Contains(t, out, "-p INT, --port INT")
	assert.Contains(t, out, "--debug [BOOL]")
	assert.Contains(t, out, "--window INT INT")
	assert.Contains(t, out, "--tags [STR ...]")
	assert.Contains(t, out, "--log_level logLevel")
	assert.Contains(t, out, "--log-level logLevel")
	assert.Contains(t, out, "(*)")
	assert.Contains(t, out, "--limits.open INT")
}

func TestOptionHelp(t *testing.T) {
	sc, err := Introspect(serverConfig{})
	require.NoError(t, err)

	line, ok := OptionHelp(sc, "log-level")
	require.True(t, ok)
	assert.Contains(t, line, "--log_level")
	assert.Contains(t, line, "minimum level emitted to the log")

	_, ok = OptionHelp(sc, "nonexistent")
	assert.False(t, ok)
}

func TestToArgs(t *testing.T) {
	cfg := defaultServerConfig()
	cfg.Token = "s3cret"
	cfg.Host = "-internal"
	cfg.Port = -1
	cfg.Ratio = -0.5
	cfg.Level = levelWarn
	cfg.Tags = []string{"x", "y z", "-lead"}
	cfg.Window = [2]int{-3, 4}

	t.Run("Arg Map", func(t *testing.T) {
		argMap, err := ToArgMap(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"s3cret"}, argMap["--token"])
		assert.Equal(t, []string{" -1"}, argMap["--port"])
		assert.Equal(t, []string{"WARN"}, argMap["--log_level"])
		assert.Equal(t, []string{" -3", "4"}, argMap["--window"])

		// Only numbers carry the option-lookalike space; strings keep
		// their leading dash verbatim.
		assert.Equal(t, []string{"-internal"}, argMap["--host"])
		assert.Equal(t, []string{"x", "y z", "-lead"}, argMap["--tags"])
	})

	t.Run("Round Trip Through CLI Parsing", func(t *testing.T) {
		args, err := ToArgs(&cfg)
		require.NoError(t, err)

		var got serverConfig
		_, err = Resolve(&got, Options{Args: args})
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})

	t.Run("Undeclared Enum Value Rejected", func(t *testing.T) {
		bad := defaultServerConfig()
		bad.Token = "t"
		bad.Level = logLevel("verbose")
		_, err := ToArgs(&bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log_level")
	})
}
