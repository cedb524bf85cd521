// FILE: lixenwraith/appconfig/schema_test.go
package appconfig

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLevel is the enumeration used across the test suite.
type logLevel string

const (
	levelDebug logLevel = "debug"
	levelInfo  logLevel = "info"
	levelWarn  logLevel = "warn"
)

func (logLevel) EnumMembers() []EnumMember {
	return []EnumMember{
		{Name: "DEBUG", Value: levelDebug},
		{Name: "INFO", Value: levelInfo},
		{Name: "WARN", Value: levelWarn},
	}
}

// serverConfig exercises every supported field kind.
type serverConfig struct {
	Token  string   `conf:"token,required,secret"`
	Host   string   `conf:"host"`
	Port   int      `conf:"port"`
	Debug  bool     `conf:"debug"`
	Ratio  float64  `conf:"ratio"`
	Level  logLevel `conf:"log_level" help:"minimum level emitted to the log"`
	Tags   []string `conf:"tags"`
	Window [2]int   `conf:"window"`
	Limits struct {
		Open int `conf:"open"`
		Mem  int `conf:"mem"`
	} `conf:"limits"`
}

func defaultServerConfig() serverConfig {
	cfg := serverConfig{
		Host:   "localhost",
		Port:   8080,
		Ratio:  0.25,
		Level:  levelInfo,
		Tags:   []string{"base"},
		Window: [2]int{1, 2},
	}
	cfg.Limits.Open = 16
	cfg.Limits.Mem = 64
	return cfg
}

func TestIntrospect(t *testing.T) {
	t.Run("Paths In Declaration Order", func(t *testing.T) {
		sc, err := Introspect(serverConfig{})
		require.NoError(t, err)

		expected := []string{
			"token", "host", "port", "debug", "ratio",
			"log_level", "tags", "window",
			"limits.open", "limits.mem",
		}
		assert.Equal(t, expected, sc.Paths())
	})

	t.Run("Schema Cached Per Type", func(t *testing.T) {
		first, err := Introspect(serverConfig{})
		require.NoError(t, err)
		second, err := Introspect(&serverConfig{})
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("Tag Metadata", func(t *testing.T) {
		sc, err := Introspect(serverConfig{})
		require.NoError(t, err)

		token := sc.Fields[0]
		assert.Equal(t, "token", token.Name)
		assert.True(t, token.Required)
		assert.True(t, token.Secret)

		level := sc.Fields[5]
		assert.Equal(t, "log_level", level.Name)
		assert.Equal(t, "minimum level emitted to the log", level.Help)
		assert.Equal(t, KindEnum, level.Desc.Kind)
	})

	t.Run("Descriptor Kinds", func(t *testing.T) {
		sc, err := Introspect(serverConfig{})
		require.NoError(t, err)

		byName := make(map[string]*Field)
		for _, f := range sc.Fields {
			byName[f.Name] = f
		}
		assert.Equal(t, KindString, byName["host"].Desc.Kind)
		assert.Equal(t, KindInt, byName["port"].Desc.Kind)
		assert.Equal(t, KindBool, byName["debug"].Desc.Kind)
		assert.Equal(t, KindFloat, byName["ratio"].Desc.Kind)
		assert.Equal(t, KindTuple, byName["tags"].Desc.Kind)
		assert.Equal(t, 0, byName["tags"].Desc.Arity)
		assert.Equal(t, KindTuple, byName["window"].Desc.Kind)
		assert.Equal(t, 2, byName["window"].Desc.Arity)
		assert.Equal(t, KindNested, byName["limits"].Desc.Kind)
		require.NotNil(t, byName["limits"].Desc.Inner)
		assert.Len(t, byName["limits"].Desc.Inner.Fields, 2)
	})

	t.Run("Skips Unexported And Dashed Fields", func(t *testing.T) {
		type hidden struct {
			Visible string `conf:"visible"`
			Ignored string `conf:"-"`
			secret  string
		}
		sc, err := Introspect(hidden{})
		require.NoError(t, err)
		assert.Equal(t, []string{"visible"}, sc.Paths())
	})

	t.Run("Duplicate Path", func(t *testing.T) {
		type dup struct {
			A int `conf:"x"`
			B int `conf:"x"`
		}
		_, err := Introspect(dup{})
		var dpe *DuplicatePathError
		require.ErrorAs(t, err, &dpe)
		assert.Equal(t, "x", dpe.Path)
	})

	t.Run("Unsupported Type", func(t *testing.T) {
		type bad struct {
			M map[string]int `conf:"m"`
		}
		_, err := Introspect(bad{})
		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		assert.Equal(t, "M", ute.Field)
	})

	t.Run("Tuple Of Tuples Unsupported", func(t *testing.T) {
		type bad struct {
			X [][]int `conf:"x"`
		}
		_, err := Introspect(bad{})
		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
	})

	t.Run("Required After Default", func(t *testing.T) {
		type misordered struct {
			Host  string `conf:"host"`
			Token string `conf:"token,required"`
		}
		_, err := Introspect(misordered{})
		var foe *FieldOrderError
		require.ErrorAs(t, err, &foe)
		assert.Equal(t, "token", foe.Field)
	})

	t.Run("Nested With Required Leaf Counts As Required", func(t *testing.T) {
		type inner struct {
			Key string `conf:"key,required"`
		}
		type misordered struct {
			Port  int   `conf:"port"`
			Inner inner `conf:"inner"`
		}
		_, err := Introspect(misordered{})
		var foe *FieldOrderError
		require.ErrorAs(t, err, &foe)
		assert.Equal(t, "inner", foe.Field)
	})

	t.Run("Required On Nested Field Rejected", func(t *testing.T) {
		type inner struct {
			Key string `conf:"key"`
		}
		type bad struct {
			Inner inner `conf:"inner,required"`
		}
		_, err := Introspect(bad{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "leaf fields only")
	})

	t.Run("Invalid Key Segment", func(t *testing.T) {
		type bad struct {
			A int `conf:"has.dot"`
		}
		_, err := Introspect(bad{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid key segment")
	})

	t.Run("Non-Struct Prototype", func(t *testing.T) {
		_, err := Introspect(42)
		require.Error(t, err)
		var nilPtr *serverConfig
		_, err = Introspect(nilPtr)
		require.Error(t, err)
	})
}

func TestEnumIntrospection(t *testing.T) {
	sc, err := Introspect(serverConfig{})
	require.NoError(t, err)

	var level *Field
	for _, f := range sc.Fields {
		if f.Name == "log_level" {
			level = f
		}
	}
	require.NotNil(t, level)

	names := make([]string, len(level.Desc.Members))
	for i, m := range level.Desc.Members {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"DEBUG", "INFO", "WARN"}, names)
}

func TestDescriptorTypeString(t *testing.T) {
	sc, err := Introspect(serverConfig{})
	require.NoError(t, err)

	rendered := make(map[string]string)
	for _, l := range sc.leaves("", reflect.Value{}) {
		rendered[l.path] = l.field.Desc.typeString()
	}
	assert.Equal(t, "STR", rendered["host"])
	assert.Equal(t, "INT", rendered["port"])
	assert.Equal(t, "[BOOL]", rendered["debug"])
	assert.Equal(t, "FLOAT", rendered["ratio"])
	assert.Equal(t, "logLevel", rendered["log_level"])
	assert.Equal(t, "[STR ...]", rendered["tags"])
	assert.Equal(t, "INT INT", rendered["window"])
}
