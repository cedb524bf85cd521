// FILE: lixenwraith/appconfig/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"appconfig"
)

type logLevel string

const (
	levelDebug logLevel = "debug"
	levelInfo  logLevel = "info"
	levelWarn  logLevel = "warn"
)

func (logLevel) EnumMembers() []appconfig.EnumMember {
	return []appconfig.EnumMember{
		{Name: "DEBUG", Value: levelDebug},
		{Name: "INFO", Value: levelInfo},
		{Name: "WARN", Value: levelWarn},
	}
}

// AppConfig shows the supported field kinds: scalars, an enumeration,
// a variadic tuple and a nested section.
type AppConfig struct {
	Token  string   `conf:"token,required,secret" help:"API token used for upstream calls"`
	Level  logLevel `conf:"log_level"`
	Tags   []string `conf:"tags"`
	Server struct {
		Host string `conf:"host"`
		Port int    `conf:"port"`
	} `conf:"server"`
}

const configFilePath = "config.toml"

func main() {
	// Write a config file for the demo and clean it up afterwards.
	content := []byte("log_level = \"DEBUG\"\n\n[server]\nhost = \"demo.internal\"\n")
	if err := os.WriteFile(configFilePath, content, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", configFilePath, err)
	}
	defer os.Remove(configFilePath)

	// Environment overrides the file; the command line overrides both.
	os.Setenv("APP_SERVER_PORT", "9090")
	defer os.Unsetenv("APP_SERVER_PORT")

	cfg := AppConfig{Level: levelInfo, Tags: []string{"demo"}}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8080

	resolved, err := appconfig.NewBuilder().
		WithOverrides(map[string]any{"token": "demo-token"}).
		WithFiles(configFilePath).
		WithEnvPrefix("APP_").
		WithArgs(os.Args[1:]).
		WithValidator(func(target any) error {
			c := target.(*AppConfig)
			if c.Server.Port <= 0 || c.Server.Port > 65535 {
				return fmt.Errorf("server.port %d out of range", c.Server.Port)
			}
			return nil
		}).
		Build(&cfg)
	if err != nil {
		log.Fatalf("configuration failed: %v", err)
	}

	fmt.Printf("token: %q (secret, so never logged)\n", cfg.Token)
	fmt.Printf("log_level: %s\n", cfg.Level)
	fmt.Printf("server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)

	fmt.Println("\nprovenance:")
	for _, r := range resolved {
		fmt.Printf("  %-12s <- %s\n", r.Path, r.Provenance)
	}

	// The same instance can be turned back into a command line.
	args, err := appconfig.ToArgs(&cfg)
	if err != nil {
		log.Fatalf("failed to render args: %v", err)
	}
	fmt.Printf("\nequivalent command line: %v\n", args)
}
