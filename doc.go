// Package appconfig resolves a strongly typed application configuration
// from multiple sources: built-in defaults, an override mapping,
// configuration files (TOML, JSON or YAML), environment variables, and
// command-line arguments, with a fixed precedence order.
//
// Features:
//   - Schema introspection from plain Go structs with `conf` tags
//   - Deterministic source precedence with per-field provenance tracking
//   - Type coercion for scalars, enumerations, tuples and nested schemas
//   - Recursive file includes via the "_include" key, with cycle detection
//   - Aggregated error reporting: every missing or malformed field in one error
//   - Secret values suppressed in diagnostic output
//
// Quick Start:
//
//	type Config struct {
//	    Token  string `conf:"token,required,secret"`
//	    Server struct {
//	        Host string `conf:"host"`
//	        Port int    `conf:"port"`
//	    } `conf:"server"`
//	}
//
//	cfg := Config{}
//	cfg.Server.Host = "localhost"
//	cfg.Server.Port = 8080
//
//	if _, err := appconfig.Gather(&cfg, "MYAPP_", "config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--server.port 9090)
//  2. Environment variables (MYAPP_SERVER_PORT=9090)
//  3. Configuration files, applied in list order (later files win)
//  4. The override mapping passed by the caller
//  5. Default values taken from the target struct
//
// Resolution either fully succeeds, populating the target struct, or
// fully fails with an error naming every problem; the target is never
// partially applied. The populated struct is owned by the caller and no
// engine state refers to it afterwards, so it is safe to share read-only
// across goroutines.
package appconfig
