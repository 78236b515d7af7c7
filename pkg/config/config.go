// Package config resolves the server's process configuration from command
// line flags and HTTPMOCK_* environment variables, in that precedence
// order, via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully resolved process configuration for the serve command.
type Config struct {
	// Port is the TCP port the mock server (management API and matching
	// engine alike) listens on.
	Port int

	// LoadDir, when non-empty, is a directory of YAML/JSON mock files
	// loaded into the registry at startup.
	LoadDir string

	// LogLevel and LogFormat are passed through to pkg/logging as the raw
	// strings the flag or environment variable carried; pkg/logging owns
	// the fallback for unrecognized values.
	LogLevel  string
	LogFormat string
}

// Load resolves a Config from environment variables prefixed HTTPMOCK_ (so
// HTTPMOCK_PORT overrides port) layered under whatever was already set on v
// by command-line flags. v is exposed so callers (the CLI) can bind
// cobra flags into the same viper.Viper before calling Load.
func Load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("httpmock")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")

	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("config: port %d is out of range", port)
	}

	return Config{
		Port:      port,
		LoadDir:   v.GetString("load"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}, nil
}
