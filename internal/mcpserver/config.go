package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/oasforge/schema"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	DefaultVersion schema.Version
	Indent         int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASFORGE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		DefaultVersion: envVersion("OASFORGE_DEFAULT_VERSION", schema.Version312),
		Indent:         envInt("OASFORGE_INDENT", 2),
	}
}

func envVersion(key string, fallback schema.Version) schema.Version {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	version, ok := schema.ParseVersion(v)
	if !ok {
		slog.Warn("invalid version env var, using default", "key", key, "value", v, "default", fallback.String())
		return fallback
	}
	return version
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
