// Package config loads leaptoken project configuration.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// leaptoken.yaml (or .yml) at the project root, LEAPTOKEN_* environment
// variables and explicitly set command-line flags.
package config

import (
	"net"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultTokensDir = "tokens"
	DefaultThemesDir = "themes"
	DefaultPlatform  = "web"
	DefaultRemBase   = 16.0
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown

	DefaultExportFormat   = "css"
	DefaultExportSelector = ":root"

	DefaultServeHost     = "127.0.0.1"
	DefaultServePort     = 8787
	DefaultServeDebounce = 200 * time.Millisecond
)

// ConfigFileNames are the file names searched for at the project root, in order.
var ConfigFileNames = []string{"leaptoken.yaml", "leaptoken.yml"}

// Config holds all CLI configuration options.
type Config struct {
	TokensDir    string       `koanf:"tokens_dir"`
	ThemesDir    string       `koanf:"themes_dir"`
	Platform     string       `koanf:"platform"`
	Themes       []string     `koanf:"themes"`
	RemBase      float64      `koanf:"rem_base"`
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	Export       ExportConfig `koanf:"export"`
	Serve        ServeConfig  `koanf:"serve"`

	// Set by Load, not read from any source.
	ProjectRoot string `koanf:"-"`
	ConfigFile  string `koanf:"-"`
}

// ExportConfig configures the export command.
type ExportConfig struct {
	Format   string `koanf:"format"`
	Selector string `koanf:"selector"`
	Out      string `koanf:"out"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	Watch    bool          `koanf:"watch"`
	Debounce time.Duration `koanf:"debounce"`
}

// Addr returns host:port for the listener.
func (s ServeConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func defaults() map[string]any {
	return map[string]any{
		"tokens_dir":      DefaultTokensDir,
		"themes_dir":      DefaultThemesDir,
		"platform":        DefaultPlatform,
		"themes":          []string{},
		"rem_base":        DefaultRemBase,
		"output":          DefaultOutput,
		"verbose":         false,
		"export.format":   DefaultExportFormat,
		"export.selector": DefaultExportSelector,
		"export.out":      "",
		"serve.host":      DefaultServeHost,
		"serve.port":      DefaultServePort,
		"serve.watch":     false,
		"serve.debounce":  DefaultServeDebounce.String(),
	}
}
