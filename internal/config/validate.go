package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/platform"
	_ "github.com/leapstack-labs/leaptoken/pkg/platform/native" // register native
	_ "github.com/leapstack-labs/leaptoken/pkg/platform/web"    // register web
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TokensDir == "" {
		return fmt.Errorf("tokens_dir is required")
	}
	if _, err := platform.Parse(c.Platform); err != nil {
		return fmt.Errorf("invalid platform: %w", err)
	}
	if c.RemBase <= 0 {
		return fmt.Errorf("rem_base must be positive, got %v", c.RemBase)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (valid: %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Serve.Debounce < 0 {
		return fmt.Errorf("serve.debounce must not be negative")
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
// A missing themes directory is allowed.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.TokensDir); os.IsNotExist(err) {
		return fmt.Errorf("tokens directory does not exist: %s\nHint: Run 'leaptoken init' or use --tokens-dir to specify a different path", c.TokensDir)
	}
	return nil
}

// PlatformValue returns the configured platform.
func (c *Config) PlatformValue() platform.Platform {
	p, _ := platform.Parse(c.Platform)
	return p
}
