package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/internal/config"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the configuration the root
// command stored on the context, loading it from the command's flags when
// the command runs on its own.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		var err error
		cfg, err = config.Load("", cmd.Flags())
		if err != nil {
			return nil, err
		}
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: r,
	}, nil
}

// LoadProject loads the configured token and theme directories.
func (c *CommandContext) LoadProject(cmd *cobra.Command) (*loader.Project, error) {
	if err := c.Cfg.ValidateDirectories(); err != nil {
		return nil, err
	}
	return loader.LoadProject(cmd.Context(), c.Cfg.TokensDir, c.Cfg.ThemesDir, c.Logger)
}

// Compose loads the project and composes the configured themes.
func (c *CommandContext) Compose(cmd *cobra.Command) (*loader.Project, *theme.Resolved, error) {
	p, err := c.LoadProject(cmd)
	if err != nil {
		return nil, nil, err
	}
	r, err := p.Compose(c.Cfg.Themes...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compose themes: %w", err)
	}
	return p, r, nil
}

// Platform returns the configured target platform.
func (c *CommandContext) Platform() platform.Platform {
	return c.Cfg.PlatformValue()
}

// Resolver returns a resolver over r using the configured rem base.
func (c *CommandContext) Resolver(r *theme.Resolved) *resolve.Resolver {
	return r.Resolver(resolve.WithRemBase(c.Cfg.RemBase), resolve.WithLogger(c.Logger))
}

// themeLabel names a composition for display.
func themeLabel(names []string) string {
	if len(names) == 0 {
		return "base"
	}
	return strings.Join(names, " + ")
}

// displayValue renders a resolved platform value on one line.
func displayValue(v platform.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return platform.FormatNumber(x)
	case int:
		return strconv.Itoa(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
