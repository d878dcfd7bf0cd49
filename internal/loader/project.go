package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Project is a loaded base token set plus its theme catalog.
type Project struct {
	TokensDir string
	ThemesDir string
	Base      *token.Set
	Themes    *theme.Catalog
}

// LoadProject loads the base set from tokensDir and the catalog from
// themesDir, and checks the base set's aliases.
func LoadProject(ctx context.Context, tokensDir, themesDir string, logger *slog.Logger) (*Project, error) {
	base, err := LoadTokens(ctx, tokensDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}
	if err := resolve.Validate(base); err != nil {
		return nil, fmt.Errorf("invalid base token set: %w", err)
	}
	themes, err := LoadThemes(ctx, themesDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	return &Project{TokensDir: tokensDir, ThemesDir: themesDir, Base: base, Themes: themes}, nil
}

// Compose composes the base set with the named themes in order.
func (p *Project) Compose(names ...string) (*theme.Resolved, error) {
	return p.Themes.Compose(p.Base, names...)
}
