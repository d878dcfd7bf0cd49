package commands

import (
	"fmt"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/internal/config"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	var allPlatforms bool

	cmd := &cobra.Command{
		Use:   "resolve <token...>",
		Short: "Resolve tokens to platform values",
		Long: `Resolve one or more tokens of the composed theme, following aliases,
and print the value each one takes on the target platform.

Resolution fails with the first error: an unknown token, a value with no
form on the platform, or an alias cycle.`,
		Example: `  # Resolve a colour for the web
  leaptoken resolve color.button.bg

  # Resolve under the dark theme for native
  leaptoken resolve color.surface.base --theme dark --platform native

  # Resolve on every platform
  leaptoken resolve spacing.md --all-platforms`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, allPlatforms)
		},
		ValidArgsFunction: completeTokenNames,
	}

	cmd.Flags().BoolVar(&allPlatforms, "all-platforms", false, "Resolve on every registered platform")

	return cmd
}

func runResolve(cmd *cobra.Command, names []string, allPlatforms bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	_, resolved, err := cmdCtx.Compose(cmd)
	if err != nil {
		return err
	}

	platforms := []platform.Platform{cmdCtx.Platform()}
	if allPlatforms {
		platforms = platform.Platforms()
	}

	res := cmdCtx.Resolver(resolved)
	values := make([]output.ResolvedValue, 0, len(names)*len(platforms))
	for _, name := range names {
		for _, p := range platforms {
			v, err := res.Resolve(name, p)
			if err != nil {
				return err
			}
			values = append(values, output.ResolvedValue{Name: name, Platform: p.String(), Value: v})
		}
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(values)
	case output.ModeMarkdown:
		for _, v := range values {
			r.Println(output.FormatKeyValue(fmt.Sprintf("%s (%s)", v.Name, v.Platform), "`"+displayValue(v.Value)+"`"))
		}
	default:
		styles := r.Styles()
		for _, v := range values {
			label := styles.TokenName.Render(v.Name)
			if len(platforms) > 1 {
				label += " " + styles.Muted.Render("["+v.Platform+"]")
			}
			r.Printf("%s = %s\n", label, displayValue(v.Value))
		}
	}
	return nil
}

// completeTokenNames offers the token names of the configured project.
func completeTokenNames(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		var err error
		if cfg, err = config.Load("", cmd.Flags()); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
	set, err := loader.LoadTokens(cmd.Context(), cfg.TokensDir, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return set.Names(), cobra.ShellCompDirectiveNoFileComp
}
