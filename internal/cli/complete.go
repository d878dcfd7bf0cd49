package cli

import (
	"github.com/leapstack-labs/leaptoken/internal/config"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/spf13/cobra"
)

// completeThemes offers the theme names found in the configured themes
// directory. Completion runs without PersistentPreRunE, so configuration is
// loaded here.
func completeThemes(cfgFile *string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		cfg, err := config.Load(*cfgFile, cmd.Flags())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		catalog, err := loader.LoadThemes(cmd.Context(), cfg.ThemesDir, nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
	}
}
