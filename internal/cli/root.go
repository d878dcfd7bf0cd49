// Package cli provides the command-line interface for leaptoken.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/leaptoken/internal/cli/commands"
	"github.com/leapstack-labs/leaptoken/internal/config"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "leaptoken",
		Short: "leaptoken - Design token resolver and theme composer",
		Long: `leaptoken resolves design tokens into platform values and composes themes.

Tokens are defined once in YAML or JSON, grouped by category, and may alias
one another. Themes override a subset of tokens and stack in order. The
result can be listed, checked, exported as CSS, SCSS, JSON or YAML, or
served over HTTP with live reload.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help, completion and init
			switch cmd.Name() {
			case "help", "completion", "__complete", "init", "version":
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.ConfigFile != "" {
				logger.Debug("using config file", slog.String("path", cfg.ConfigFile))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Design token resolver built with Go
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./leaptoken.yaml)")
	flags.String("tokens-dir", "", "Path to tokens directory")
	flags.String("themes-dir", "", "Path to themes directory")
	flags.String("platform", "", "Target platform (web|native)")
	flags.StringSlice("theme", nil, "Themes to compose onto the base set, in order")
	flags.Float64("rem-base", 0, "Pixels per rem for native values")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("platform", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return platform.List(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("theme", completeThemes(&cfgFile))

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewResolveCommand())
	rootCmd.AddCommand(commands.NewComposeCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger logs warnings to stderr, or everything with --verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leaptoken.

To load completions:

Bash:
  $ source <(leaptoken completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ leaptoken completion bash > /etc/bash_completion.d/leaptoken
  # macOS:
  $ leaptoken completion bash > $(brew --prefix)/etc/bash_completion.d/leaptoken

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ leaptoken completion zsh > "${fpath[1]}/_leaptoken"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ leaptoken completion fish | source

  # To load completions for each session, execute once:
  $ leaptoken completion fish > ~/.config/fish/completions/leaptoken.fish

PowerShell:
  PS> leaptoken completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> leaptoken completion powershell > leaptoken.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
