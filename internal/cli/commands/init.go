package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leaptoken project",
		Long: `Initialize a new leaptoken project with a starter token set.

This creates:
  - tokens/ with colour, spacing, radius, shadow and typography tokens
  - themes/dark.yaml, an override that darkens surfaces and text
  - leaptoken.yaml configuration file`,
		Example: `  # Initialize in current directory
  leaptoken init

  # Initialize in a new directory
  leaptoken init design-system

  # Force overwrite existing files
  leaptoken init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			mode := output.ModeAuto
			if cfg := config.GetConfig(cmd.Context()); cfg != nil {
				mode = output.Mode(cfg.OutputFormat)
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("leaptoken project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit your tokens in tokens/")
	r.Println("  2. Run 'leaptoken list' to see every token")
	r.Println("  3. Run 'leaptoken export --theme dark' to generate CSS")
	r.Println("  4. Run 'leaptoken serve --watch' for a live preview API")

	return nil
}
