package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaptoken/internal/export"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the composed theme as CSS, SCSS, JSON or YAML",
		Long: `Render every token of the composed theme in one output format.

Formats:
  css     CSS custom properties under a selector (default ":root")
  scss    SCSS variables
  json    nested JSON with web values
  native  flat JSON keyed by camelCase names with native values
  yaml    flat YAML with web values

Output goes to stdout unless --out names a file or an existing directory.`,
		Example: `  # CSS variables for the dark theme
  leaptoken export --theme dark

  # Scope the variables to a class
  leaptoken export --theme dark --selector '[data-theme="dark"]'

  # Native JSON into a build directory
  leaptoken export --format native --out dist/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format (css, scss, json, native, yaml)")
	cmd.Flags().String("selector", "", "CSS selector wrapping custom properties")
	cmd.Flags().String("out", "", "Output file or directory (default stdout)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return export.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	exporter, err := export.Lookup(cfg.Export.Format)
	if err != nil {
		return err
	}

	_, resolved, err := cmdCtx.Compose(cmd)
	if err != nil {
		return err
	}

	// Render fully before touching the destination so a failed export
	// leaves any previous file intact.
	var buf bytes.Buffer
	opts := export.Options{Selector: cfg.Export.Selector, RemBase: cfg.RemBase}
	if err := export.Export(&buf, exporter.Format(), resolved, opts); err != nil {
		return err
	}

	if cfg.Export.Out == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path := exportPath(cfg.Export.Out, resolved.Overrides(), exporter.Extension())
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmdCtx.Logger.Debug("exported theme", "format", exporter.Format(), "path", path, "tokens", resolved.Set().Len())
	cmdCtx.Renderer.Success(fmt.Sprintf("Exported %d tokens to %s", resolved.Set().Len(), path))
	return nil
}

// exportPath returns out, or a file named after the themes when out is a
// directory.
func exportPath(out string, themes []string, ext string) string {
	isDir := strings.HasSuffix(out, string(filepath.Separator)) || strings.HasSuffix(out, "/")
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		isDir = true
	}
	if !isDir {
		return out
	}
	name := "tokens"
	if len(themes) > 0 {
		name = strings.Join(themes, "-")
	}
	return filepath.Join(out, name+ext)
}
