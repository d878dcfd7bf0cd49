package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/leaptoken/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the composed theme over HTTP",
		Long: `Start a preview server for the composed theme.

Endpoints:
  GET /healthz               server status and theme fingerprint
  GET /api/tokens            every token resolved for ?platform=
  GET /api/tokens/{name}     one token with its alias dependencies
  GET /api/themes            the catalog and the active composition
  GET /api/style/{component} box or text style built from token query params
  GET /themes/{theme}.css    CSS custom properties ("current" is the active theme)
  GET /events                server-sent events pushed on every theme change

With --watch, edits under the tokens and themes directories recompose the
theme. A broken edit is logged and the previous theme keeps serving.`,
		Example: `  # Serve the dark theme with live reload
  leaptoken serve --theme dark --watch

  # Listen on all interfaces
  leaptoken serve --host 0.0.0.0 --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("host", "", "Host to listen on (default 127.0.0.1)")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default 8787)")
	cmd.Flags().BoolP("watch", "w", false, "Recompose when token or theme files change")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a reload (default 200ms)")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cmdCtx.Cfg.ValidateDirectories(); err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, server.Config{
		TokensDir: cfg.TokensDir,
		ThemesDir: cfg.ThemesDir,
		Themes:    cfg.Themes,
		Platform:  cmdCtx.Platform(),
		RemBase:   cfg.RemBase,
		Selector:  cfg.Export.Selector,
		Addr:      cfg.Serve.Addr(),
		Watch:     cfg.Serve.Watch,
		Debounce:  cfg.Serve.Debounce,
		Logger:    cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	current := srv.Provider().Current()
	r.Success(fmt.Sprintf("Serving %s on http://%s", themeLabel(current.Overrides()), cfg.Serve.Addr()))
	if cfg.Serve.Watch {
		r.Muted(fmt.Sprintf("Watching %s and %s", cfg.TokensDir, cfg.ThemesDir))
	}
	r.Muted("Press Ctrl+C to stop")

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
