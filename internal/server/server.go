// Package server provides the live theme preview server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Config holds configuration for the preview server.
type Config struct {
	TokensDir string
	ThemesDir string
	// Themes are composed onto the base set, in order.
	Themes []string
	// Platform is used when a request does not name one.
	Platform platform.Platform
	RemBase  float64
	// Selector wraps the custom properties of /themes/{theme}.css.
	Selector string
	Addr     string
	Watch    bool
	Debounce time.Duration
	Logger   *slog.Logger
}

// Server serves the active theme and republishes it when definitions change.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	provider *theme.Provider

	// reloadMu serializes Reload so an older load never publishes last.
	reloadMu sync.Mutex

	mu      sync.RWMutex
	project *loader.Project
}

// New loads the project and composes the configured themes.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Platform == "" {
		cfg.Platform = platform.Web
	}
	if cfg.RemBase <= 0 {
		cfg.RemBase = platform.DefaultRemBase
	}
	if cfg.Selector == "" {
		cfg.Selector = ":root"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	project, err := loader.LoadProject(ctx, cfg.TokensDir, cfg.ThemesDir, cfg.Logger)
	if err != nil {
		return nil, err
	}
	initial, err := project.Compose(cfg.Themes...)
	if err != nil {
		return nil, fmt.Errorf("failed to compose themes: %w", err)
	}

	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		provider: theme.NewProvider(initial, cfg.Logger),
		project:  project,
	}, nil
}

// Provider returns the server's theme provider.
func (s *Server) Provider() *theme.Provider { return s.provider }

// Project returns the most recently loaded project.
func (s *Server) Project() *loader.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// Reload reloads definitions from disk and publishes the recomposed theme.
// On any error the active theme and project stay in place.
func (s *Server) Reload(ctx context.Context) (*theme.Resolved, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	project, err := loader.LoadProject(ctx, s.cfg.TokensDir, s.cfg.ThemesDir, s.logger)
	if err != nil {
		s.logger.Warn("reload failed, keeping active theme", slog.String("error", err.Error()))
		return nil, err
	}
	overrides, err := project.Themes.Overrides(s.cfg.Themes...)
	if err != nil {
		s.logger.Warn("reload failed, keeping active theme", slog.String("error", err.Error()))
		return nil, err
	}
	next, err := s.provider.Recompose(project.Base, overrides...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.project = project
	s.mu.Unlock()
	return next, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.logger.Info("starting preview server", slog.String("addr", "http://"+ln.Addr().String()))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch {
		watcher, err := s.newWatcher()
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		eg.Go(func() error {
			return s.watchLoop(egctx, watcher)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// newWatcher watches the token and theme directories recursively.
func (s *Server) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{s.cfg.TokensDir, s.cfg.ThemesDir} {
		if dir == "" {
			continue
		}
		if err := watchDirRecursive(watcher, dir); err != nil {
			// Don't fail - a missing themes directory is allowed
			s.logger.Warn("failed to watch directory", slog.String("dir", dir), slog.String("error", err.Error()))
		}
	}
	return watcher, nil
}

// watchLoop reloads after definition files change. Bursts of events are
// collapsed into one reload.
func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer func() { _ = watcher.Close() }()

	var (
		debounceTimer *time.Timer
		reloads       sync.WaitGroup
	)
	defer func() {
		if debounceTimer != nil && debounceTimer.Stop() {
			reloads.Done()
		}
		reloads.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(watcher, event.Name)
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !loader.IsDefinitionFile(event.Name) {
				continue
			}

			if debounceTimer != nil && debounceTimer.Stop() {
				reloads.Done()
			}
			reloads.Add(1)
			name := event.Name
			debounceTimer = time.AfterFunc(s.cfg.Debounce, func() {
				defer reloads.Done()
				s.logger.Debug("definition changed, reloading", slog.String("file", name))
				if _, err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed", slog.String("error", err.Error()))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", slog.String("error", err.Error()))
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
