package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"golang.org/x/sync/errgroup"
)

// Extensions lists the definition file extensions the loader reads.
var Extensions = []string{".yaml", ".yml", ".json"}

// IsDefinitionFile reports whether path has a definition file extension.
func IsDefinitionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DiscoverFiles returns every definition file under dir, sorted.
// Hidden files and directories are skipped.
func DiscoverFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsDefinitionFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

type fileResult[T any] struct {
	file  string
	value T
}

// parseAll reads and parses files concurrently. Results keep the order of
// files so loading stays deterministic.
func parseAll[T any](ctx context.Context, files []string, parse func(string, []byte) (T, error)) ([]fileResult[T], error) {
	results := make([]fileResult[T], len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			v, err := parse(file, data)
			if err != nil {
				return err
			}
			results[i] = fileResult[T]{file: file, value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadTokens loads every definition file under dir into one token set.
// A token defined in two files is an error.
func LoadTokens(ctx context.Context, dir string, logger *slog.Logger) (*token.Set, error) {
	logger = orDiscard(logger)
	files, err := DiscoverFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover token files: %w", err)
	}

	results, err := parseAll(ctx, files, ParseTokens)
	if err != nil {
		return nil, err
	}

	origin := make(map[string]string)
	var all []token.Token
	for _, r := range results {
		for _, t := range r.value {
			if first, dup := origin[t.Name]; dup {
				return nil, &DuplicateFileTokenError{Name: t.Name, First: first, Second: r.file}
			}
			origin[t.Name] = r.file
			all = append(all, t)
		}
		logger.Debug("loaded token file", slog.String("file", r.file), slog.Int("tokens", len(r.value)))
	}

	set, err := token.NewSet(all...)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded tokens", slog.String("dir", dir), slog.Int("files", len(files)), slog.Int("tokens", set.Len()))
	return set, nil
}

// LoadThemes loads every theme file under dir into a catalog.
// A missing directory yields an empty catalog.
func LoadThemes(ctx context.Context, dir string, logger *slog.Logger) (*theme.Catalog, error) {
	logger = orDiscard(logger)
	catalog := theme.NewCatalog()
	if dir == "" {
		return catalog, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("themes directory not found", slog.String("dir", dir))
		return catalog, nil
	}

	files, err := DiscoverFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover theme files: %w", err)
	}
	results, err := parseAll(ctx, files, ParseTheme)
	if err != nil {
		return nil, err
	}

	origin := make(map[string]string)
	for _, r := range results {
		name := r.value.Name
		if first, dup := origin[name]; dup {
			return nil, &DuplicateThemeError{Name: name, First: first, Second: r.file}
		}
		origin[name] = r.file
		catalog.Add(r.value)
		logger.Debug("loaded theme", slog.String("name", name), slog.String("file", r.file), slog.Int("tokens", len(r.value.Tokens)))
	}
	return catalog, nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
