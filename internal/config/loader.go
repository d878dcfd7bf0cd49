package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LEAPTOKEN_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// sections are the nested config blocks. Env and flag keys starting with
// "<section>_" are mapped into them.
var sections = []string{"export", "serve"}

// flagKeys maps flag names whose config key differs from the snake_cased name.
var flagKeys = map[string]string{
	"theme":    "themes",
	"format":   "export.format",
	"selector": "export.selector",
	"out":      "export.out",
	"host":     "serve.host",
	"port":     "serve.port",
	"watch":    "serve.watch",
	"debounce": "serve.debounce",
}

// configKeys is the set of top-level keys a flag may set.
var configKeys = map[string]bool{
	"tokens_dir": true,
	"themes_dir": true,
	"platform":   true,
	"rem_base":   true,
	"output":     true,
	"verbose":    true,
}

// configExistsIn returns the config file in dir, or "".
func configExistsIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// FindProjectRoot searches upward from startDir for a leaptoken config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if configExistsIn(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root.
// Priority:
//  1. Directory of an explicit --config file
//  2. Parent of --tokens-dir when that parent holds a config file
//  3. Search upward from cwd for leaptoken.yaml
//  4. cwd
func inferProjectRoot(cwd, cfgFile string, flags *pflag.FlagSet) string {
	if cfgFile != "" {
		return filepath.Dir(absFrom(cwd, cfgFile))
	}
	if v := changedString(flags, "tokens-dir"); v != "" {
		parent := filepath.Dir(absFrom(cwd, v))
		if configExistsIn(parent) != "" {
			return parent
		}
	}
	if root := FindProjectRoot(cwd); root != "" {
		return root
	}
	return cwd
}

func changedString(flags *pflag.FlagSet, name string) string {
	if flags == nil || flags.Lookup(name) == nil || !flags.Changed(name) {
		return ""
	}
	v, _ := flags.GetString(name)
	return v
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func keepDirSuffix(orig, resolved string) string {
	sep := string(filepath.Separator)
	if resolved != "" && !strings.HasSuffix(resolved, sep) && (strings.HasSuffix(orig, "/") || strings.HasSuffix(orig, sep)) {
		return resolved + sep
	}
	return resolved
}

// envKey transforms LEAPTOKEN_SERVE_PORT into serve.port.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// flagKey maps a flag name to its config key, or "" for flags that are not
// configuration (help, category filters and the like).
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	key := strings.ReplaceAll(name, "-", "_")
	if configKeys[key] {
		return key
	}
	return ""
}

// Load loads configuration from file, environment variables and flags,
// relative to the current working directory.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return LoadFrom(cwd, cfgFile, flags)
}

// LoadFrom is Load with an explicit working directory.
func LoadFrom(cwd, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	projectRoot := inferProjectRoot(cwd, cfgFile, flags)

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path or whatever sits at the project root
	if cfgFile != "" {
		cfgFile = absFrom(cwd, cfgFile)
	} else {
		cfgFile = configExistsIn(projectRoot)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables (LEAPTOKEN_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := flagKey(f.Name)
			if key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal. Env values arrive as strings, so durations and
	// comma-separated lists need decode hooks.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Paths given as flags are relative to cwd, everything else to the
	// project root.
	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = cfgFile
	if v := changedString(flags, "tokens-dir"); v != "" {
		cfg.TokensDir = absFrom(cwd, v)
	} else {
		cfg.TokensDir = resolvePathRelativeTo(cfg.TokensDir, projectRoot)
	}
	if v := changedString(flags, "themes-dir"); v != "" {
		cfg.ThemesDir = absFrom(cwd, v)
	} else {
		cfg.ThemesDir = resolvePathRelativeTo(cfg.ThemesDir, projectRoot)
	}
	// A trailing slash on out marks a directory that may not exist yet.
	if v := changedString(flags, "out"); v != "" {
		cfg.Export.Out = keepDirSuffix(v, absFrom(cwd, v))
	} else {
		cfg.Export.Out = keepDirSuffix(cfg.Export.Out, resolvePathRelativeTo(cfg.Export.Out, projectRoot))
	}
	cfg.Themes = trimThemes(cfg.Themes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func trimThemes(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
