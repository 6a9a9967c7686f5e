// Package config loads cachegen.yaml, .env and CACHEGEN_* overrides into a domain.Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	// Environ returns the process environment as KEY=VALUE pairs.
	Environ func() []string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Environ: os.Environ}
}

// Load resolves the configuration for cwd. Values are layered as defaults,
// then cachegen.yaml, then .env, then the process environment.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	configPath, found := findConfigFile(abs)
	root := abs
	if found {
		root = filepath.Dir(configPath)
	}
	cfg := domain.DefaultConfig(root)

	if found {
		file, err := readConfigFile(configPath)
		if err != nil {
			return domain.Config{}, err
		}
		if err := applyFile(&cfg, file); err != nil {
			return domain.Config{}, zerr.With(err, "file", configPath)
		}
	}

	overrides, err := l.parseEnv(root)
	if err != nil {
		return domain.Config{}, err
	}
	applyEnv(&cfg, overrides)

	if err := Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for cachegen.yaml.
func findConfigFile(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func readConfigFile(path string) (*ConfigFile, error) {
	//nolint:gosec // path is discovered by walking up from the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	return &file, nil
}

func applyFile(cfg *domain.Config, file *ConfigFile) error {
	if file.Version != "" && file.Version != domain.ConfigVersion {
		return zerr.With(domain.ErrUnsupportedConfigVersion, "version", file.Version)
	}
	if len(file.Patterns) > 0 {
		cfg.Patterns = file.Patterns
	}
	if file.EvictSuffix != nil {
		cfg.EvictSuffix = *file.EvictSuffix
	}
	if file.FileSuffix != nil {
		cfg.FileSuffix = *file.FileSuffix
	}
	if file.Hooks != nil {
		cfg.Hooks = *file.Hooks
	}
	if len(file.Tags) > 0 {
		cfg.Tags = file.Tags
	}
	if file.Watch != nil && file.Watch.Debounce != "" {
		d, err := time.ParseDuration(file.Watch.Debounce)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "watch.debounce", file.Watch.Debounce)
		}
		cfg.Debounce = d
	}
	return nil
}

// parseEnv reads CACHEGEN_* from the .env file at root overlaid with the
// process environment. A broken .env is reported and skipped.
func (l *Loader) parseEnv(root string) (EnvOverrides, error) {
	environment := make(map[string]string)

	envPath := filepath.Join(root, domain.EnvFileName)
	dotenv, err := godotenv.Read(envPath)
	switch {
	case err == nil:
		maps.Copy(environment, dotenv)
	case errors.Is(err, fs.ErrNotExist):
	default:
		l.Logger.Warn(fmt.Sprintf("ignoring %s: %v", envPath, err))
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	maps.Copy(environment, env.ToMap(environ()))

	overrides, err := env.ParseAsWithOptions[EnvOverrides](env.Options{Environment: environment})
	if err != nil {
		return EnvOverrides{}, zerr.Wrap(err, domain.ErrConfigEnvFailed.Error())
	}
	return overrides, nil
}

func applyEnv(cfg *domain.Config, o EnvOverrides) {
	if len(o.Patterns) > 0 {
		cfg.Patterns = o.Patterns
	}
	if o.EvictSuffix != nil {
		cfg.EvictSuffix = *o.EvictSuffix
	}
	if o.FileSuffix != nil {
		cfg.FileSuffix = *o.FileSuffix
	}
	if o.Hooks != nil {
		cfg.Hooks = *o.Hooks
	}
	if len(o.Tags) > 0 {
		cfg.Tags = o.Tags
	}
	if o.Debounce != nil {
		cfg.Debounce = *o.Debounce
	}
}

// Validate checks the values a generator run depends on.
func Validate(cfg domain.Config) error {
	if len(cfg.Patterns) == 0 {
		return zerr.With(domain.ErrInvalidConfig, "patterns", "empty")
	}
	if cfg.EvictSuffix == "" || !isIdentTail(cfg.EvictSuffix) {
		return zerr.With(domain.ErrInvalidConfig, "evictSuffix", cfg.EvictSuffix)
	}
	if !strings.HasSuffix(cfg.FileSuffix, ".go") || strings.HasSuffix(cfg.FileSuffix, "_test.go") ||
		strings.ContainsRune(cfg.FileSuffix, filepath.Separator) {
		return zerr.With(domain.ErrInvalidConfig, "fileSuffix", cfg.FileSuffix)
	}
	if cfg.Debounce < 0 {
		return zerr.With(domain.ErrInvalidConfig, "debounce", cfg.Debounce.String())
	}
	return nil
}

// isIdentTail reports whether s can follow an identifier and keep it one.
func isIdentTail(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
