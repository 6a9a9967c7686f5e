package config

import "time"

// ConfigFile is the shape of cachegen.yaml.
type ConfigFile struct {
	Version     string    `yaml:"version"`
	Patterns    []string  `yaml:"patterns"`
	EvictSuffix *string   `yaml:"evictSuffix"`
	FileSuffix  *string   `yaml:"fileSuffix"`
	Hooks       *bool     `yaml:"hooks"`
	Tags        []string  `yaml:"tags"`
	Watch       *WatchDTO `yaml:"watch"`
}

// WatchDTO configures watch mode.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}

// EnvOverrides are the CACHEGEN_* variables. Unset variables leave the
// pointer fields nil so the file values survive.
type EnvOverrides struct {
	Patterns    []string       `env:"CACHEGEN_PATTERNS" envSeparator:","`
	EvictSuffix *string        `env:"CACHEGEN_EVICT_SUFFIX"`
	FileSuffix  *string        `env:"CACHEGEN_FILE_SUFFIX"`
	Hooks       *bool          `env:"CACHEGEN_HOOKS"`
	Tags        []string       `env:"CACHEGEN_TAGS" envSeparator:","`
	Debounce    *time.Duration `env:"CACHEGEN_DEBOUNCE"`
}
