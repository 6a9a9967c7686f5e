package domain

import "time"

const (
	// ConfigFileName is the optional project configuration file.
	ConfigFileName = "cachegen.yaml"
	// ConfigVersion is the only cachegen.yaml version understood.
	ConfigVersion = "1"
	// DefaultEvictSuffix is appended to the wrapper name to form the eviction function name.
	DefaultEvictSuffix = "_Evict"
	// DefaultFileSuffix is appended to the snake-cased class name to form the output file name.
	DefaultFileSuffix = "_cachegen.go"
	// DefaultDebounce is the quiet period before a watch-mode regeneration.
	DefaultDebounce = 200 * time.Millisecond
)

// Config is the resolved generator configuration.
type Config struct {
	// Root is the directory the configuration was found in.
	Root        string
	Patterns    []string
	EvictSuffix string
	FileSuffix  string
	Hooks       bool
	Tags        []string
	Debounce    time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		Patterns:    []string{"./..."},
		EvictSuffix: DefaultEvictSuffix,
		FileSuffix:  DefaultFileSuffix,
		Debounce:    DefaultDebounce,
	}
}
