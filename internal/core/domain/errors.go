package domain

import "go.trai.ch/zerr"

var (
	// ErrDiagnosticsReported is returned when generation finished with error diagnostics.
	ErrDiagnosticsReported = zerr.New("generation reported diagnostics")

	// ErrPackageLoadFailed is returned when the Go packages cannot be loaded.
	ErrPackageLoadFailed = zerr.New("failed to load packages")

	// ErrPackageHasErrors is returned when a loaded package does not type-check.
	ErrPackageHasErrors = zerr.New("package has type errors")

	// ErrNoPackagesMatched is returned when the patterns match no packages.
	ErrNoPackagesMatched = zerr.New("no packages matched")

	// ErrFormatGenerated is returned when the synthesized source cannot be formatted.
	ErrFormatGenerated = zerr.New("failed to format generated source")

	// ErrRenderTemplate is returned when a unit template fails to execute.
	ErrRenderTemplate = zerr.New("failed to render generated source")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigEnvFailed is returned when environment overrides cannot be parsed.
	ErrConfigEnvFailed = zerr.New("failed to parse environment overrides")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrUnsupportedConfigVersion is returned for unknown config versions.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestWriteFailed is returned when the manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrUnitWriteFailed is returned when a generated file cannot be written.
	ErrUnitWriteFailed = zerr.New("failed to write generated file")

	// ErrUnitRemoveFailed is returned when a stale generated file cannot be removed.
	ErrUnitRemoveFailed = zerr.New("failed to remove generated file")

	// ErrRefusingToOverwrite is returned when the destination exists but was not generated.
	ErrRefusingToOverwrite = zerr.New("refusing to overwrite file not generated by cachegen")

	// ErrWatcherStart is returned when the file watcher cannot start.
	ErrWatcherStart = zerr.New("failed to start file watcher")
)
