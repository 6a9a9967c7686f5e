package domain

// UnitStatus is the outcome of emitting one generated file.
type UnitStatus string

const (
	// UnitStatusWritten indicates the file was created or its content changed.
	UnitStatusWritten UnitStatus = "written"
	// UnitStatusUnchanged indicates the file already held the generated content.
	UnitStatusUnchanged UnitStatus = "unchanged"
	// UnitStatusRemoved indicates a stale file from an earlier run was deleted.
	UnitStatusRemoved UnitStatus = "removed"
	// UnitStatusSkipped indicates nothing was written, as in a dry run.
	UnitStatusSkipped UnitStatus = "skipped"
	// UnitStatusFailed indicates the file could not be written.
	UnitStatusFailed UnitStatus = "failed"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
