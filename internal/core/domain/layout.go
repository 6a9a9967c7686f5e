package domain

import "path/filepath"

const (
	// StateDirName is the name of the directory holding generator state under the root.
	StateDirName = ".cachegen"

	// ManifestFileName records the files written by the last run.
	ManifestFileName = "manifest.json"

	// EnvFileName is loaded for environment overrides when present.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// GeneratedHeader is the first line of every generated file. Files without
	// it are never overwritten or removed.
	GeneratedHeader = "// Code generated by cachegen. DO NOT EDIT."
)

// DefaultManifestPath returns where the manifest of written files lives.
// It joins root, .cachegen and manifest.json.
func DefaultManifestPath(root string) string {
	return filepath.Join(root, StateDirName, ManifestFileName)
}
