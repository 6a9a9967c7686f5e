package domain

import "time"

// ManifestVersion is the format version written to new manifests.
const ManifestVersion = "1"

// ManifestEntry records one generated file.
type ManifestEntry struct {
	Path      string    `json:"path,omitzero"`
	Class     string    `json:"class,omitzero"`
	Package   string    `json:"package,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Size      int64     `json:"size,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Manifest is the persisted record of the files a root's last run produced, keyed by path.
type Manifest struct {
	Version string                   `json:"version"`
	Entries map[string]ManifestEntry `json:"entries"`
}
