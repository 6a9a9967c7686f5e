package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests rendered as 16 hex digits.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Digest returns the digest of data.
func (h *Hasher) Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// FileDigest streams the file at path through the hash.
func (h *Hasher) FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", d.Sum64()), nil
}
