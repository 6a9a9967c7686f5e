package fs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitWriter = (*Writer)(nil)

// Writer implements ports.UnitWriter. Files are replaced through a
// temporary sibling and a rename, so readers never see half a file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores unit at its path. Identical content is left untouched.
func (w *Writer) Write(unit domain.SourceUnit) (domain.UnitStatus, error) {
	path := unit.Path()

	//nolint:gosec // Path is built from the analyzed package directory
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !hasHeader(existing) {
			return domain.UnitStatusFailed, zerr.With(domain.ErrRefusingToOverwrite, "path", path)
		}
		if bytes.Equal(existing, unit.Source) {
			return domain.UnitStatusUnchanged, nil
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return domain.UnitStatusFailed, zerr.With(zerr.Wrap(err, domain.ErrUnitWriteFailed.Error()), "path", path)
	}

	if err := writeAtomic(path, unit.Source); err != nil {
		return domain.UnitStatusFailed, zerr.With(zerr.Wrap(err, domain.ErrUnitWriteFailed.Error()), "path", path)
	}
	return domain.UnitStatusWritten, nil
}

// Remove deletes a generated file. Missing files are ignored.
func (w *Writer) Remove(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if !IsGenerated(path) {
		return zerr.With(domain.ErrRefusingToOverwrite, "path", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrUnitRemoveFailed.Error()), "path", path)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
