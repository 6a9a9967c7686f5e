package ports

import "go.trai.ch/cachegen/internal/core/domain"

// UnitWriter places generated files on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type UnitWriter interface {
	// Write stores the unit and reports whether the file content changed.
	// It refuses to replace a file that does not carry the generated header.
	Write(unit domain.SourceUnit) (domain.UnitStatus, error)

	// Remove deletes a previously generated file. Missing files are not an error.
	Remove(path string) error
}
