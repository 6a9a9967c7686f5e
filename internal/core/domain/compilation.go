package domain

import "path/filepath"

const (
	// MemoPackage is the import path of the cache library generated code targets.
	MemoPackage = "go.trai.ch/cachegen/pkg/memo"
	// CacheTypeID identifies memo.Cache.
	CacheTypeID = MemoPackage + ".Cache"
	// EntryTypeID identifies *memo.Entry.
	EntryTypeID = "*" + MemoPackage + ".Entry"
	// ContextTypeID identifies context.Context.
	ContextTypeID = "context.Context"
)

// CacheType is the interface every cache source must satisfy.
func CacheType() Type {
	return NamedType(CacheTypeID, "memo.Cache", true, Import{Path: MemoPackage, Name: "memo"}).
		WithInterfaces(CacheTypeID)
}

// EntryType is the parameter type of entry enrichers.
func EntryType() Type {
	return OptionalOf(NamedType(MemoPackage+".Entry", "memo.Entry", false, Import{Path: MemoPackage, Name: "memo"}))
}

// Compilation is the analyzed view of one package.
type Compilation struct {
	// Package is the import path.
	Package string
	// Name is the package clause name.
	Name string
	// Dir is the directory holding the package sources.
	Dir string
	// Methods are the marked functions in source order; each Container is its class.
	Methods []*Symbol
	// ReferencesCache is set when the package can import the cache library.
	ReferencesCache bool
	// Diagnostics are problems found while reading markers.
	Diagnostics []Diagnostic
}

// SourceUnit is one generated file.
type SourceUnit struct {
	Class    string
	Package  string
	Dir      string
	FileName string
	Source   []byte
}

// Path returns the destination of the unit.
func (u SourceUnit) Path() string {
	return filepath.Join(u.Dir, u.FileName)
}
