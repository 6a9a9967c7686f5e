package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// DiagnosticID is the stable identifier of a diagnostic.
type DiagnosticID string

// Diagnostic identifiers.
const (
	ContainerNotExtensible        DiagnosticID = "ContainerNotExtensible"
	VoidOrBareAsyncNotAllowed     DiagnosticID = "VoidOrBareAsyncNotAllowed"
	CacheSourceRequired           DiagnosticID = "CacheSourceRequired"
	NoEnricherCandidates          DiagnosticID = "NoEnricherCandidates"
	EnricherShapeMismatch         DiagnosticID = "EnricherShapeMismatch"
	NoKeyGeneratorCandidates      DiagnosticID = "NoKeyGeneratorCandidates"
	KeyGeneratorParameterMismatch DiagnosticID = "KeyGeneratorParameterMismatch"
	ResultShapeNotSupported       DiagnosticID = "ResultShapeNotSupported"
	GeneratedNameConflict         DiagnosticID = "GeneratedNameConflict"
	InvalidMarker                 DiagnosticID = "InvalidMarker"
)

var diagnosticCodes = map[DiagnosticID]string{
	ContainerNotExtensible:        "CG001",
	VoidOrBareAsyncNotAllowed:     "CG002",
	CacheSourceRequired:           "CG003",
	NoEnricherCandidates:          "CG004",
	EnricherShapeMismatch:         "CG004",
	NoKeyGeneratorCandidates:      "CG005",
	KeyGeneratorParameterMismatch: "CG006",
	ResultShapeNotSupported:       "CG007",
	GeneratedNameConflict:         "CG008",
	InvalidMarker:                 "CG009",
}

// Code returns the short code printed next to the message.
func (id DiagnosticID) Code() string {
	if c, ok := diagnosticCodes[id]; ok {
		return c
	}
	return "CG000"
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a build-time finding about the marked source.
type Diagnostic struct {
	ID       DiagnosticID
	Severity Severity
	Message  string
	Location Location
}

// Errorf builds an error-severity diagnostic.
func Errorf(id DiagnosticID, loc Location, format string, args ...any) Diagnostic {
	return Diagnostic{
		ID:       id,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// String renders the diagnostic the way compilers do.
func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s %s[%s]: %s", d.Severity, d.ID.Code(), d.ID, d.Message)
	if !d.Location.IsValid() {
		return msg
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Location.File, d.Location.Line, d.Location.Column, msg)
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}

// SortDiagnostics orders diagnostics by file, line, column, then id.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Location.File, b.Location.File),
			cmp.Compare(a.Location.Line, b.Location.Line),
			cmp.Compare(a.Location.Column, b.Location.Column),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
