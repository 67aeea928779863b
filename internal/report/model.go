package report

import (
	"github.com/cybertec-postgresql/scankit/internal/database"
	"github.com/cybertec-postgresql/scankit/internal/errors"
	"github.com/cybertec-postgresql/scankit/internal/sqlscript"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

// Report collects the per-file results of one command run
type Report struct {
	Files []*FileReport `json:"files"`
}

// FileReport holds what a command produced for a single file
type FileReport struct {
	Path        string                 `json:"path"`
	Statements  []*sqlscript.Statement `json:"statements,omitempty"`
	Diagnostics []Diagnostic           `json:"diagnostics,omitempty"`
	Applied     *database.Result       `json:"applied,omitempty"`
}

// Diagnostic is a positioned problem found in a file
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Context string `json:"context,omitempty"`
	Message string `json:"message"`
	Excerpt string `json:"excerpt,omitempty"`
}

// FromScanError converts a scanner error record
func FromScanError(err *scanner.Error) Diagnostic {
	return Diagnostic{
		File:    err.Filename,
		Line:    err.Line,
		Column:  err.Column,
		Context: err.Context,
		Message: err.Message,
		Excerpt: err.Excerpt,
	}
}

// FromParseError converts a parse error
func FromParseError(err *errors.ParseError) Diagnostic {
	return Diagnostic{
		File:    err.File,
		Line:    err.Line,
		Column:  err.Column,
		Message: err.Message,
		Excerpt: err.Excerpt,
	}
}

// FromExecutionError converts a statement rejected by the server
func FromExecutionError(err *errors.ExecutionError) Diagnostic {
	d := Diagnostic{
		File:    err.File,
		Line:    err.Line,
		Column:  err.Column,
		Context: "execute",
		Message: "execution failed",
	}
	if err.SQLError != nil {
		d.Message = err.SQLError.Code + ": " + err.SQLError.Message
	}
	return d
}

// Add appends a file report and returns it
func (r *Report) Add(path string) *FileReport {
	f := &FileReport{Path: path}
	r.Files = append(r.Files, f)
	return f
}

// HasDiagnostics reports whether any file has a diagnostic
func (r *Report) HasDiagnostics() bool {
	for _, f := range r.Files {
		if len(f.Diagnostics) > 0 {
			return true
		}
	}
	return false
}
