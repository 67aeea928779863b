package errors

import (
	"fmt"

	"github.com/cybertec-postgresql/scankit/pkg/scanner"
	"github.com/jackc/pgx/v5/pgconn"
)

// ParseError represents a positioned failure while scanning a source file
type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
	Excerpt string // source lines leading up to the failure
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(file string, line, column int, message string) *ParseError {
	return &ParseError{
		File:    file,
		Line:    line,
		Column:  column,
		Message: message,
	}
}

// NewParseErrorFromScan converts a scanner error record into a ParseError.
// The construct being scanned, if any, prefixes the message.
func NewParseErrorFromScan(err *scanner.Error) *ParseError {
	msg := err.Message
	if err.Context != "" {
		msg = err.Context + ": " + msg
	}
	return &ParseError{
		File:    err.Filename,
		Line:    err.Line,
		Column:  err.Column,
		Message: msg,
		Excerpt: err.Excerpt,
	}
}

// ConnectionError represents PostgreSQL connection failure
type ConnectionError struct {
	Message    string
	Suggestion string // hint shown to the user, may be empty
}

func (e *ConnectionError) Error() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Suggestion)
}

// ExecutionError represents a statement of a script rejected by the server.
// Line and Column locate the failure in the script file.
type ExecutionError struct {
	File     string
	Line     int
	Column   int
	SQLError *pgconn.PgError // PostgreSQL error details
}

func (e *ExecutionError) Error() string {
	if e.SQLError != nil {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.SQLError.Code, e.SQLError.Message)
	}
	return fmt.Sprintf("%s:%d:%d: execution failed", e.File, e.Line, e.Column)
}

func (e *ExecutionError) Unwrap() error {
	if e.SQLError == nil {
		return nil
	}
	return e.SQLError
}

// NewExecutionError creates a new ExecutionError
func NewExecutionError(file string, line, column int, sqlError *pgconn.PgError) *ExecutionError {
	return &ExecutionError{
		File:     file,
		Line:     line,
		Column:   column,
		SQLError: sqlError,
	}
}
