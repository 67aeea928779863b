package scanner

import (
	"fmt"

	"github.com/cybertec-postgresql/scankit/internal/logger"
)

var quiet = logger.Discard()

// Error is the record of a definitive scan failure.
type Error struct {
	Message  string // what went wrong
	Context  string // which construct was being scanned, e.g. "block"
	Excerpt  string // source lines leading up to and including Line
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (e *Error) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Filename != "" {
		pos = e.Filename + ":" + pos
	}
	if e.Context == "" {
		return fmt.Sprintf("%s: %s", pos, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", pos, e.Context, e.Message)
}

// Position returns the location of the failure.
func (e *Error) Position() Position {
	return Position{Offset: e.Offset, Line: e.Line, Column: e.Column}
}

// ErrorSink receives definitive failures. Its result is handed back to the
// caller of the failing operation unchanged.
type ErrorSink func(err *Error) bool

// Discard is an ErrorSink that ignores the error and reports failure.
func Discard(*Error) bool { return false }

// Collect returns an ErrorSink appending every error to dst.
func Collect(dst *[]*Error) ErrorSink {
	return func(err *Error) bool {
		*dst = append(*dst, err)
		return false
	}
}

// Fail records a failure at the cursor position. See FailAt.
func (s *Scanner) Fail(message, context string) bool {
	return s.FailAt(s.index, message, context)
}

// FailAt records a failure at byte offset index (the cursor if index is
// out of range), replacing any previous record, and passes it to the error
// sink. It returns the sink's verdict, false without a sink. The cursor is
// not moved.
func (s *Scanner) FailAt(index int, message, context string) bool {
	s.record(index, message, context)
	return s.notify()
}

// record fills the error record without notifying the sink. Composite
// scanners record where the failure happened and notify once on the way
// out.
func (s *Scanner) record(index int, message, context string) {
	if index < 0 || index > len(s.src) {
		index = s.index
	}
	pos := Locate(s.src, index)
	s.err = &Error{
		Message:  message,
		Context:  context,
		Excerpt:  Excerpt(s.src, index, s.excerptLines),
		Filename: s.filename,
		Offset:   index,
		Line:     pos.Line,
		Column:   pos.Column,
	}
	s.log.Debugf("scanner: %v", s.err)
}

// notify hands the recorded failure to the sink.
func (s *Scanner) notify() bool {
	if s.sink != nil && s.err != nil {
		return s.sink(s.err)
	}
	return false
}

// Err returns the last recorded failure or nil.
func (s *Scanner) Err() *Error { return s.err }

// ClearError drops the recorded failure.
func (s *Scanner) ClearError() { s.err = nil }
