/*
 * Package scanner is a cursor based toolkit for hand-written lexers and
 * parsers.
 *
 * A Scanner owns an immutable source string, a cursor into it, the byte
 * range of the last scanned token and a single-slot error record.  The
 * primitives (Skip*, Scan*, Match*, Parse*) report success as a bool and
 * never consume input when they fail, so callers can try alternatives:
 *
 *	s := scanner.New(src, scanner.WithComments(scanner.CComments))
 *	if s.ScanIdentifier() {
 *	    name := s.Token()
 *	    args, ok := s.ScanList(scanner.DefaultList)
 *	    ...
 *	}
 *	if err := s.Err(); err != nil {
 *	    fmt.Println(err) // file:line:col: context: message
 *	}
 *
 * Index values are byte offsets into the source; the current character is
 * the rune decoded at the index.  A Scanner is not safe for concurrent use.
 */
package scanner

import (
	"unicode/utf8"

	"github.com/cybertec-postgresql/scankit/internal/logger"
)

// EOS is the current character once the cursor reached the end of the source.
const EOS rune = -1

// DefaultQuotes are the string literal delimiters used unless WithQuotes is given.
const DefaultQuotes = "\"'"

// DefaultExcerptLines is the number of lines preceding an error line that
// are copied into Error.Excerpt.
const DefaultExcerptLines = 2

// Option configures a Scanner.
type Option func(*Scanner)

// WithComments sets the comment syntax recognised by the whitespace and
// block scanners.
func WithComments(spec CommentSpec) Option {
	return func(s *Scanner) {
		s.comments = spec
	}
}

// WithQuotes sets the characters that open (and close) string literals.
// An empty set disables literal shielding.
func WithQuotes(quotes string) Option {
	return func(s *Scanner) {
		s.quotes = quotes
	}
}

// WithFilename sets the file name stored in error records.
func WithFilename(name string) Option {
	return func(s *Scanner) {
		s.filename = name
	}
}

// WithErrorSink installs a sink that receives every definitive failure.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *Scanner) {
		s.sink = sink
	}
}

// WithExcerptLines sets how many preceding lines an error excerpt carries.
func WithExcerptLines(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.excerptLines = n
		}
	}
}

// Logger receives failure diagnostics. *logger.Logger of this module
// satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// Scanner is a character cursor over an in-memory source.
type Scanner struct {
	src   string
	index int
	ch    rune // rune at index, EOS at end
	width int  // byte width of ch

	// token range [start, end) of the last successful scan
	start int
	end   int

	delim rune   // last matched character
	match string // last matched string

	comments     CommentSpec
	quotes       string
	filename     string
	excerptLines int
	sink         ErrorSink
	err          *Error
	log          Logger
}

// New returns a Scanner positioned at the start of src.
func New(src string, opts ...Option) *Scanner {
	s := &Scanner{
		quotes:       DefaultQuotes,
		excerptLines: DefaultExcerptLines,
		log:          logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(src)
	return s
}

// Reset replaces the source and rewinds the cursor. The token range,
// delimiter record and error record are cleared.
func (s *Scanner) Reset(src string) {
	s.src = src
	s.start, s.end = 0, 0
	s.delim = EOS
	s.match = ""
	s.err = nil
	s.SetIndex(0)
}

// Source returns the text being scanned.
func (s *Scanner) Source() string { return s.src }

// Len returns the length of the source in bytes.
func (s *Scanner) Len() int { return len(s.src) }

// Index returns the byte offset of the cursor.
func (s *Scanner) Index() int { return s.index }

// Current returns the rune at the cursor, or EOS.
func (s *Scanner) Current() rune { return s.ch }

// AtEnd reports whether the cursor reached the end of the source.
func (s *Scanner) AtEnd() bool { return s.index >= len(s.src) }

// AtEndOfLine reports whether the current character is a line terminator.
func (s *Scanner) AtEndOfLine() bool { return s.ch == '\n' || s.ch == '\r' }

// Remaining returns the unscanned part of the source.
func (s *Scanner) Remaining() string { return s.src[s.index:] }

// Filename returns the name set by WithFilename.
func (s *Scanner) Filename() string { return s.filename }

// Comments returns the comment syntax of the scanner.
func (s *Scanner) Comments() CommentSpec { return s.comments }

// Quotes returns the string literal delimiters of the scanner.
func (s *Scanner) Quotes() string { return s.quotes }

// SetIndex moves the cursor to byte offset i. Offsets outside [0, Len()]
// are clamped to Len(). Every cursor movement goes through here.
func (s *Scanner) SetIndex(i int) {
	if i < 0 || i > len(s.src) {
		i = len(s.src)
	}
	s.index = i
	if i == len(s.src) {
		s.ch, s.width = EOS, 0
		return
	}
	s.ch, s.width = utf8.DecodeRuneInString(s.src[i:])
}

// Advance moves the cursor count runes forward, stopping at the end.
func (s *Scanner) Advance(count int) {
	i := s.index
	for ; count > 0 && i < len(s.src); count-- {
		_, w := utf8.DecodeRuneInString(s.src[i:])
		i += w
	}
	s.SetIndex(i)
}

// next advances exactly one rune.
func (s *Scanner) next() {
	if s.index < len(s.src) {
		s.SetIndex(s.index + s.width)
	}
}

// Peek returns the rune offset runes away from the cursor without moving
// it. Negative offsets look backwards. Out of range yields EOS.
func (s *Scanner) Peek(offset int) rune {
	i := s.index
	switch {
	case offset > 0:
		for ; offset > 0; offset-- {
			if i >= len(s.src) {
				return EOS
			}
			_, w := utf8.DecodeRuneInString(s.src[i:])
			i += w
		}
	case offset < 0:
		for ; offset < 0; offset++ {
			if i <= 0 {
				return EOS
			}
			_, w := utf8.DecodeLastRuneInString(s.src[:i])
			i -= w
		}
	}
	if i >= len(s.src) {
		return EOS
	}
	r, _ := utf8.DecodeRuneInString(s.src[i:])
	return r
}
