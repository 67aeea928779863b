package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Predicate decides whether r, the offset-th rune of a run (starting at 0),
// belongs to the run. Predicates may be closures carrying state across
// calls of one scan; they must not use the scanner they are passed to.
type Predicate func(r rune, offset int) bool

// ScanUntilCharInSet makes the text up to the first character in set the
// token and stops on that character, which becomes the delimiter. With
// allowEOS the end of the source also ends the token (the delimiter is
// then EOS); otherwise a missing delimiter fails without moving. It fails
// at the end of the source.
func (s *Scanner) ScanUntilCharInSet(set string, allowEOS bool) bool {
	if s.AtEnd() {
		return false
	}
	start := s.index
	i := strings.IndexAny(s.src[start:], set)
	if i < 0 {
		if !allowEOS {
			return false
		}
		s.SetIndex(len(s.src))
		s.delim = EOS
		s.setToken(start, s.index)
		return true
	}
	s.SetIndex(start + i)
	s.delim = s.ch
	s.setToken(start, s.index)
	return true
}

// ScanUntilString is ScanUntilCharInSet for string candidates, resolved as
// in SkipUntilString. The match is not consumed.
func (s *Scanner) ScanUntilString(candidates []string, allowEOS bool) bool {
	if s.AtEnd() {
		return false
	}
	start := s.index
	at, m := indexCandidates(s.src, start, candidates)
	if at < 0 {
		if !allowEOS {
			return false
		}
		at, m = len(s.src), ""
	}
	s.SetIndex(at)
	s.match = m
	s.setToken(start, at)
	return true
}

// scanWhile returns the end offset of the run accepted by pred starting at
// the cursor, without moving.
func (s *Scanner) scanWhile(pred Predicate) int {
	i, n := s.index, 0
	for i < len(s.src) {
		r, w := utf8.DecodeRuneInString(s.src[i:])
		if !pred(r, n) {
			break
		}
		i += w
		n++
	}
	return i
}

// ScanWhile makes the run of characters accepted by pred the token. It
// fails without moving if the first character is rejected.
func (s *Scanner) ScanWhile(pred Predicate) bool {
	end := s.scanWhile(pred)
	if end == s.index {
		return false
	}
	s.setToken(s.index, end)
	s.SetIndex(end)
	return true
}

// ScanWhileCharInSet makes the run of characters in set the token.
func (s *Scanner) ScanWhileCharInSet(set string) bool {
	return s.ScanWhile(func(r rune, _ int) bool { return strings.ContainsRune(set, r) })
}

// ScanToEndOfLine makes the rest of the current line the token and stops
// on the line terminator. It fails at the end of the source.
func (s *Scanner) ScanToEndOfLine() bool {
	return s.ScanUntilCharInSet("\r\n", true)
}

// IsIdentStart accepts letters and underscore.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentPart accepts letters, digits and underscore.
func IsIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func identifier(r rune, offset int) bool {
	if offset == 0 {
		return IsIdentStart(r)
	}
	return IsIdentPart(r)
}

// ScanIdentifier skips whitespace and comments and scans an identifier
// (a letter or underscore followed by letters, digits or underscores).
// On failure the skipped blanks are given back too.
func (s *Scanner) ScanIdentifier() bool {
	start := s.index
	if !s.SkipWhitespaceAndComments() {
		return false
	}
	if !s.ScanWhile(identifier) {
		s.SetIndex(start)
		return false
	}
	return true
}

// MatchChar reports whether ch is the current character and consumes it
// when asked to.
func (s *Scanner) MatchChar(ch rune, consume bool) bool {
	if ch == EOS || s.ch != ch {
		return false
	}
	s.delim = ch
	if consume {
		s.setToken(s.index, s.index+s.width)
		s.next()
	}
	return true
}

// MatchString reports whether the source continues with text at the
// cursor, comparing case-insensitively with fold. With consume the match
// becomes the token and the cursor moves past it. An empty text never
// matches.
func (s *Scanner) MatchString(text string, fold, consume bool) bool {
	if text == "" {
		return false
	}
	rest := s.src[s.index:]
	var cand string
	switch {
	case strings.HasPrefix(rest, text):
		cand = rest[:len(text)]
	case fold:
		n, ok := foldPrefix(rest, text)
		if !ok {
			return false
		}
		cand = rest[:n]
	default:
		return false
	}
	s.match = cand
	if consume {
		s.setToken(s.index, s.index+len(cand))
		s.SetIndex(s.index + len(cand))
	}
	return true
}

// foldPrefix matches text against the start of src rune by rune under
// simple case folding and returns the byte length of the match in src.
func foldPrefix(src, text string) (int, bool) {
	i := 0
	for _, tr := range text {
		if i >= len(src) {
			return 0, false
		}
		r, w := utf8.DecodeRuneInString(src[i:])
		if r != tr && !strings.EqualFold(string(r), string(tr)) {
			return 0, false
		}
		i += w
	}
	return i, true
}

func (s *Scanner) isQuote(r rune) bool {
	return r != EOS && strings.ContainsRune(s.quotes, r)
}

// literal scans a single-line string literal opened by the quote at the
// cursor. A backslash escapes the next character. On success the cursor is
// behind the closing quote and the content range is returned; otherwise
// nothing moves.
func (s *Scanner) literal() (from, to int, ok bool) {
	q := s.ch
	if !s.isQuote(q) {
		return 0, 0, false
	}
	qs := string(q)
	from = s.index + s.width
	for i := from; i < len(s.src); {
		switch c := s.src[i]; {
		case c == '\n' || c == '\r':
			return 0, 0, false
		case c == '\\':
			if i+1 < len(s.src) && s.src[i+1] != '\n' && s.src[i+1] != '\r' {
				i += 2
			} else {
				i++
			}
		case strings.HasPrefix(s.src[i:], qs):
			s.SetIndex(i + len(qs))
			s.delim = q
			return from, i, true
		default:
			i++
		}
	}
	return 0, 0, false
}

// ScanString scans a single-line string literal at the cursor; the token
// is its content without the quotes, escapes untouched. An unterminated
// literal is a definitive failure.
func (s *Scanner) ScanString() bool {
	if !s.isQuote(s.ch) {
		return false
	}
	start, q := s.index, s.ch
	from, to, ok := s.literal()
	if !ok {
		return s.FailAt(start, fmt.Sprintf("unterminated string literal, missing closing %q", q), "string")
	}
	s.setToken(from, to)
	return true
}
