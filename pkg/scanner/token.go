package scanner

import (
	"strings"
	"unicode"
)

// setToken records [start, end) as the current token. Only successful
// primitives call it.
func (s *Scanner) setToken(start, end int) {
	s.start, s.end = start, end
}

// TokenStart returns the byte offset where the last token begins.
func (s *Scanner) TokenStart() int { return s.start }

// TokenEnd returns the byte offset just past the last token.
func (s *Scanner) TokenEnd() int { return s.end }

// TokenPresent reports whether the last token is non-empty.
func (s *Scanner) TokenPresent() bool { return s.end > s.start }

// Token returns the text of the last scanned token. It stays valid until
// the next successful scan primitive.
func (s *Scanner) Token() string {
	if !s.TokenPresent() {
		return ""
	}
	return s.src[s.start:s.end]
}

// ValidToken reports whether the token holds at least one non-whitespace
// character.
func (s *Scanner) ValidToken() bool {
	return strings.IndexFunc(s.Token(), func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// TrimmedToken returns the token without surrounding whitespace.
func (s *Scanner) TrimmedToken() string {
	return strings.TrimSpace(s.Token())
}

// StrippedToken returns the token with all comments removed. Comment runs
// take the whitespace that follows them along, newlines are kept. String
// literals are copied verbatim even if they contain comment markers.
func (s *Scanner) StrippedToken() string {
	return StripComments(s.Token(), s.comments, s.quotes)
}

// StripComments removes comments described by spec from text using a
// scanner of its own. quotes lists the string delimiters whose literals are
// left alone. An unterminated block comment is kept as is.
func StripComments(text string, spec CommentSpec, quotes string) string {
	if !spec.HasLine() && !spec.HasBlock() {
		return text
	}
	sub := New(text, WithComments(spec), WithQuotes(quotes), WithErrorSink(Discard), WithLogger(quiet))

	var b strings.Builder
	mark := 0
	for !sub.AtEnd() {
		switch {
		case sub.AtComment():
			at := sub.index
			if !sub.SkipComments(true) {
				// unterminated: keep the remainder untouched
				sub.SetIndex(len(text))
				continue
			}
			b.WriteString(text[mark:at])
			mark = sub.index
		case sub.isQuote(sub.ch):
			if _, _, ok := sub.literal(); !ok {
				sub.next()
			}
		default:
			sub.next()
		}
	}
	b.WriteString(text[mark:])
	return b.String()
}

// Delimiter returns the character matched by the last Skip/Scan call that
// stops at a character set. It is overwritten by the next such call.
func (s *Scanner) Delimiter() rune { return s.delim }

// Match returns the string matched by the last string-candidate call.
func (s *Scanner) Match() string { return s.match }
