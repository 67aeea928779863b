package sqlscript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokQuotedIdent
	tokString
	tokComment
	tokSemicolon
	tokOther
)

// token is a lexical unit of a script. pos and end delimit the token in
// the script; for strings and quoted identifiers text is the content
// between the quotes and bodyPos its offset.
type token struct {
	kind    tokenKind
	pos     int
	end     int
	text    string
	bodyPos int
}

// lexer cuts a SQL script into the few token kinds statement splitting
// needs. Quoted strings use doubled quotes as escape and may span lines.
type lexer struct {
	s *scanner.Scanner
}

func newLexer(src, filename string, opts []scanner.Option) *lexer {
	opts = append([]scanner.Option{scanner.WithFilename(filename)}, opts...)
	opts = append(opts,
		scanner.WithComments(scanner.SQLComments),
		scanner.WithQuotes(""),
		scanner.WithErrorSink(scanner.Discard),
	)
	return &lexer{s: scanner.New(src, opts...)}
}

func identPart(r rune, offset int) bool {
	if offset == 0 {
		return scanner.IsIdentStart(r)
	}
	return scanner.IsIdentPart(r) || r == '$'
}

func (l *lexer) next() (token, error) {
	s := l.s
	s.SkipWhitespace()
	start := s.Index()
	if s.AtEnd() {
		return token{kind: tokEOF, pos: start, end: start}, nil
	}

	if s.AtComment() {
		if !s.SkipComments(true) {
			return token{}, s.Err()
		}
		text := strings.TrimRightFunc(s.Source()[start:s.Index()], unicode.IsSpace)
		return token{kind: tokComment, pos: start, end: start + len(text)}, nil
	}

	ch := s.Current()
	switch {
	case ch == ';':
		s.Advance(1)
		return token{kind: tokSemicolon, pos: start, end: start + 1}, nil
	case ch == '\'':
		return l.quoted(tokString, '\'', start, start+1, false)
	case ch == '"':
		tok, err := l.quoted(tokQuotedIdent, '"', start, start+1, false)
		tok.text = strings.ReplaceAll(tok.text, `""`, `"`)
		return tok, err
	case (ch == 'E' || ch == 'e') && s.Peek(1) == '\'':
		return l.quoted(tokString, '\'', start, start+2, true)
	case ch == '$':
		if tag, ok := l.dollarTag(); ok {
			return l.dollarQuoted(tag, start)
		}
	case s.ScanWhile(identPart):
		return token{kind: tokIdent, pos: start, end: s.Index(), text: s.Token()}, nil
	}

	s.Advance(1)
	return token{kind: tokOther, pos: start, end: s.Index(), text: s.Source()[start:s.Index()]}, nil
}

// quoted scans a literal closed by q. A doubled q stands for itself; with
// backslash a backslash escapes the next character as well.
func (l *lexer) quoted(kind tokenKind, q rune, start, from int, backslash bool) (token, error) {
	s := l.s
	stops := string(q)
	if backslash {
		stops += `\`
	}
	s.SetIndex(from)
	for {
		if !s.SkipUntilCharInSet(stops, true) {
			s.SetIndex(start)
			s.FailAt(start, fmt.Sprintf("unterminated quoted string, missing closing %q", q), "string")
			return token{}, s.Err()
		}
		if s.Delimiter() == '\\' {
			s.Advance(1)
			continue
		}
		if s.Current() == q {
			s.Advance(1)
			continue
		}
		break
	}
	end := s.Index()
	return token{kind: kind, pos: start, end: end, text: s.Source()[from : end-1], bodyPos: from}, nil
}

// dollarTag returns the dollar quote opening at the cursor, such as "$$"
// or "$body$". A tag must not start with a digit, so positional
// parameters like $1 are not tags.
func (l *lexer) dollarTag() (string, bool) {
	var b strings.Builder
	b.WriteRune('$')
	for i := 1; ; i++ {
		r := l.s.Peek(i)
		switch {
		case r == '$':
			b.WriteRune(r)
			return b.String(), true
		case r == '_' || unicode.IsLetter(r) || (i > 1 && unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			return "", false
		}
	}
}

func (l *lexer) dollarQuoted(tag string, start int) (token, error) {
	s := l.s
	s.MatchString(tag, false, true)
	from := s.Index()
	if !s.SkipUntilString([]string{tag}, true) {
		s.SetIndex(start)
		s.FailAt(start, fmt.Sprintf("unterminated dollar-quoted string, missing closing %s", tag), "string")
		return token{}, s.Err()
	}
	end := s.Index()
	return token{kind: tokString, pos: start, end: end, text: s.Source()[from : end-len(tag)], bodyPos: from}, nil
}
