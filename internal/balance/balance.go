// Package balance reports unbalanced delimiters in source text. Comments
// and string literals are skipped according to the configured syntax.
package balance

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cybertec-postgresql/scankit/internal/logger"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

// Pair is an open and close marker that must balance.
type Pair struct {
	Open  string
	Close string
}

// DefaultPairs are parentheses, brackets and braces.
var DefaultPairs = []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}}

type checker struct {
	src   string
	pairs []Pair
	stops []string
	opts  []scanner.Option
}

// Check returns a diagnostic for every block that is not closed and for
// every close marker without an open one, ordered by position. A failed
// block is reported once and checking resumes behind its open marker.
// Unterminated string literals count as plain text. opts are applied to
// every scanner used, e.g. scanner.WithFilename.
func Check(src string, comments scanner.CommentSpec, pairs []Pair, opts ...scanner.Option) []*scanner.Error {
	var errs []*scanner.Error
	sink := func(err *scanner.Error) bool {
		if err.Context != "string" {
			errs = append(errs, err)
		}
		return false
	}

	c := &checker{src: src, pairs: pairs}
	for _, p := range pairs {
		c.stops = append(c.stops, p.Open, p.Close)
	}
	c.opts = append([]scanner.Option{scanner.WithComments(comments)}, opts...)
	c.opts = append(c.opts, scanner.WithErrorSink(sink))
	if comments.HasLine() {
		c.stops = append(c.stops, comments.Line)
	}
	if comments.HasBlock() {
		c.stops = append(c.stops, comments.BlockStart)
	}
	c.stops = append(c.stops, runes(scanner.New("", c.opts...).Quotes())...)

	c.check(0, len(src))
	return errs
}

// CheckFile reads path and checks it, reporting positions against path.
func CheckFile(path string, comments scanner.CommentSpec, pairs []Pair, opts ...scanner.Option) ([]*scanner.Error, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	errs := Check(string(content), comments, pairs, append(opts, scanner.WithFilename(path))...)
	logger.Debugf("%s: %d diagnostics", path, len(errs))
	return errs, nil
}

// check walks src[from:limit]. The scanner sees src up to limit so that
// reported positions stay relative to the whole source.
func (c *checker) check(from, limit int) {
	s := scanner.New(c.src[:limit], c.opts...)
	s.SetIndex(from)

	for s.SkipUntilString(c.stops, false) {
		switch {
		case s.AtComment():
			if !s.SkipComments(false) {
				return // the comment runs to the end
			}
		case strings.ContainsRune(s.Quotes(), s.Current()):
			if !s.ScanString() {
				s.Advance(1)
			}
		default:
			if !c.marker(s) {
				return
			}
		}
	}
}

// marker handles the open or close marker at the cursor. It returns false
// when the rest of the range is an unterminated comment.
func (c *checker) marker(s *scanner.Scanner) bool {
	m := s.Match()
	for _, p := range c.pairs {
		switch m {
		case p.Open:
			if s.ScanBlockString(p.Open, p.Close, false) {
				c.check(s.TokenStart(), s.TokenEnd())
				return true
			}
			if s.Err() != nil && s.Err().Context == "comment" {
				return false
			}
			s.Advance(utf8.RuneCountInString(m))
			return true
		case p.Close:
			s.Fail(fmt.Sprintf("unexpected %q", p.Close), "balance")
			s.Advance(utf8.RuneCountInString(m))
			return true
		}
	}
	s.Advance(1)
	return true
}

func runes(set string) []string {
	out := make([]string, 0, len(set))
	for _, r := range set {
		out = append(out, string(r))
	}
	return out
}
