package scanner

import "strings"

// CommentSpec describes the comment syntax of a language. A line comment
// runs from Line to the end of the line; a block comment from BlockStart
// to the matching BlockEnd and may nest. Blank markers disable the
// respective kind; block comments need both markers.
type CommentSpec struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

var (
	NoComments     = CommentSpec{}
	CComments      = CommentSpec{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
	SQLComments    = CommentSpec{Line: "--", BlockStart: "/*", BlockEnd: "*/"}
	ShellComments  = CommentSpec{Line: "#"}
	PascalComments = CommentSpec{Line: "//", BlockStart: "(*", BlockEnd: "*)"}
)

// HasLine reports whether line comments are enabled.
func (c CommentSpec) HasLine() bool { return strings.TrimSpace(c.Line) != "" }

// HasBlock reports whether block comments are enabled.
func (c CommentSpec) HasBlock() bool {
	return strings.TrimSpace(c.BlockStart) != "" && strings.TrimSpace(c.BlockEnd) != ""
}

// starts lists the markers that open a comment.
func (c CommentSpec) starts() []string {
	var out []string
	if c.HasLine() {
		out = append(out, c.Line)
	}
	if c.HasBlock() {
		out = append(out, c.BlockStart)
	}
	return out
}

// commentAt returns the marker of the comment starting at the cursor: the
// line marker, the block start marker or "" if there is none. If both
// match, the longer one wins.
func (s *Scanner) commentAt() string {
	if s.ch == EOS {
		return ""
	}
	rest := s.src[s.index:]
	c := s.comments
	line := c.HasLine() && rest[0] == c.Line[0] && strings.HasPrefix(rest, c.Line)
	block := c.HasBlock() && rest[0] == c.BlockStart[0] && strings.HasPrefix(rest, c.BlockStart)
	switch {
	case line && block:
		if len(c.BlockStart) > len(c.Line) {
			return c.BlockStart
		}
		return c.Line
	case line:
		return c.Line
	case block:
		return c.BlockStart
	}
	return ""
}

// AtComment reports whether a comment starts at the cursor.
func (s *Scanner) AtComment() bool {
	return s.commentAt() != ""
}

// SkipComments skips a comment run: consecutive comments together with
// the whitespace following each of them. With stopAtNewline a line comment
// leaves its line terminator in place and only blanks within the line are
// skipped after a comment. Block comments nest. An unterminated block
// comment is a definitive failure; the cursor then stays where it was.
// Without a comment at the cursor SkipComments does nothing and succeeds.
func (s *Scanner) SkipComments(stopAtNewline bool) bool {
	start := s.index
	if !s.skipComments(stopAtNewline) {
		s.SetIndex(start)
		return s.notify()
	}
	return true
}

func (s *Scanner) skipComments(stopAtNewline bool) bool {
	for {
		switch marker := s.commentAt(); {
		case marker == "":
			return true
		case marker == s.comments.Line:
			if i := strings.IndexAny(s.src[s.index:], "\r\n"); i >= 0 {
				s.SetIndex(s.index + i)
			} else {
				s.SetIndex(len(s.src))
			}
			if !stopAtNewline {
				s.skipNewline()
			}
		default:
			if _, _, ok := s.block(s.comments.BlockStart, s.comments.BlockEnd, false, false, "comment"); !ok {
				return false
			}
		}
		if stopAtNewline {
			s.skipSpaceInLine()
		} else {
			s.SkipWhitespace()
		}
	}
}

// SkipWhitespaceAndComments skips any mix of whitespace and comments. It
// fails only on an unterminated block comment, leaving the cursor where it
// was.
func (s *Scanner) SkipWhitespaceAndComments() bool {
	start := s.index
	if !s.skipBlank() {
		s.SetIndex(start)
		return s.notify()
	}
	return true
}

// skipBlank is SkipWhitespaceAndComments without the error sink; the
// failure is recorded but not reported.
func (s *Scanner) skipBlank() bool {
	for {
		s.SkipWhitespace()
		if !s.AtComment() {
			return true
		}
		if !s.skipComments(false) {
			return false
		}
	}
}
