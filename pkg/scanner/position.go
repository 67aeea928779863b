package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a resolved location in a source. Line and Column are 1-based,
// Column counts runes from the start of the line.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate maps a byte offset in src to its line and column. Offsets outside
// the source are clamped to its bounds.
func Locate(src string, index int) Position {
	index = clamp(index, len(src))
	head := src[:index]
	lineStart := strings.LastIndexByte(head, '\n') + 1
	return Position{
		Offset: index,
		Line:   strings.Count(head, "\n") + 1,
		Column: utf8.RuneCountInString(src[lineStart:index]) + 1,
	}
}

// Excerpt returns the line holding index together with up to lines
// preceding lines. The line terminator of the last line is not included.
func Excerpt(src string, index, lines int) string {
	index = clamp(index, len(src))
	start := strings.LastIndexByte(src[:index], '\n') + 1
	for ; lines > 0 && start > 0; lines-- {
		start = strings.LastIndexByte(src[:start-1], '\n') + 1
	}
	end := len(src)
	if i := strings.IndexByte(src[index:], '\n'); i >= 0 {
		end = index + i
	}
	return strings.TrimSuffix(src[start:end], "\r")
}

// Position resolves index against the scanner's source. It does not move
// the cursor.
func (s *Scanner) Position(index int) Position {
	return Locate(s.src, index)
}

// CurrentPosition resolves the cursor position.
func (s *Scanner) CurrentPosition() Position {
	return Locate(s.src, s.index)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
