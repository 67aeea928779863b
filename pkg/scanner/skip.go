package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SkipWhitespace advances over whitespace. It returns false when the end
// of the source was reached.
func (s *Scanner) SkipWhitespace() bool {
	for s.ch != EOS && unicode.IsSpace(s.ch) {
		s.next()
	}
	return !s.AtEnd()
}

// SkipWhileCharInSet advances while the current character is in set. It
// returns false when the end of the source was reached.
func (s *Scanner) SkipWhileCharInSet(set string) bool {
	for s.ch != EOS && strings.ContainsRune(set, s.ch) {
		s.next()
	}
	return !s.AtEnd()
}

// SkipUntilCharInSet advances to the first character in set and records it
// as the delimiter. With consume the delimiter is skipped too. If no such
// character is left the cursor does not move and false is returned.
func (s *Scanner) SkipUntilCharInSet(set string, consume bool) bool {
	i := strings.IndexAny(s.src[s.index:], set)
	if i < 0 {
		return false
	}
	s.SetIndex(s.index + i)
	s.delim = s.ch
	if consume {
		s.next()
	}
	return true
}

// SkipUntilString advances to the earliest occurrence of any candidate and
// records it as the match. Candidates starting at the same offset are
// resolved longest first, then by their order. With consume the match is
// skipped too. Without an occurrence the cursor does not move.
func (s *Scanner) SkipUntilString(candidates []string, consume bool) bool {
	at, m := indexCandidates(s.src, s.index, candidates)
	if at < 0 {
		return false
	}
	s.match = m
	if consume {
		at += len(m)
	}
	s.SetIndex(at)
	return true
}

// SkipChar consumes ch if it is the current character.
func (s *Scanner) SkipChar(ch rune) bool {
	if ch == EOS || s.ch != ch {
		return false
	}
	s.delim = ch
	s.next()
	return true
}

// SkipCharInSet consumes the current character if it is in set.
func (s *Scanner) SkipCharInSet(set string) bool {
	if s.ch == EOS || !strings.ContainsRune(set, s.ch) {
		return false
	}
	return s.SkipChar(s.ch)
}

// SkipLine advances past the next line terminator; "\r\n" counts as one.
// On the last line it stops at the end. It returns false only if the
// cursor already was at the end.
func (s *Scanner) SkipLine() bool {
	if s.AtEnd() {
		return false
	}
	i := strings.IndexAny(s.src[s.index:], "\r\n")
	if i < 0 {
		s.SetIndex(len(s.src))
		return true
	}
	s.SetIndex(s.index + i)
	s.skipNewline()
	return true
}

// skipNewline consumes one line terminator at the cursor.
func (s *Scanner) skipNewline() {
	switch s.ch {
	case '\r':
		s.next()
		if s.ch == '\n' {
			s.next()
		}
	case '\n':
		s.next()
	}
}

// skipSpaceInLine skips whitespace other than line terminators.
func (s *Scanner) skipSpaceInLine() {
	for s.ch != EOS && !s.AtEndOfLine() && unicode.IsSpace(s.ch) {
		s.next()
	}
}

// indexCandidates returns the byte offset and text of the earliest
// candidate found in src at or after from, or -1. At equal offsets the
// longest candidate wins, then the first listed.
func indexCandidates(src string, from int, candidates []string) (int, string) {
	for i := from; i < len(src); i++ {
		b := src[i]
		match := ""
		for _, c := range candidates {
			if c != "" && c[0] == b && len(c) > len(match) && strings.HasPrefix(src[i:], c) {
				match = c
			}
		}
		if match != "" {
			return i, match
		}
	}
	return -1, ""
}

// runeSet turns each rune of set into a candidate string.
func runeSet(set string) []string {
	out := make([]string, 0, utf8.RuneCountInString(set))
	for _, r := range set {
		out = append(out, string(r))
	}
	return out
}
