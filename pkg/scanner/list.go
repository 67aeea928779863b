package scanner

import (
	"fmt"
	"strings"
)

// ListSpec describes a delimited list such as "(a, b, c)".
type ListSpec struct {
	Open      rune
	Close     rune
	Separator rune

	// BlockOpen and BlockClose delimit items kept verbatim, possibly
	// spanning lines. Zero disables them.
	BlockOpen  rune
	BlockClose rune
}

// DefaultList is a parenthesised, comma separated list with {} sub-blocks.
var DefaultList = ListSpec{Open: '(', Close: ')', Separator: ',', BlockOpen: '{', BlockClose: '}'}

func (l ListSpec) valid() bool {
	if l.Open == 0 || l.Close == 0 || l.Separator == 0 || l.Open == l.Close ||
		l.Separator == l.Open || l.Separator == l.Close {
		return false
	}
	if (l.BlockOpen == 0) != (l.BlockClose == 0) {
		return false
	}
	return l.BlockOpen == 0 || l.BlockOpen != l.BlockClose
}

// ScanList scans a delimited list and returns its items in order. The
// next non-blank character must be spec.Open.
//
// An item starting with spec.BlockOpen is the verbatim content of that
// block; an item starting with a quote is the verbatim content of the
// string literal; anything else runs up to the next separator or the
// closing delimiter and is returned with comments stripped and whitespace
// trimmed. Plain items may contain balanced nested lists, blocks and
// string literals. Consecutive separators do not produce empty items.
//
// On success the token is the text between the list delimiters and the
// cursor is behind spec.Close. Any failure, such as a missing closing
// delimiter, returns no items and leaves the cursor where it was.
func (s *Scanner) ScanList(spec ListSpec) ([]string, bool) {
	items, ok := s.list(spec)
	if !ok {
		return nil, s.notify()
	}
	return items, true
}

func (s *Scanner) list(spec ListSpec) ([]string, bool) {
	start := s.index
	fail := func() ([]string, bool) {
		s.SetIndex(start)
		return nil, false
	}
	if !spec.valid() {
		s.record(start, fmt.Sprintf("invalid list delimiters %q %q %q", spec.Open, spec.Separator, spec.Close), "list")
		return nil, false
	}

	if !s.skipBlank() {
		return fail()
	}
	if s.ch != spec.Open {
		s.record(s.index, fmt.Sprintf("expected %q", spec.Open), "list")
		return fail()
	}
	openAt := s.index
	s.next()
	from := s.index

	items := []string{}
	for {
		if !s.skipBlank() {
			return fail()
		}
		switch {
		case s.AtEnd():
			s.record(openAt, fmt.Sprintf("missing closing %q for %q", spec.Close, spec.Open), "list")
			return fail()
		case s.ch == spec.Close:
			s.setToken(from, s.index)
			s.delim = spec.Close
			s.next()
			return items, true
		case s.ch == spec.Separator:
			s.next()
			continue
		case spec.BlockOpen != 0 && s.ch == spec.BlockOpen:
			a, b, ok := s.block(string(spec.BlockOpen), string(spec.BlockClose), false, true, "list")
			if !ok {
				return fail()
			}
			items = append(items, s.src[a:b])
			continue
		case s.isQuote(s.ch):
			if a, b, ok := s.literal(); ok {
				items = append(items, s.src[a:b])
				continue
			}
		}
		item, ok := s.listItem(spec, openAt)
		if !ok {
			return fail()
		}
		if item != "" {
			items = append(items, item)
		}
	}
}

// listItem scans a plain item up to the next separator or closing
// delimiter on the same nesting level and returns it stripped and trimmed.
func (s *Scanner) listItem(spec ListSpec, openAt int) (string, bool) {
	start := s.index
	stops := []string{string(spec.Separator), string(spec.Close), string(spec.Open)}
	if spec.BlockOpen != 0 {
		stops = append(stops, string(spec.BlockOpen))
	}
	stops = append(stops, s.comments.starts()...)
	stops = append(stops, runeSet(s.quotes)...)

	for {
		at, _ := indexCandidates(s.src, s.index, stops)
		if at < 0 {
			s.record(openAt, fmt.Sprintf("missing closing %q for %q", spec.Close, spec.Open), "list")
			return "", false
		}
		s.SetIndex(at)
		switch {
		case s.AtComment():
			if !s.skipComments(false) {
				return "", false
			}
		case s.ch == spec.Open:
			if _, _, ok := s.block(string(spec.Open), string(spec.Close), false, true, "list"); !ok {
				return "", false
			}
		case spec.BlockOpen != 0 && s.ch == spec.BlockOpen:
			if _, _, ok := s.block(string(spec.BlockOpen), string(spec.BlockClose), false, true, "list"); !ok {
				return "", false
			}
		case s.isQuote(s.ch):
			if _, _, ok := s.literal(); !ok {
				s.next()
			}
		default:
			text := StripComments(s.src[start:s.index], s.comments, s.quotes)
			return strings.TrimSpace(text), true
		}
	}
}
