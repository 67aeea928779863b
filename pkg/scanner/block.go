package scanner

import (
	"fmt"
	"strings"
)

// ScanBlock scans a region delimited by the open and close characters,
// balancing nested pairs of the same kind. Markers inside comments and
// single-line string literals are ignored; a quote that does not close on
// its line counts as an ordinary character.
//
// With isOpen the cursor is taken to be just inside the block already.
// Otherwise the next non-blank character must be open. On success the
// token is the content between the outermost markers and the cursor is
// behind the closing marker. An unterminated block is a definitive failure
// naming the missing marker; the cursor does not move.
func (s *Scanner) ScanBlock(open, close rune, isOpen bool) bool {
	return s.ScanBlockString(string(open), string(close), isOpen)
}

// ScanBlockString is ScanBlock for multi-character markers. When markers
// overlap, the earliest occurrence wins, then the longest.
func (s *Scanner) ScanBlockString(open, close string, isOpen bool) bool {
	from, to, ok := s.block(open, close, isOpen, true, "block")
	if !ok {
		return s.notify()
	}
	s.setToken(from, to)
	return true
}

// block is the engine behind ScanBlock and block comments. With shield it
// skips comments and string literals while looking for markers. It returns
// the content range; on failure the error is recorded, not reported, and
// the cursor is restored.
func (s *Scanner) block(open, close string, isOpen, shield bool, context string) (from, to int, ok bool) {
	start := s.index
	if strings.TrimSpace(open) == "" || strings.TrimSpace(close) == "" || open == close {
		s.record(start, fmt.Sprintf("invalid block delimiters %q and %q", open, close), context)
		return 0, 0, false
	}
	fail := func() (int, int, bool) {
		s.SetIndex(start)
		return 0, 0, false
	}

	openAt := start
	if !isOpen {
		if shield && !s.skipBlank() {
			return fail()
		}
		if !strings.HasPrefix(s.Remaining(), open) {
			s.record(s.index, fmt.Sprintf("expected %q", open), context)
			return fail()
		}
		openAt = s.index
		s.SetIndex(s.index + len(open))
	}
	from = s.index

	candidates := []string{open, close}
	if shield {
		candidates = append(candidates, s.comments.starts()...)
		candidates = append(candidates, runeSet(s.quotes)...)
	}

	for level := 1; ; {
		if shield && !s.skipBlank() {
			return fail()
		}
		at, m := indexCandidates(s.src, s.index, candidates)
		if at < 0 {
			break
		}
		s.SetIndex(at)
		switch {
		case shield && s.AtComment():
			// skipped at the top of the loop
		case m == open:
			level++
			s.SetIndex(at + len(open))
		case m == close:
			s.SetIndex(at + len(close))
			if level--; level == 0 {
				return from, at, true
			}
		default:
			if _, _, ok := s.literal(); !ok {
				s.next()
			}
		}
	}

	s.record(openAt, fmt.Sprintf("missing closing %q for %q", close, open), context)
	return fail()
}
