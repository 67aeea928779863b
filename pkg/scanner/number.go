package scanner

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// numberPredicate accepts an optionally signed run of digits. With decimal
// a single '.' and an exponent ('e' or 'E', optionally signed) are
// accepted as well. The returned predicate is stateful and good for one
// scan only.
func numberPredicate(decimal bool) Predicate {
	var dot, exp bool
	prev := rune(0)
	return func(r rune, offset int) bool {
		ok := false
		switch {
		case r >= '0' && r <= '9':
			ok = true
		case r == '+' || r == '-':
			ok = offset == 0 || (decimal && (prev == 'e' || prev == 'E'))
		case r == '.':
			ok = decimal && !dot && !exp
			dot = dot || ok
		case r == 'e' || r == 'E':
			ok = decimal && !exp && offset > 0
			exp = exp || ok
		}
		if ok {
			prev = r
		}
		return ok
	}
}

// number scans a numeric run and hands its text to parse. A rejected run
// is retried without its trailing exponent marker, sign or dot, so "2em"
// yields 2. Token and cursor are only updated when parse accepts the text.
func (s *Scanner) number(decimal bool, parse func(string) bool) bool {
	end := s.scanWhile(numberPredicate(decimal))
	for end > s.index && !parse(s.src[s.index:end]) {
		if !strings.ContainsRune("eE+-.", rune(s.src[end-1])) {
			return false
		}
		end--
	}
	if end == s.index {
		return false
	}
	s.setToken(s.index, end)
	s.SetIndex(end)
	return true
}

// ParseInteger scans an optionally signed decimal integer that fits into
// an int64.
func (s *Scanner) ParseInteger() (int64, bool) {
	var n int64
	ok := s.number(false, func(text string) bool {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return false
		}
		n = v
		return true
	})
	return n, ok
}

// ParseDecimal scans a decimal number ("12", "-0.5", "1.5e-3", ".25") and
// returns its exact value. A lone "." or sign is not a number.
func (s *Scanner) ParseDecimal() (*apd.Decimal, bool) {
	var d *apd.Decimal
	ok := s.number(true, func(text string) bool {
		v, _, err := apd.NewFromString(text)
		if err != nil {
			return false
		}
		d = v
		return true
	})
	return d, ok
}

// ParseFloat scans the same syntax as ParseDecimal into a float64.
func (s *Scanner) ParseFloat() (float64, bool) {
	var f float64
	ok := s.number(true, func(text string) bool {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return false
		}
		f = v
		return true
	})
	return f, ok
}
