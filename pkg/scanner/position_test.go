package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		src   string
		index int
		want  Position
	}{
		{"ab\ncd", 3, Position{Offset: 3, Line: 2, Column: 1}},
		{"ab\ncd", 0, Position{Offset: 0, Line: 1, Column: 1}},
		{"ab\ncd", 2, Position{Offset: 2, Line: 1, Column: 3}},
		{"héllo", 3, Position{Offset: 3, Line: 1, Column: 3}},
		{"ab", -5, Position{Offset: 0, Line: 1, Column: 1}},
		{"ab", 10, Position{Offset: 2, Line: 1, Column: 3}},
		{"", 0, Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Locate(tt.src, tt.index), "%q@%d", tt.src, tt.index)
	}
	assert.Equal(t, "2:1", Locate("ab\ncd", 3).String())
}

func TestExcerpt(t *testing.T) {
	src := "a\nb\nc\nd"
	assert.Equal(t, "b\nc\nd", Excerpt(src, 6, 2))
	assert.Equal(t, "d", Excerpt(src, 6, 0))
	assert.Equal(t, "a\nb", Excerpt(src, 2, 5))
	assert.Equal(t, "ab", Excerpt("ab\r\ncd", 1, 0))
}

func TestScannerPosition(t *testing.T) {
	s := New("x\n  y")
	s.SetIndex(4)
	assert.Equal(t, Position{Offset: 4, Line: 2, Column: 3}, s.CurrentPosition())
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, s.Position(1))
	assert.Equal(t, 4, s.Index())
}

func TestErrorFormat(t *testing.T) {
	s := New("{", WithFilename("f.txt"), WithErrorSink(Discard))
	require.False(t, s.ScanBlock('{', '}', false))
	require.NotNil(t, s.Err())
	assert.Equal(t, `f.txt:1:1: block: missing closing "}" for "{"`, s.Err().Error())
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, s.Err().Position())

	e := &Error{Message: "boom", Line: 3, Column: 7}
	assert.Equal(t, "3:7: boom", e.Error())
}

func TestFailAt(t *testing.T) {
	var errs []*Error
	s := New("one\ntwo\nthree", WithErrorSink(Collect(&errs)), WithExcerptLines(1))
	s.SetIndex(9)

	assert.False(t, s.Fail("unexpected", "test"))
	assert.False(t, s.FailAt(-1, "cursor", ""))
	assert.Equal(t, 9, s.Index())

	require.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].Line)
	assert.Equal(t, 2, errs[0].Column)
	assert.Equal(t, "two\nthree", errs[0].Excerpt)
	assert.Equal(t, 9, errs[1].Offset)
	assert.Same(t, errs[1], s.Err())

	s.ClearError()
	assert.Nil(t, s.Err())
}

func TestFailWithoutSink(t *testing.T) {
	s := New("x")
	assert.False(t, s.Fail("nope", ""))
	require.NotNil(t, s.Err())
	assert.Equal(t, "nope", s.Err().Message)
}
