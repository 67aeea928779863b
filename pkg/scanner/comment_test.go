package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentPresets(t *testing.T) {
	tests := []struct {
		name        string
		spec        CommentSpec
		line, block bool
	}{
		{"none", NoComments, false, false},
		{"c", CComments, true, true},
		{"sql", SQLComments, true, true},
		{"shell", ShellComments, true, false},
		{"pascal", PascalComments, true, true},
		{"blank markers", CommentSpec{Line: " ", BlockStart: "/*", BlockEnd: "\t"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.line, tt.spec.HasLine())
			assert.Equal(t, tt.block, tt.spec.HasBlock())
		})
	}
}

func TestAtComment(t *testing.T) {
	s := New("a // b", WithComments(CComments))
	assert.False(t, s.AtComment())
	s.SetIndex(2)
	assert.True(t, s.AtComment())

	s = New("// b")
	assert.False(t, s.AtComment(), "comments are disabled by default")

	s = New("#!x", WithComments(ShellComments))
	assert.True(t, s.AtComment())
}

func TestSkipComments(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		stopAtNewline bool
		rest          string
	}{
		{"no comment", "x // y", false, "x // y"},
		{"line comment", "// a\n  x", false, "x"},
		{"line comment keeps newline", "// a  \n  x", true, "\n  x"},
		{"run of comments", "// a\n/* b */ // c\nx", false, "x"},
		{"run stops at newline", "/* b */  // c\n// d\nx", true, "\n// d\nx"},
		{"nested block", "/* a /* b */ c */x", false, "x"},
		{"comment at end", "// only", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.src, WithComments(CComments))
			require.True(t, s.SkipComments(tt.stopAtNewline))
			assert.Equal(t, tt.rest, s.Remaining())
		})
	}
}

func TestSkipNestedBlockCommentIndex(t *testing.T) {
	s := New("/* a /* b */ c */x", WithComments(CComments))
	require.True(t, s.SkipComments(false))
	assert.Equal(t, 17, s.Index())
	assert.Equal(t, 'x', s.Current())
}

func TestSkipCommentsUnterminated(t *testing.T) {
	var errs []*Error
	s := New("x /* a /* b */", WithComments(CComments), WithErrorSink(Collect(&errs)))
	s.SetIndex(2)

	assert.False(t, s.SkipComments(false))
	assert.Equal(t, 2, s.Index())
	require.Len(t, errs, 1)
	assert.Equal(t, "comment", errs[0].Context)
	assert.Equal(t, 3, errs[0].Column)
	assert.Contains(t, errs[0].Message, `"*/"`)
}

func TestSkipWhitespaceAndComments(t *testing.T) {
	s := New(" \t\n-- one\n  /* two */\n\nselect", WithComments(SQLComments))
	require.True(t, s.SkipWhitespaceAndComments())
	assert.Equal(t, "select", s.Remaining())

	// Nothing to skip is not a failure.
	require.True(t, s.SkipWhitespaceAndComments())
	assert.Equal(t, "select", s.Remaining())

	s.SetIndex(s.Len())
	assert.True(t, s.SkipWhitespaceAndComments())

	s = New("  /* open", WithComments(SQLComments), WithErrorSink(Discard))
	assert.False(t, s.SkipWhitespaceAndComments())
	assert.Equal(t, 0, s.Index())
	require.NotNil(t, s.Err())
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		text string
		spec CommentSpec
		want string
	}{
		{"no comments", "a b", CComments, "a b"},
		{"line comment", "a // b\nc", CComments, "a \nc"},
		{"block comment", "a /* b */c", CComments, "a c"},
		{"markers inside literals", `a "/* x */" '//' b`, CComments, `a "/* x */" '//' b`},
		{"unterminated literal", "it's /* x */ fine", CComments, "it's fine"},
		{"disabled", "a // b", NoComments, "a // b"},
		{"shell", "a # b", ShellComments, "a "},
		{"unterminated block", "a /* b", CComments, "a /* b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComments(tt.text, tt.spec, DefaultQuotes))
		})
	}
}
