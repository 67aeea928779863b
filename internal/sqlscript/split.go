package sqlscript

import (
	"fmt"
	"os"
	"strings"

	"github.com/cybertec-postgresql/scankit/internal/errors"
	"github.com/cybertec-postgresql/scankit/internal/logger"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
)

// ParseFile reads and splits a SQL file. Scan failures are returned as
// *errors.ParseError. opts tune the scanner, e.g. scanner.WithExcerptLines.
func ParseFile(path string, opts ...scanner.Option) (*Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	src := string(content)
	statements, err := Split(src, path, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debugf("%s: %d statements", path, len(statements))

	return &Script{
		Path:       path,
		Source:     src,
		Statements: statements,
	}, nil
}

// Split splits a SQL script into statements on semicolons outside of
// comments, quoted strings, quoted identifiers and dollar-quoted strings.
// Groups holding nothing but comments are dropped. filename only appears
// in error positions.
func Split(src, filename string, opts ...scanner.Option) ([]*Statement, error) {
	lx := newLexer(src, filename, opts)

	var statements []*Statement
	var group []token
	flush := func() {
		if stmt := newStatement(src, group); stmt != nil {
			statements = append(statements, stmt)
		}
		group = group[:0]
	}

	for {
		tok, err := lx.next()
		if err != nil {
			if scanErr, ok := err.(*scanner.Error); ok {
				return nil, errors.NewParseErrorFromScan(scanErr)
			}
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			flush()
			return statements, nil
		case tokSemicolon:
			flush()
		default:
			group = append(group, tok)
		}
	}
}

// newStatement builds a statement from the tokens between two semicolons,
// or returns nil if there is nothing but comments.
func newStatement(src string, toks []token) *Statement {
	var significant []token
	for _, t := range toks {
		if t.kind != tokComment {
			significant = append(significant, t)
		}
	}
	if len(significant) == 0 {
		return nil
	}

	first, last := toks[0].pos, toks[len(toks)-1].end
	stmt := &Statement{
		RawSQL:    src[first:last],
		StartPos:  first,
		StartLine: scanner.Locate(src, first).Line,
		EndLine:   scanner.Locate(src, last).Line,
		Type:      classifyTokens(significant),
	}

	switch stmt.Type {
	case StmtFunction, StmtProcedure:
		stmt.Language = extractLanguage(significant)
		stmt.Body, stmt.BodyStart = extractBody(significant, "AS", first)
	case StmtDO:
		stmt.Language = extractLanguage(significant)
		if stmt.Language == "" {
			stmt.Language = "plpgsql" // DO blocks default to plpgsql
		}
		stmt.Body, stmt.BodyStart = extractBody(significant, "DO", first)
	}
	return stmt
}

// classifyTokens determines the statement type from its leading tokens:
// DO blocks and CREATE [OR REPLACE] FUNCTION/PROCEDURE/TRIGGER/VIEW.
func classifyTokens(tokens []token) StatementType {
	if len(tokens) == 0 {
		return StmtUnknown
	}
	if isKeyword(tokens[0], "DO") {
		return StmtDO
	}
	if !isKeyword(tokens[0], "CREATE") {
		return StmtOther
	}

	i := 1
	if i < len(tokens) && isKeyword(tokens[i], "OR") {
		i++
		if i < len(tokens) && isKeyword(tokens[i], "REPLACE") {
			i++
		}
	}
	// CREATE CONSTRAINT TRIGGER
	if i < len(tokens) && isKeyword(tokens[i], "CONSTRAINT") {
		i++
	}
	if i >= len(tokens) {
		return StmtOther
	}

	switch {
	case isKeyword(tokens[i], "FUNCTION"):
		return StmtFunction
	case isKeyword(tokens[i], "PROCEDURE"):
		return StmtProcedure
	case isKeyword(tokens[i], "TRIGGER"):
		return StmtTrigger
	case isKeyword(tokens[i], "VIEW"):
		return StmtView
	default:
		return StmtOther
	}
}

func isKeyword(tok token, word string) bool {
	return tok.kind == tokIdent && strings.EqualFold(tok.text, word)
}

// extractLanguage finds the LANGUAGE clause. The name may be an
// identifier, a quoted identifier or a string.
func extractLanguage(tokens []token) string {
	for i := 0; i < len(tokens)-1; i++ {
		if !isKeyword(tokens[i], "LANGUAGE") {
			continue
		}
		switch next := tokens[i+1]; next.kind {
		case tokIdent, tokQuotedIdent, tokString:
			return strings.ToLower(next.text)
		}
	}
	return ""
}

// extractBody returns the first string constant following keyword and its
// offset within the statement.
func extractBody(tokens []token, keyword string, stmtStart int) (string, int) {
	for i := range tokens {
		if !isKeyword(tokens[i], keyword) {
			continue
		}
		for _, t := range tokens[i+1:] {
			if t.kind == tokString {
				return t.text, t.bodyPos - stmtStart
			}
			// AS must be directly followed by the body
			if keyword == "AS" {
				break
			}
		}
	}
	return "", 0
}
