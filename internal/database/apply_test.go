package database

import (
	"testing"

	"github.com/cybertec-postgresql/scankit/internal/sqlscript"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestErrorPosition(t *testing.T) {
	src := "SELECT 1;\n\nSELECT 'ä',\n  nope;\n"
	stmts, err := sqlscript.Split(src, "x.sql")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	script := &sqlscript.Script{Path: "x.sql", Source: src, Statements: stmts}

	tests := []struct {
		name         string
		position     int32
		line, column int
	}{
		{"no position", 0, 3, 1},
		{"first character", 1, 3, 1},
		{"after multibyte character", 15, 4, 3},
		{"beyond the statement", 99, 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := ErrorPosition(script, stmts[1], &pgconn.PgError{Position: tt.position})
			if pos.Line != tt.line || pos.Column != tt.column {
				t.Errorf("expected %d:%d, got %d:%d", tt.line, tt.column, pos.Line, pos.Column)
			}
		})
	}
}

func TestNoticeLog(t *testing.T) {
	var l noticeLog
	l.add(nil, &pgconn.Notice{Severity: "NOTICE", Message: "a"})
	l.add(nil, &pgconn.Notice{Severity: "WARNING", Message: "b"})

	if got := l.drain(); len(got) != 2 || got[1].Message != "b" {
		t.Errorf("unexpected notices %v", got)
	}
	if got := l.drain(); len(got) != 0 {
		t.Errorf("expected drained log, got %v", got)
	}
}
