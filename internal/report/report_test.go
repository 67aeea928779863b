package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cybertec-postgresql/scankit/internal/database"
	"github.com/cybertec-postgresql/scankit/internal/errors"
	"github.com/cybertec-postgresql/scankit/internal/sqlscript"
	"github.com/cybertec-postgresql/scankit/pkg/scanner"
	"github.com/jackc/pgx/v5/pgconn"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()

	stmts, err := sqlscript.Split("SELECT 1;\nDO $$ BEGIN END $$;\n", "a.sql")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	s := scanner.New("{", scanner.WithFilename("b.c"), scanner.WithErrorSink(scanner.Discard))
	s.ScanBlock('{', '}', false)

	rep := &Report{}
	rep.Add("a.sql").Statements = stmts
	rep.Add("b.c").Diagnostics = []Diagnostic{FromScanError(s.Err())}
	rep.Add("c.sql").Applied = &database.Result{
		Path:       "c.sql",
		Statements: 2,
		Notices:    []database.Notice{{Severity: "NOTICE", Message: "hi", Line: 2}},
		RolledBack: true,
	}
	return rep
}

func TestTextReporter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter().Format(sampleReport(t), &buf); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := strings.Join([]string{
		"a.sql:1-1: other",
		"a.sql:2-2: do [plpgsql]",
		`b.c:1:1: block: missing closing "}" for "{"`,
		"c.sql:2: NOTICE: hi",
		"c.sql: 2 statements applied (rolled back)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestJSONReporter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter().Format(sampleReport(t), &buf); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded struct {
		Files []struct {
			Path       string `json:"path"`
			Statements []struct {
				Type string `json:"type"`
			} `json:"statements"`
			Diagnostics []Diagnostic `json:"diagnostics"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(decoded.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(decoded.Files))
	}
	if got := decoded.Files[0].Statements[1].Type; got != "do" {
		t.Errorf("expected statement type do, got %q", got)
	}
	if d := decoded.Files[1].Diagnostics[0]; d.Line != 1 || d.Excerpt != "{" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestDiagnosticConversions(t *testing.T) {
	d := FromParseError(&errors.ParseError{File: "a.sql", Line: 2, Column: 3, Message: "m"})
	if d.File != "a.sql" || d.Line != 2 || d.Column != 3 {
		t.Errorf("unexpected diagnostic %+v", d)
	}

	d = FromExecutionError(errors.NewExecutionError("a.sql", 4, 5, &pgconn.PgError{Code: "42601", Message: "syntax error"}))
	if d.Message != "42601: syntax error" || d.Context != "execute" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestReport_HasDiagnostics(t *testing.T) {
	rep := &Report{}
	rep.Add("a.sql")
	if rep.HasDiagnostics() {
		t.Error("expected no diagnostics")
	}
	rep.Add("b.sql").Diagnostics = []Diagnostic{{Message: "x"}}
	if !rep.HasDiagnostics() {
		t.Error("expected diagnostics")
	}
}

func TestGetFormatter(t *testing.T) {
	for _, name := range SupportedFormats() {
		f, err := GetFormatter(FormatType(name))
		if err != nil || f.Name() != name {
			t.Errorf("GetFormatter(%q) = %v, %v", name, f, err)
		}
		if !ValidFormat(name) {
			t.Errorf("ValidFormat(%q) = false", name)
		}
	}
	if _, err := GetFormatter("html"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
